package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// PaqueteUseCase CRUD del catálogo de paquetes. Los seguimientos referencian
// paquetes por ID; Exists respalda esa validación.
type PaqueteUseCase struct {
	repo repository.PaqueteRepository
}

// NewPaqueteUseCase construye el caso de uso.
func NewPaqueteUseCase(repo repository.PaqueteRepository) *PaqueteUseCase {
	return &PaqueteUseCase{repo: repo}
}

// Create crea un paquete nuevo, activo por defecto.
func (uc *PaqueteUseCase) Create(in dto.CreatePaqueteRequest) (*dto.PaqueteResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Paquete{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return toPaqueteResponse(p), nil
}

// GetByID obtiene un paquete por ID.
func (uc *PaqueteUseCase) GetByID(id string) (*dto.PaqueteResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toPaqueteResponse(p), nil
}

// Update actualiza un paquete. Punteros nil = no modificar.
func (uc *PaqueteUseCase) Update(id string, in dto.UpdatePaqueteRequest) (*dto.PaqueteResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return toPaqueteResponse(p), nil
}

// List lista paquetes con paginación.
func (uc *PaqueteUseCase) List(page dto.PageRequest) (*dto.PaqueteListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PaqueteResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPaqueteResponse(p))
	}
	return &dto.PaqueteListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toPaqueteResponse(p *entity.Paquete) *dto.PaqueteResponse {
	if p == nil {
		return nil
	}
	return &dto.PaqueteResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
