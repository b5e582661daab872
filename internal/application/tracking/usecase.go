package tracking

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// SeguimientoUseCase ciclo de vida del seguimiento de empresas: creación,
// edición mientras está EN_PROCESO y las dos transiciones terminales
// (concretar / cancelar). Las transiciones son de una sola vez: repetirlas
// sobre un registro terminal es un error, no un no-op.
type SeguimientoUseCase struct {
	repo        repository.SeguimientoRepository
	paqueteRepo repository.PaqueteRepository
	reporteRepo repository.ReporteRepository
}

// NewSeguimientoUseCase construye el caso de uso.
func NewSeguimientoUseCase(
	repo repository.SeguimientoRepository,
	paqueteRepo repository.PaqueteRepository,
	reporteRepo repository.ReporteRepository,
) *SeguimientoUseCase {
	return &SeguimientoUseCase{repo: repo, paqueteRepo: paqueteRepo, reporteRepo: reporteRepo}
}

// Create registra un seguimiento nuevo para ownerID. Nace EN_PROCESO y sin
// fecha fin; el dueño queda fijo desde aquí.
func (uc *SeguimientoUseCase) Create(ownerID string, in dto.CreateSeguimientoRequest) (*dto.SeguimientoResponse, error) {
	verrs := domain.ValidationErrors{}
	if strings.TrimSpace(in.CompanyName) == "" {
		verrs.Add("company_name", "requerido")
	}
	if in.PaqueteID == "" {
		verrs.Add("paquete_id", "requerido")
	} else {
		ok, err := uc.paqueteRepo.Exists(in.PaqueteID)
		if err != nil {
			return nil, err
		}
		if !ok {
			verrs.Add("paquete_id", "paquete inexistente")
		}
	}
	if in.StartDate.IsZero() {
		verrs.Add("start_date", "requerido")
	}
	if err := verrs.AsError(); err != nil {
		return nil, err
	}

	now := time.Now()
	s := &entity.Seguimiento{
		ID:           uuid.New().String(),
		CompanyName:  strings.TrimSpace(in.CompanyName),
		OwnerID:      ownerID,
		PaqueteID:    in.PaqueteID,
		Status:       entity.SeguimientoEnProceso,
		StartDate:    in.StartDate,
		Description:  in.Description,
		ContactPhone: in.ContactPhone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(s); err != nil {
		return nil, err
	}
	return toSeguimientoResponse(s), nil
}

// Update edita un seguimiento EN_PROCESO. Un registro terminal nunca se
// modifica (la UI oculta los controles de edición; el backend lo garantiza).
// Status y EndDate no son editables por esta vía.
func (uc *SeguimientoUseCase) Update(id, callerID, role string, in dto.UpdateSeguimientoRequest) (*dto.SeguimientoResponse, error) {
	current, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	if current.OwnerID != callerID && !entity.CanViewAll(role) {
		return nil, domain.ErrForbidden
	}
	if current.IsTerminal() {
		return nil, domain.ErrEstadoTerminal
	}

	verrs := domain.ValidationErrors{}
	if in.CompanyName != nil && strings.TrimSpace(*in.CompanyName) == "" {
		verrs.Add("company_name", "no puede quedar vacío")
	}
	if in.PaqueteID != nil {
		ok, err := uc.paqueteRepo.Exists(*in.PaqueteID)
		if err != nil {
			return nil, err
		}
		if !ok {
			verrs.Add("paquete_id", "paquete inexistente")
		}
	}
	if in.StartDate != nil && in.StartDate.IsZero() {
		verrs.Add("start_date", "requerido")
	}
	if err := verrs.AsError(); err != nil {
		return nil, err
	}

	fields := repository.SeguimientoUpdate{
		CompanyName:  in.CompanyName,
		PaqueteID:    in.PaqueteID,
		StartDate:    in.StartDate,
		Description:  in.Description,
		ContactPhone: in.ContactPhone,
	}
	// El UPDATE condicional (WHERE status = EN_PROCESO) cierra la carrera con
	// un Finalize/Cancel concurrente: si otro request ganó la transición, la
	// fila ya no matchea y aquí se responde estado terminal.
	ok, err := uc.repo.UpdateFields(id, fields, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrEstadoTerminal
	}
	updated, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	return toSeguimientoResponse(updated), nil
}

// Finalize transición EN_PROCESO -> CONCRETADO; fija end_date = now().
func (uc *SeguimientoUseCase) Finalize(id, callerID, role string) (*dto.SeguimientoResponse, error) {
	return uc.transition(id, callerID, role, entity.SeguimientoConcretado)
}

// Cancel transición EN_PROCESO -> NO_CONCRETADO; fija end_date = now().
func (uc *SeguimientoUseCase) Cancel(id, callerID, role string) (*dto.SeguimientoResponse, error) {
	return uc.transition(id, callerID, role, entity.SeguimientoNoConcretado)
}

func (uc *SeguimientoUseCase) transition(id, callerID, role, newStatus string) (*dto.SeguimientoResponse, error) {
	current, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	if current.OwnerID != callerID && !entity.CanViewAll(role) {
		return nil, domain.ErrForbidden
	}
	// Transition solo afecta filas EN_PROCESO: dos llamadas concurrentes nunca
	// producen dos transiciones exitosas para el mismo id.
	ok, err := uc.repo.Transition(id, newStatus, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrEstadoTerminal
	}
	updated, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	return toSeguimientoResponse(updated), nil
}

// GetByID obtiene un seguimiento; vendedores solo ven los propios.
func (uc *SeguimientoUseCase) GetByID(id, callerID, role string) (*dto.SeguimientoResponse, error) {
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if s.OwnerID != callerID && !entity.CanViewAll(role) {
		return nil, domain.ErrForbidden
	}
	return toSeguimientoResponse(s), nil
}

// Search busca seguimientos con paginación. query matchea case-insensitive
// contra nombre de empresa, teléfono de contacto y nombre del paquete. Un
// vendedor siempre queda acotado a lo suyo; lider/admin pueden omitir el dueño.
func (uc *SeguimientoUseCase) Search(callerID, role, ownerFilter, query string, page dto.PageRequest) (*dto.SeguimientoListResponse, error) {
	page.DefaultPage()
	if !entity.CanViewAll(role) {
		ownerFilter = callerID
	}
	list, total, err := uc.repo.Search(repository.SeguimientoFilter{
		OwnerID: ownerFilter,
		Query:   query,
		Limit:   page.Limit,
		Offset:  page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SeguimientoResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSeguimientoResponse(s))
	}
	return &dto.SeguimientoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// GetByIDs resuelve un conjunto de IDs; devuelve solo los encontrados. Lo usa
// el agregador de reportes para validar referencias.
func (uc *SeguimientoUseCase) GetByIDs(ids []string) (map[string]*entity.Seguimiento, error) {
	return uc.repo.GetByIDs(ids)
}

// Delete elimina un seguimiento (solo admin). Se bloquea mientras algún
// reporte lo cite: una referencia colgante rompería la hidratación del reporte.
func (uc *SeguimientoUseCase) Delete(id, role string) error {
	if role != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	refs, err := uc.reporteRepo.CountReferences(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return domain.ErrSeguimientoEnUso
	}
	return uc.repo.Delete(id)
}

func toSeguimientoResponse(s *entity.Seguimiento) *dto.SeguimientoResponse {
	if s == nil {
		return nil
	}
	return &dto.SeguimientoResponse{
		ID:           s.ID,
		CompanyName:  s.CompanyName,
		OwnerID:      s.OwnerID,
		PaqueteID:    s.PaqueteID,
		PaqueteName:  s.PaqueteName,
		Status:       s.Status,
		StartDate:    s.StartDate,
		EndDate:      s.EndDate,
		Description:  s.Description,
		ContactPhone: s.ContactPhone,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
