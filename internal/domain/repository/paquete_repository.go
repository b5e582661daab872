package repository

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// PaqueteRepository define el puerto de persistencia para el catálogo de paquetes.
type PaqueteRepository interface {
	Create(p *entity.Paquete) error
	GetByID(id string) (*entity.Paquete, error)
	Exists(id string) (bool, error)
	Update(p *entity.Paquete) error
	List(limit, offset int) ([]*entity.Paquete, error)
}
