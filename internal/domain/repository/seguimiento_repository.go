package repository

import (
	"time"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// SeguimientoFilter filtros de búsqueda para listados de seguimientos.
// OwnerID vacío = sin filtro de dueño (solo roles lider/admin llegan aquí así).
// Query busca substring case-insensitive en company_name, contact_phone y el
// nombre del paquete vinculado.
type SeguimientoFilter struct {
	OwnerID string
	Query   string
	Limit   int
	Offset  int
}

// SeguimientoUpdate campos editables de un seguimiento EN_PROCESO.
// Punteros nil = no modificar.
type SeguimientoUpdate struct {
	CompanyName  *string
	PaqueteID    *string
	StartDate    *time.Time
	Description  *string
	ContactPhone *string
}

// SeguimientoRepository define el puerto de persistencia para Seguimiento.
type SeguimientoRepository interface {
	Create(s *entity.Seguimiento) error
	GetByID(id string) (*entity.Seguimiento, error)
	// GetByIDs devuelve solo el subconjunto encontrado, omitiendo IDs
	// desconocidos sin error; el caller verifica completitud.
	GetByIDs(ids []string) (map[string]*entity.Seguimiento, error)
	// UpdateFields aplica los campos no nil solo si el seguimiento sigue
	// EN_PROCESO. Devuelve false si la fila no estaba EN_PROCESO (o no existe);
	// la condición en el WHERE hace la verificación libre de carreras.
	UpdateFields(id string, fields SeguimientoUpdate, updatedAt time.Time) (bool, error)
	// Transition cambia EN_PROCESO -> newStatus fijando end_date. Devuelve
	// false si la fila ya era terminal (o no existe); nunca dos transiciones
	// exitosas para el mismo id.
	Transition(id, newStatus string, endDate time.Time) (bool, error)
	Search(f SeguimientoFilter) ([]*entity.Seguimiento, int, error)
	Delete(id string) error
}
