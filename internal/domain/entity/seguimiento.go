package entity

import "time"

// Estados de un seguimiento de empresa.
const (
	SeguimientoEnProceso    = "EN_PROCESO"    // Activo; único estado editable
	SeguimientoConcretado   = "CONCRETADO"    // Venta cerrada (terminal)
	SeguimientoNoConcretado = "NO_CONCRETADO" // Cancelado / no se concretó (terminal)
)

// Seguimiento representa el seguimiento de una empresa prospecto o contratada
// por un vendedor. OwnerID queda fijo en la creación; EndDate solo tiene valor
// cuando el estado es terminal.
type Seguimiento struct {
	ID           string
	CompanyName  string
	OwnerID      string // vendedor dueño; inmutable
	PaqueteID    string // paquete contratado/ofrecido (catálogo)
	PaqueteName  string // derivado del join con paquetes en lecturas; no se persiste aquí
	Status       string
	StartDate    time.Time
	EndDate      *time.Time // nil mientras EN_PROCESO; now() al concretar o cancelar
	Description  string
	ContactPhone string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsTerminal indica si el seguimiento ya no admite mutaciones ni transiciones.
func (s *Seguimiento) IsTerminal() bool {
	return s.Status != SeguimientoEnProceso
}
