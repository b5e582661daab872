package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Paquete representa un paquete del catálogo comercial (servicios que un
// seguimiento puede referenciar).
type Paquete struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
