package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePaqueteRequest body para POST /api/paquetes.
type CreatePaqueteRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
}

// UpdatePaqueteRequest body para PUT /api/paquetes/:id. Punteros nil = no modificar.
type UpdatePaqueteRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// PaqueteResponse paquete en respuestas.
type PaqueteResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PaqueteListResponse página de paquetes.
type PaqueteListResponse struct {
	Items []PaqueteResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
