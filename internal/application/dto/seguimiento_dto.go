package dto

import "time"

// CreateSeguimientoRequest body para POST /api/seguimientos.
// El dueño no viaja en el body: se toma del token (queda fijo al crear).
type CreateSeguimientoRequest struct {
	CompanyName  string    `json:"company_name" validate:"required,min=1,max=200"`
	PaqueteID    string    `json:"paquete_id" validate:"required,uuid"`
	StartDate    time.Time `json:"start_date" validate:"required"`
	Description  string    `json:"description,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
}

// UpdateSeguimientoRequest body para PUT /api/seguimientos/:id.
// Solo campos editables; status y end_date nunca se fijan por esta vía.
// Punteros nil = no modificar.
type UpdateSeguimientoRequest struct {
	CompanyName  *string    `json:"company_name,omitempty"`
	PaqueteID    *string    `json:"paquete_id,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	Description  *string    `json:"description,omitempty"`
	ContactPhone *string    `json:"contact_phone,omitempty"`
}

// SeguimientoResponse seguimiento en respuestas.
type SeguimientoResponse struct {
	ID           string     `json:"id"`
	CompanyName  string     `json:"company_name"`
	OwnerID      string     `json:"owner_id"`
	PaqueteID    string     `json:"paquete_id"`
	PaqueteName  string     `json:"paquete_name,omitempty"`
	Status       string     `json:"status"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Description  string     `json:"description,omitempty"`
	ContactPhone string     `json:"contact_phone,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// SeguimientoListResponse página de seguimientos.
type SeguimientoListResponse struct {
	Items []SeguimientoResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
