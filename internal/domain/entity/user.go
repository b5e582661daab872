package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleLider    = "lider"    // líder de ventas: ve seguimientos y reportes de todos los vendedores
	RoleVendedor = "vendedor" // solo ve lo propio
)

// User representa un usuario del sistema (vendedor, líder de ventas o administrador).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, lider, vendedor
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanViewAll indica si el rol puede omitir el filtro de dueño en listados y búsquedas.
func CanViewAll(role string) bool {
	return role == RoleAdmin || role == RoleLider
}
