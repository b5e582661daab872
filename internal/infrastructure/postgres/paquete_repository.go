package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.PaqueteRepository = (*PaqueteRepo)(nil)

// PaqueteRepo implementación de PaqueteRepository sobre PostgreSQL.
type PaqueteRepo struct {
	q Querier
}

// NewPaqueteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaqueteRepository(q Querier) *PaqueteRepo {
	return &PaqueteRepo{q: q}
}

// Create persiste un paquete nuevo.
func (r *PaqueteRepo) Create(p *entity.Paquete) error {
	query := `
		INSERT INTO paquetes (id, name, description, price, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.Description, p.Price, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert paquete: %w", err)
	}
	return nil
}

// GetByID obtiene un paquete por ID.
func (r *PaqueteRepo) GetByID(id string) (*entity.Paquete, error) {
	if !validUUID(id) {
		return nil, nil
	}
	query := `
		SELECT id, name, description, price, active, created_at, updated_at
		FROM paquetes WHERE id = $1`
	var p entity.Paquete
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get paquete: %w", err)
	}
	return &p, nil
}

// Exists verifica existencia sin traer la fila completa.
func (r *PaqueteRepo) Exists(id string) (bool, error) {
	if !validUUID(id) {
		return false, nil
	}
	var ok bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM paquetes WHERE id = $1)`, id).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("exists paquete: %w", err)
	}
	return ok, nil
}

// Update actualiza un paquete.
func (r *PaqueteRepo) Update(p *entity.Paquete) error {
	query := `
		UPDATE paquetes SET name = $2, description = $3, price = $4, active = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.Description, p.Price, p.Active, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update paquete: %w", err)
	}
	return nil
}

// List lista paquetes con paginación.
func (r *PaqueteRepo) List(limit, offset int) ([]*entity.Paquete, error) {
	query := `
		SELECT id, name, description, price, active, created_at, updated_at
		FROM paquetes ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list paquetes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Paquete
	for rows.Next() {
		var p entity.Paquete
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan paquete: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
