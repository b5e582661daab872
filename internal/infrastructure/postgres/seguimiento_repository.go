package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.SeguimientoRepository = (*SeguimientoRepo)(nil)

// SeguimientoRepo implementación de SeguimientoRepository (usable con pool o tx).
type SeguimientoRepo struct {
	q Querier
}

// NewSeguimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSeguimientoRepository(q Querier) *SeguimientoRepo {
	return &SeguimientoRepo{q: q}
}

const seguimientoColumns = `
	s.id, s.company_name, s.owner_id, s.paquete_id, COALESCE(p.name, ''),
	s.status, s.start_date, s.end_date, s.description, s.contact_phone,
	s.created_at, s.updated_at`

// Create persiste un seguimiento nuevo (EN_PROCESO, sin end_date).
func (r *SeguimientoRepo) Create(s *entity.Seguimiento) error {
	query := `
		INSERT INTO seguimientos (id, company_name, owner_id, paquete_id, status, start_date, end_date, description, contact_phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.CompanyName, s.OwnerID, s.PaqueteID, s.Status,
		s.StartDate, s.EndDate, s.Description, s.ContactPhone,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert seguimiento: %w", err)
	}
	return nil
}

// GetByID obtiene un seguimiento con el nombre del paquete resuelto.
func (r *SeguimientoRepo) GetByID(id string) (*entity.Seguimiento, error) {
	if !validUUID(id) {
		return nil, nil
	}
	query := `
		SELECT` + seguimientoColumns + `
		FROM seguimientos s
		LEFT JOIN paquetes p ON p.id = s.paquete_id
		WHERE s.id = $1`
	s, err := scanSeguimiento(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get seguimiento: %w", err)
	}
	return s, nil
}

// GetByIDs resuelve un conjunto de IDs y devuelve solo los encontrados; los
// desconocidos simplemente no aparecen en el mapa.
func (r *SeguimientoRepo) GetByIDs(ids []string) (map[string]*entity.Seguimiento, error) {
	result := make(map[string]*entity.Seguimiento, len(ids))
	// Los ids malformados no pueden existir en una columna uuid; se descartan
	// para que el resto del lote siga resolviendo.
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if validUUID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return result, nil
	}
	query := `
		SELECT` + seguimientoColumns + `
		FROM seguimientos s
		LEFT JOIN paquetes p ON p.id = s.paquete_id
		WHERE s.id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, valid)
	if err != nil {
		return nil, fmt.Errorf("get seguimientos by ids: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		s, err := scanSeguimiento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan seguimiento: %w", err)
		}
		result[s.ID] = s
	}
	return result, rows.Err()
}

// UpdateFields aplica los campos no nil solo sobre filas EN_PROCESO. El
// predicado de status en el WHERE hace la verificación de inmutabilidad
// terminal en la misma sentencia: no hay ventana entre leer y escribir.
func (r *SeguimientoRepo) UpdateFields(id string, fields repository.SeguimientoUpdate, updatedAt time.Time) (bool, error) {
	query := `
		UPDATE seguimientos
		SET company_name  = COALESCE($2, company_name),
		    paquete_id    = COALESCE($3, paquete_id),
		    start_date    = COALESCE($4, start_date),
		    description   = COALESCE($5, description),
		    contact_phone = COALESCE($6, contact_phone),
		    updated_at    = $7
		WHERE id = $1 AND status = $8`
	cmd, err := r.q.Exec(context.Background(), query,
		id, fields.CompanyName, fields.PaqueteID, fields.StartDate,
		fields.Description, fields.ContactPhone, updatedAt,
		entity.SeguimientoEnProceso,
	)
	if err != nil {
		return false, fmt.Errorf("update seguimiento: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Transition cambia EN_PROCESO -> newStatus fijando end_date. Solo una de dos
// llamadas concurrentes puede matchear la fila: la segunda ve 0 filas afectadas.
func (r *SeguimientoRepo) Transition(id, newStatus string, endDate time.Time) (bool, error) {
	query := `
		UPDATE seguimientos
		SET status = $2, end_date = $3, updated_at = $3
		WHERE id = $1 AND status = $4`
	cmd, err := r.q.Exec(context.Background(), query,
		id, newStatus, endDate, entity.SeguimientoEnProceso,
	)
	if err != nil {
		return false, fmt.Errorf("transition seguimiento: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Search busca con filtro opcional de dueño y substring case-insensitive
// contra nombre de empresa, teléfono y nombre del paquete. Orden estable
// (start_date DESC, id DESC) para que la paginación no se reordene entre páginas.
func (r *SeguimientoRepo) Search(f repository.SeguimientoFilter) ([]*entity.Seguimiento, int, error) {
	if f.OwnerID != "" && !validUUID(f.OwnerID) {
		return nil, 0, nil
	}
	// NULLIF + cast explícito: sin él, el servidor infiere $1 como text por el
	// primer disyunto y la comparación contra la columna uuid no compila.
	where := `
		WHERE (NULLIF($1, '')::uuid IS NULL OR s.owner_id = NULLIF($1, '')::uuid)
		  AND ($2 = '' OR s.company_name ILIKE '%' || $2 || '%' ESCAPE '\'
		       OR s.contact_phone ILIKE '%' || $2 || '%' ESCAPE '\'
		       OR p.name ILIKE '%' || $2 || '%' ESCAPE '\')`
	q := escapeLike(f.Query)
	countQuery := `
		SELECT count(*)
		FROM seguimientos s
		LEFT JOIN paquetes p ON p.id = s.paquete_id` + where
	var total int
	if err := r.q.QueryRow(context.Background(), countQuery, f.OwnerID, q).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count seguimientos: %w", err)
	}

	query := `
		SELECT` + seguimientoColumns + `
		FROM seguimientos s
		LEFT JOIN paquetes p ON p.id = s.paquete_id` + where + `
		ORDER BY s.start_date DESC, s.id DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, f.OwnerID, q, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("search seguimientos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Seguimiento
	for rows.Next() {
		s, err := scanSeguimiento(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan seguimiento: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// Delete elimina un seguimiento. El FK de reporte_seguimientos es RESTRICT:
// si algún reporte lo cita entre la verificación del use case y este DELETE,
// la DB rechaza el borrado y aquí se traduce al error de dominio.
func (r *SeguimientoRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM seguimientos WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrSeguimientoEnUso
		}
		return fmt.Errorf("delete seguimiento: %w", err)
	}
	return nil
}

func scanSeguimiento(row pgx.Row) (*entity.Seguimiento, error) {
	var s entity.Seguimiento
	err := row.Scan(
		&s.ID, &s.CompanyName, &s.OwnerID, &s.PaqueteID, &s.PaqueteName,
		&s.Status, &s.StartDate, &s.EndDate, &s.Description, &s.ContactPhone,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
