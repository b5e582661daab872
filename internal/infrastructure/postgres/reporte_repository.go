package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.ReporteRepository = (*ReporteRepo)(nil)

// ReporteRepo implementación de ReporteRepository (usable con pool o tx).
// Las escrituras (CreateFull/ReplaceFull/Delete) deben correr dentro de la
// transacción del TxRunner; las lecturas funcionan igual sobre el pool.
type ReporteRepo struct {
	q Querier
}

// NewReporteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReporteRepository(q Querier) *ReporteRepo {
	return &ReporteRepo{q: q}
}

// Tablas hijas de reportes; se reemplazan y borran siempre en bloque.
var reporteChildTables = []string{
	"reporte_seguimientos",
	"reporte_actividades",
	"reporte_estrategias",
	"reporte_resultados",
	"reporte_dificultades",
	"reporte_metas",
}

// CreateFull inserta cabecera, referencias y las cinco colecciones con su posición.
func (r *ReporteRepo) CreateFull(rep *entity.ReporteVenta) error {
	query := `
		INSERT INTO reportes (id, owner_id, period_type, period_start, period_end, notes, recommendations, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		rep.ID, rep.OwnerID, rep.PeriodType, rep.PeriodStart, rep.PeriodEnd,
		rep.Notes, rep.Recommendations, rep.CreatedAt, rep.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert reporte: %w", err)
	}
	return r.insertChildren(rep)
}

// ReplaceFull actualiza la cabecera y reemplaza por completo referencias y
// sub-registros: borrar-y-reinsertar, nunca diff incremental.
func (r *ReporteRepo) ReplaceFull(rep *entity.ReporteVenta) error {
	query := `
		UPDATE reportes
		SET period_type = $2, period_start = $3, period_end = $4,
		    notes = $5, recommendations = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		rep.ID, rep.PeriodType, rep.PeriodStart, rep.PeriodEnd,
		rep.Notes, rep.Recommendations, rep.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update reporte: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update reporte %s: fila inexistente", rep.ID)
	}
	for _, table := range reporteChildTables {
		if _, err := r.q.Exec(context.Background(),
			`DELETE FROM `+table+` WHERE reporte_id = $1`, rep.ID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return r.insertChildren(rep)
}

func (r *ReporteRepo) insertChildren(rep *entity.ReporteVenta) error {
	ctx := context.Background()
	for i, sid := range rep.SeguimientoIDs {
		if _, err := r.q.Exec(ctx,
			`INSERT INTO reporte_seguimientos (reporte_id, seguimiento_id, posicion) VALUES ($1, $2, $3)`,
			rep.ID, sid, i); err != nil {
			return fmt.Errorf("insert referencia seguimiento: %w", err)
		}
	}
	for _, a := range rep.Actividades {
		if _, err := r.q.Exec(ctx, `
			INSERT INTO reporte_actividades (id, reporte_id, posicion, activity_type, description, activity_date, remarks)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			a.ID, a.ReporteID, a.Posicion, a.ActivityType, a.Description, a.ActivityDate, a.Remarks); err != nil {
			return fmt.Errorf("insert actividad: %w", err)
		}
	}
	for _, e := range rep.Estrategias {
		if _, err := r.q.Exec(ctx, `
			INSERT INTO reporte_estrategias (id, reporte_id, posicion, method, tools_used, expected_result)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			e.ID, e.ReporteID, e.Posicion, e.Method, e.ToolsUsed, e.ExpectedResult); err != nil {
			return fmt.Errorf("insert estrategia: %w", err)
		}
	}
	for _, res := range rep.Resultados {
		if _, err := r.q.Exec(ctx, `
			INSERT INTO reporte_resultados (id, reporte_id, posicion, indicator, month_goal, actual_result, remarks)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			res.ID, res.ReporteID, res.Posicion, res.Indicator, res.MonthGoal, res.ActualResult, res.Remarks); err != nil {
			return fmt.Errorf("insert resultado: %w", err)
		}
	}
	for _, d := range rep.Dificultades {
		if _, err := r.q.Exec(ctx, `
			INSERT INTO reporte_dificultades (id, reporte_id, posicion, type, description, impact, action_taken)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			d.ID, d.ReporteID, d.Posicion, d.Type, d.Description, d.Impact, d.ActionTaken); err != nil {
			return fmt.Errorf("insert dificultad: %w", err)
		}
	}
	for _, m := range rep.Metas {
		if _, err := r.q.Exec(ctx, `
			INSERT INTO reporte_metas (id, reporte_id, posicion, objective, action_to_implement, responsible, due_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			m.ID, m.ReporteID, m.Posicion, m.Objective, m.ActionToImplement, m.Responsible, m.DueDate); err != nil {
			return fmt.Errorf("insert meta: %w", err)
		}
	}
	return nil
}

// GetByID obtiene cabecera, referencias (en su orden) y las cinco colecciones
// ordenadas por posición. No hidrata los seguimientos referenciados.
func (r *ReporteRepo) GetByID(id string) (*entity.ReporteVenta, error) {
	if !validUUID(id) {
		return nil, nil
	}
	ctx := context.Background()
	query := `
		SELECT id, owner_id, period_type, period_start, period_end, notes, recommendations, created_at, updated_at
		FROM reportes WHERE id = $1`
	var rep entity.ReporteVenta
	err := r.q.QueryRow(ctx, query, id).Scan(
		&rep.ID, &rep.OwnerID, &rep.PeriodType, &rep.PeriodStart, &rep.PeriodEnd,
		&rep.Notes, &rep.Recommendations, &rep.CreatedAt, &rep.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reporte: %w", err)
	}

	rows, err := r.q.Query(ctx,
		`SELECT seguimiento_id FROM reporte_seguimientos WHERE reporte_id = $1 ORDER BY posicion`, id)
	if err != nil {
		return nil, fmt.Errorf("list referencias: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sid string
		if err := rows.Scan(&sid); err != nil {
			return nil, fmt.Errorf("scan referencia: %w", err)
		}
		rep.SeguimientoIDs = append(rep.SeguimientoIDs, sid)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadActividades(ctx, &rep); err != nil {
		return nil, err
	}
	if err := r.loadEstrategias(ctx, &rep); err != nil {
		return nil, err
	}
	if err := r.loadResultados(ctx, &rep); err != nil {
		return nil, err
	}
	if err := r.loadDificultades(ctx, &rep); err != nil {
		return nil, err
	}
	if err := r.loadMetas(ctx, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *ReporteRepo) loadActividades(ctx context.Context, rep *entity.ReporteVenta) error {
	rows, err := r.q.Query(ctx, `
		SELECT id, reporte_id, posicion, activity_type, description, activity_date, remarks
		FROM reporte_actividades WHERE reporte_id = $1 ORDER BY posicion`, rep.ID)
	if err != nil {
		return fmt.Errorf("list actividades: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var a entity.Actividad
		if err := rows.Scan(&a.ID, &a.ReporteID, &a.Posicion, &a.ActivityType, &a.Description, &a.ActivityDate, &a.Remarks); err != nil {
			return fmt.Errorf("scan actividad: %w", err)
		}
		rep.Actividades = append(rep.Actividades, a)
	}
	return rows.Err()
}

func (r *ReporteRepo) loadEstrategias(ctx context.Context, rep *entity.ReporteVenta) error {
	rows, err := r.q.Query(ctx, `
		SELECT id, reporte_id, posicion, method, tools_used, expected_result
		FROM reporte_estrategias WHERE reporte_id = $1 ORDER BY posicion`, rep.ID)
	if err != nil {
		return fmt.Errorf("list estrategias: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e entity.Estrategia
		if err := rows.Scan(&e.ID, &e.ReporteID, &e.Posicion, &e.Method, &e.ToolsUsed, &e.ExpectedResult); err != nil {
			return fmt.Errorf("scan estrategia: %w", err)
		}
		rep.Estrategias = append(rep.Estrategias, e)
	}
	return rows.Err()
}

func (r *ReporteRepo) loadResultados(ctx context.Context, rep *entity.ReporteVenta) error {
	rows, err := r.q.Query(ctx, `
		SELECT id, reporte_id, posicion, indicator, month_goal, actual_result, remarks
		FROM reporte_resultados WHERE reporte_id = $1 ORDER BY posicion`, rep.ID)
	if err != nil {
		return fmt.Errorf("list resultados: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var res entity.Resultado
		if err := rows.Scan(&res.ID, &res.ReporteID, &res.Posicion, &res.Indicator, &res.MonthGoal, &res.ActualResult, &res.Remarks); err != nil {
			return fmt.Errorf("scan resultado: %w", err)
		}
		rep.Resultados = append(rep.Resultados, res)
	}
	return rows.Err()
}

func (r *ReporteRepo) loadDificultades(ctx context.Context, rep *entity.ReporteVenta) error {
	rows, err := r.q.Query(ctx, `
		SELECT id, reporte_id, posicion, type, description, impact, action_taken
		FROM reporte_dificultades WHERE reporte_id = $1 ORDER BY posicion`, rep.ID)
	if err != nil {
		return fmt.Errorf("list dificultades: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.Dificultad
		if err := rows.Scan(&d.ID, &d.ReporteID, &d.Posicion, &d.Type, &d.Description, &d.Impact, &d.ActionTaken); err != nil {
			return fmt.Errorf("scan dificultad: %w", err)
		}
		rep.Dificultades = append(rep.Dificultades, d)
	}
	return rows.Err()
}

func (r *ReporteRepo) loadMetas(ctx context.Context, rep *entity.ReporteVenta) error {
	rows, err := r.q.Query(ctx, `
		SELECT id, reporte_id, posicion, objective, action_to_implement, responsible, due_date
		FROM reporte_metas WHERE reporte_id = $1 ORDER BY posicion`, rep.ID)
	if err != nil {
		return fmt.Errorf("list metas: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m entity.Meta
		if err := rows.Scan(&m.ID, &m.ReporteID, &m.Posicion, &m.Objective, &m.ActionToImplement, &m.Responsible, &m.DueDate); err != nil {
			return fmt.Errorf("scan meta: %w", err)
		}
		rep.Metas = append(rep.Metas, m)
	}
	return rows.Err()
}

// ListByOwner lista resúmenes (cabecera + conteos) sin cargar sub-registros.
// ownerID vacío = todos los dueños. Orden estable para paginación.
func (r *ReporteRepo) ListByOwner(ownerID string, limit, offset int) ([]*repository.ReporteSummary, int, error) {
	if ownerID != "" && !validUUID(ownerID) {
		return nil, 0, nil
	}
	ctx := context.Background()
	var total int
	// Mismo NULLIF + cast que en Search: owner_id es uuid y el parámetro text.
	if err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM reportes WHERE (NULLIF($1, '')::uuid IS NULL OR owner_id = NULLIF($1, '')::uuid)`, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reportes: %w", err)
	}

	query := `
		SELECT r.id, r.owner_id, r.period_type, r.period_start, r.period_end, r.created_at, r.updated_at,
		       (SELECT count(*) FROM reporte_seguimientos x WHERE x.reporte_id = r.id),
		       (SELECT count(*) FROM reporte_actividades  x WHERE x.reporte_id = r.id),
		       (SELECT count(*) FROM reporte_estrategias  x WHERE x.reporte_id = r.id),
		       (SELECT count(*) FROM reporte_resultados   x WHERE x.reporte_id = r.id),
		       (SELECT count(*) FROM reporte_dificultades x WHERE x.reporte_id = r.id),
		       (SELECT count(*) FROM reporte_metas        x WHERE x.reporte_id = r.id)
		FROM reportes r
		WHERE (NULLIF($1, '')::uuid IS NULL OR r.owner_id = NULLIF($1, '')::uuid)
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list reportes: %w", err)
	}
	defer rows.Close()
	var list []*repository.ReporteSummary
	for rows.Next() {
		var rep entity.ReporteVenta
		var sum repository.ReporteSummary
		if err := rows.Scan(
			&rep.ID, &rep.OwnerID, &rep.PeriodType, &rep.PeriodStart, &rep.PeriodEnd,
			&rep.CreatedAt, &rep.UpdatedAt,
			&sum.SeguimientoCount, &sum.ActividadCount, &sum.EstrategiaCount,
			&sum.ResultadoCount, &sum.DificultadCount, &sum.MetaCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan reporte summary: %w", err)
		}
		sum.Reporte = &rep
		list = append(list, &sum)
	}
	return list, total, rows.Err()
}

// Delete elimina el reporte; referencias y sub-registros caen por ON DELETE
// CASCADE. Los seguimientos citados no se tocan.
func (r *ReporteRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM reportes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete reporte: %w", err)
	}
	return nil
}

// CountReferences cuenta cuántos reportes citan un seguimiento.
func (r *ReporteRepo) CountReferences(seguimientoID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM reporte_seguimientos WHERE seguimiento_id = $1`, seguimientoID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count referencias: %w", err)
	}
	return n, nil
}
