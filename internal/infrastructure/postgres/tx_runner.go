package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Ventas-api/internal/application/report"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ report.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunReporte inicia una transacción, ejecuta fn con los repos de reportes y
// seguimientos atados a la tx y hace Commit o Rollback. Si fn retorna error
// (validación incluida) no queda escrita ni una fila.
func (r *TxRunner) RunReporte(ctx context.Context, fn func(
	reporteRepo repository.ReporteRepository,
	seguimientoRepo repository.SeguimientoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	reporteRepo := NewReporteRepository(tx)
	seguimientoRepo := NewSeguimientoRepository(tx)

	if err := fn(reporteRepo, seguimientoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
