package report

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos de
// reportes y seguimientos atados a la misma tx. Si fn retorna error se hace
// rollback: la aplicación parcial de un reporte es un fallo de corrección,
// no un modo degradado aceptable.
type TxRunner interface {
	RunReporte(ctx context.Context, fn func(
		reporteRepo repository.ReporteRepository,
		seguimientoRepo repository.SeguimientoRepository,
	) error) error
}

// Policy política configurable del agregador de reportes.
type Policy struct {
	// AllowForeign permite que un vendedor cite seguimientos que no le
	// pertenecen (un líder agrega entre vendedores). En false, Create/Update
	// también verifican propiedad de cada referencia para roles sin vista global.
	AllowForeign bool
}
