package repository

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// ReporteSummary proyección ligera para listados: cabecera más conteos, sin
// sub-registros (listar muchos reportes con el árbol completo es un desperdicio).
type ReporteSummary struct {
	Reporte          *entity.ReporteVenta
	SeguimientoCount int
	ActividadCount   int
	EstrategiaCount  int
	ResultadoCount   int
	DificultadCount  int
	MetaCount        int
}

// ReporteRepository define el puerto de persistencia para ReporteVenta.
// CreateFull y ReplaceFull escriben cabecera, sub-registros y referencias; se
// usan dentro de la transacción del TxRunner para que todo-o-nada sea real.
type ReporteRepository interface {
	// CreateFull inserta cabecera, las cinco colecciones (con posición) y el
	// conjunto de referencias a seguimientos.
	CreateFull(r *entity.ReporteVenta) error
	// ReplaceFull actualiza la cabecera y reemplaza por completo sub-registros
	// y referencias (borrar-y-reinsertar; el cliente siempre envía el árbol entero).
	ReplaceFull(r *entity.ReporteVenta) error
	// GetByID obtiene cabecera, colecciones ordenadas por posición y los IDs
	// de seguimientos referenciados. No hidrata los seguimientos.
	GetByID(id string) (*entity.ReporteVenta, error)
	ListByOwner(ownerID string, limit, offset int) ([]*ReporteSummary, int, error)
	Delete(id string) error
	// CountReferences cuenta reportes que citan un seguimiento (bloquea su borrado).
	CountReferences(seguimientoID string) (int, error)
}
