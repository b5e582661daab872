package entity

import "time"

// Periodos válidos para un reporte de venta.
const (
	PeriodoDiario  = "DIARIO"
	PeriodoSemanal = "SEMANAL"
	PeriodoMensual = "MENSUAL"
)

// ReporteVenta representa la cabecera de un reporte de venta: una ventana de
// tiempo más el conjunto de seguimientos citados y las cinco colecciones de
// sub-registros. Los sub-registros son propiedad exclusiva del reporte; los
// seguimientos solo se referencian.
type ReporteVenta struct {
	ID              string
	OwnerID         string
	PeriodType      string // DIARIO, SEMANAL, MENSUAL
	PeriodStart     time.Time
	PeriodEnd       time.Time
	Notes           string
	Recommendations string
	SeguimientoIDs  []string       // referencias sin propiedad; se hidratan en lecturas
	Seguimientos    []*Seguimiento // hidratado en Get; vacío en listados
	Actividades     []Actividad
	Estrategias     []Estrategia
	Resultados      []Resultado
	Dificultades    []Dificultad
	Metas           []Meta
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ValidPeriodType indica si el tipo de periodo es uno de los tres admitidos.
func ValidPeriodType(p string) bool {
	return p == PeriodoDiario || p == PeriodoSemanal || p == PeriodoMensual
}
