package entity

import "time"

// Sub-registros de un reporte de venta. Cinco formas fijas, cada una una lista
// ordenada propiedad exclusiva de su reporte (se eliminan en cascada con él).
// Posicion conserva el orden en que fueron capturados.

// Actividad registra una actividad comercial realizada en el periodo.
type Actividad struct {
	ID           string
	ReporteID    string
	Posicion     int
	ActivityType string
	Description  string
	ActivityDate time.Time
	Remarks      string
}

// Estrategia registra una estrategia de venta aplicada.
type Estrategia struct {
	ID             string
	ReporteID      string
	Posicion       int
	Method         string
	ToolsUsed      string
	ExpectedResult string
}

// Resultado registra un indicador contra su meta mensual. Remarks es opcional.
type Resultado struct {
	ID           string
	ReporteID    string
	Posicion     int
	Indicator    string
	MonthGoal    string
	ActualResult string
	Remarks      string
}

// Dificultad registra un obstáculo encontrado. ActionTaken es opcional.
type Dificultad struct {
	ID          string
	ReporteID   string
	Posicion    int
	Type        string
	Description string
	Impact      string
	ActionTaken string
}

// Meta registra un objetivo para el siguiente periodo. DueDate es opcional.
type Meta struct {
	ID                string
	ReporteID         string
	Posicion          int
	Objective         string
	ActionToImplement string
	Responsible       string
	DueDate           *time.Time
}
