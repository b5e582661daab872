package dto

import "time"

// SaveReporteRequest body para POST /api/reportes y PUT /api/reportes/:id.
// El cliente siempre envía el árbol completo: cabecera, referencias y las
// cinco colecciones. En update se reemplaza todo (borrar-y-reinsertar).
type SaveReporteRequest struct {
	PeriodType      string            `json:"period_type" validate:"required,oneof=DIARIO SEMANAL MENSUAL"`
	PeriodStart     time.Time         `json:"period_start" validate:"required"`
	PeriodEnd       time.Time         `json:"period_end" validate:"required"`
	Notes           string            `json:"notes,omitempty"`
	Recommendations string            `json:"recommendations,omitempty"`
	SeguimientoIDs  []string          `json:"seguimiento_ids"`
	Actividades     []ActividadInput  `json:"actividades"`
	Estrategias     []EstrategiaInput `json:"estrategias"`
	Resultados      []ResultadoInput  `json:"resultados"`
	Dificultades    []DificultadInput `json:"dificultades"`
	Metas           []MetaInput       `json:"metas"`
}

// ActividadInput item de la sección actividades. Todos los campos requeridos.
type ActividadInput struct {
	ActivityType string    `json:"activity_type"`
	Description  string    `json:"description"`
	ActivityDate time.Time `json:"activity_date"`
	Remarks      string    `json:"remarks"`
}

// EstrategiaInput item de la sección estrategias. Todos los campos requeridos.
type EstrategiaInput struct {
	Method         string `json:"method"`
	ToolsUsed      string `json:"tools_used"`
	ExpectedResult string `json:"expected_result"`
}

// ResultadoInput item de la sección resultados. Remarks opcional.
type ResultadoInput struct {
	Indicator    string `json:"indicator"`
	MonthGoal    string `json:"month_goal"`
	ActualResult string `json:"actual_result"`
	Remarks      string `json:"remarks,omitempty"`
}

// DificultadInput item de la sección dificultades. ActionTaken opcional.
type DificultadInput struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	ActionTaken string `json:"action_taken,omitempty"`
}

// MetaInput item de la sección metas. DueDate opcional.
type MetaInput struct {
	Objective         string     `json:"objective"`
	ActionToImplement string     `json:"action_to_implement"`
	Responsible       string     `json:"responsible"`
	DueDate           *time.Time `json:"due_date,omitempty"`
}

// ReporteResponse reporte completo para GET /api/reportes/:id: cabecera,
// seguimientos hidratados y las cinco colecciones en su orden de captura.
type ReporteResponse struct {
	ID              string                `json:"id"`
	OwnerID         string                `json:"owner_id"`
	PeriodType      string                `json:"period_type"`
	PeriodStart     time.Time             `json:"period_start"`
	PeriodEnd       time.Time             `json:"period_end"`
	Notes           string                `json:"notes,omitempty"`
	Recommendations string                `json:"recommendations,omitempty"`
	Seguimientos    []SeguimientoResponse `json:"seguimientos"`
	Actividades     []ActividadInput      `json:"actividades"`
	Estrategias     []EstrategiaInput     `json:"estrategias"`
	Resultados      []ResultadoInput      `json:"resultados"`
	Dificultades    []DificultadInput     `json:"dificultades"`
	Metas           []MetaInput           `json:"metas"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// ReporteSummaryResponse proyección ligera para listados: cabecera + conteos.
type ReporteSummaryResponse struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"owner_id"`
	PeriodType       string    `json:"period_type"`
	PeriodStart      time.Time `json:"period_start"`
	PeriodEnd        time.Time `json:"period_end"`
	SeguimientoCount int       `json:"seguimiento_count"`
	ActividadCount   int       `json:"actividad_count"`
	EstrategiaCount  int       `json:"estrategia_count"`
	ResultadoCount   int       `json:"resultado_count"`
	DificultadCount  int       `json:"dificultad_count"`
	MetaCount        int       `json:"meta_count"`
	CreatedAt        time.Time `json:"created_at"`
}

// ReporteListResponse página de resúmenes de reporte.
type ReporteListResponse struct {
	Items []ReporteSummaryResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}
