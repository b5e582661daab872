package report

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// Mensajes de validación. Una llave por campo/sección: el formulario pinta un
// mensaje por llave, no uno plano.
const (
	msgRequerido       = "requerido"
	msgSeccionVacia    = "se requiere al menos un registro"
	msgPeriodoInvalido = "debe ser DIARIO, SEMANAL o MENSUAL"
	msgFinAntesInicio  = "la fecha fin no puede ser anterior a la fecha inicio"
)

// validateSave valida el árbol completo del reporte sin tocar persistencia.
// Acumula todas las violaciones en un solo mapa: cabecera, las cinco secciones
// (mínimo un item cada una) y los campos requeridos de cada item. Las
// referencias a seguimientos se validan aparte, dentro de la transacción.
func validateSave(in dto.SaveReporteRequest) domain.ValidationErrors {
	verrs := domain.ValidationErrors{}

	if in.PeriodType == "" {
		verrs.Add("period_type", msgRequerido)
	} else if !entity.ValidPeriodType(in.PeriodType) {
		verrs.Add("period_type", msgPeriodoInvalido)
	}
	if in.PeriodStart.IsZero() {
		verrs.Add("period_start", msgRequerido)
	}
	if in.PeriodEnd.IsZero() {
		verrs.Add("period_end", msgRequerido)
	} else if !in.PeriodStart.IsZero() && in.PeriodEnd.Before(in.PeriodStart) {
		verrs.Add("period_end", msgFinAntesInicio)
	}

	if len(in.Actividades) == 0 {
		verrs.Add("actividades", msgSeccionVacia)
	}
	for i, a := range in.Actividades {
		requireStr(verrs, "actividades", i, "activity_type", a.ActivityType)
		requireStr(verrs, "actividades", i, "description", a.Description)
		requireStr(verrs, "actividades", i, "remarks", a.Remarks)
		if a.ActivityDate.IsZero() {
			verrs.Add(itemKey("actividades", i, "activity_date"), msgRequerido)
		}
	}

	if len(in.Estrategias) == 0 {
		verrs.Add("estrategias", msgSeccionVacia)
	}
	for i, e := range in.Estrategias {
		requireStr(verrs, "estrategias", i, "method", e.Method)
		requireStr(verrs, "estrategias", i, "tools_used", e.ToolsUsed)
		requireStr(verrs, "estrategias", i, "expected_result", e.ExpectedResult)
	}

	if len(in.Resultados) == 0 {
		verrs.Add("resultados", msgSeccionVacia)
	}
	for i, r := range in.Resultados {
		requireStr(verrs, "resultados", i, "indicator", r.Indicator)
		requireStr(verrs, "resultados", i, "month_goal", r.MonthGoal)
		requireStr(verrs, "resultados", i, "actual_result", r.ActualResult)
		// remarks es opcional
	}

	if len(in.Dificultades) == 0 {
		verrs.Add("dificultades", msgSeccionVacia)
	}
	for i, d := range in.Dificultades {
		requireStr(verrs, "dificultades", i, "type", d.Type)
		requireStr(verrs, "dificultades", i, "description", d.Description)
		requireStr(verrs, "dificultades", i, "impact", d.Impact)
		// action_taken es opcional
	}

	if len(in.Metas) == 0 {
		verrs.Add("metas", msgSeccionVacia)
	}
	for i, m := range in.Metas {
		requireStr(verrs, "metas", i, "objective", m.Objective)
		requireStr(verrs, "metas", i, "action_to_implement", m.ActionToImplement)
		requireStr(verrs, "metas", i, "responsible", m.Responsible)
		// due_date es opcional
	}

	return verrs
}

func requireStr(verrs domain.ValidationErrors, section string, i int, field, value string) {
	if strings.TrimSpace(value) == "" {
		verrs.Add(itemKey(section, i, field), msgRequerido)
	}
}

func itemKey(section string, i int, field string) string {
	return fmt.Sprintf("%s[%d].%s", section, i, field)
}
