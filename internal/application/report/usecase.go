package report

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// ReporteUseCase agregador de reportes de venta: creación y reemplazo
// atómicos de la cabecera, las cinco colecciones de sub-registros y el
// conjunto de seguimientos referenciados. La validación se evalúa completa
// antes de escribir; si hay cualquier violación no se persiste nada.
type ReporteUseCase struct {
	txRunner        TxRunner
	reporteRepo     repository.ReporteRepository
	seguimientoRepo repository.SeguimientoRepository
	policy          Policy
}

// NewReporteUseCase construye el caso de uso. reporteRepo y seguimientoRepo
// son los adaptadores atados al pool (solo lecturas); las escrituras pasan por
// los repos transaccionales que entrega txRunner.
func NewReporteUseCase(
	txRunner TxRunner,
	reporteRepo repository.ReporteRepository,
	seguimientoRepo repository.SeguimientoRepository,
	policy Policy,
) *ReporteUseCase {
	return &ReporteUseCase{
		txRunner:        txRunner,
		reporteRepo:     reporteRepo,
		seguimientoRepo: seguimientoRepo,
		policy:          policy,
	}
}

// Create valida y persiste un reporte completo en una sola transacción:
// cabecera, sub-registros con su posición y referencias a seguimientos.
func (uc *ReporteUseCase) Create(ctx context.Context, ownerID, role string, in dto.SaveReporteRequest) (*dto.ReporteResponse, error) {
	verrs := validateSave(in)

	now := time.Now()
	r := buildReporte(uuid.New().String(), ownerID, in, now, now)

	err := uc.txRunner.RunReporte(ctx, func(
		reporteRepo repository.ReporteRepository,
		seguimientoRepo repository.SeguimientoRepository,
	) error {
		if err := uc.checkReferences(seguimientoRepo, ownerID, role, in.SeguimientoIDs, verrs); err != nil {
			return err
		}
		if err := verrs.AsError(); err != nil {
			return err
		}
		return reporteRepo.CreateFull(r)
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(r)
}

// Update reemplaza por completo un reporte existente: misma validación que
// Create y semántica borrar-y-reinsertar para sub-registros y referencias
// (el cliente siempre envía el árbol entero, nunca un diff).
func (uc *ReporteUseCase) Update(ctx context.Context, id, callerID, role string, in dto.SaveReporteRequest) (*dto.ReporteResponse, error) {
	verrs := validateSave(in)

	var r *entity.ReporteVenta
	err := uc.txRunner.RunReporte(ctx, func(
		reporteRepo repository.ReporteRepository,
		seguimientoRepo repository.SeguimientoRepository,
	) error {
		existing, err := reporteRepo.GetByID(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		if existing.OwnerID != callerID && !entity.CanViewAll(role) {
			return domain.ErrForbidden
		}
		if err := uc.checkReferences(seguimientoRepo, existing.OwnerID, role, in.SeguimientoIDs, verrs); err != nil {
			return err
		}
		if err := verrs.AsError(); err != nil {
			return err
		}
		r = buildReporte(id, existing.OwnerID, in, existing.CreatedAt, time.Now())
		return reporteRepo.ReplaceFull(r)
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(r)
}

// Get obtiene el reporte completo con los seguimientos hidratados (no solo
// IDs) y las cinco colecciones en su orden de captura.
func (uc *ReporteUseCase) Get(id, callerID, role string) (*dto.ReporteResponse, error) {
	r, err := uc.reporteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if r.OwnerID != callerID && !entity.CanViewAll(role) {
		return nil, domain.ErrForbidden
	}
	return uc.toResponse(r)
}

// List lista resúmenes (cabecera + conteos, sin sub-registros). Un vendedor
// queda acotado a sus reportes; lider/admin pueden omitir el filtro de dueño.
func (uc *ReporteUseCase) List(callerID, role, ownerFilter string, page dto.PageRequest) (*dto.ReporteListResponse, error) {
	page.DefaultPage()
	if !entity.CanViewAll(role) {
		ownerFilter = callerID
	}
	summaries, total, err := uc.reporteRepo.ListByOwner(ownerFilter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReporteSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, dto.ReporteSummaryResponse{
			ID:               s.Reporte.ID,
			OwnerID:          s.Reporte.OwnerID,
			PeriodType:       s.Reporte.PeriodType,
			PeriodStart:      s.Reporte.PeriodStart,
			PeriodEnd:        s.Reporte.PeriodEnd,
			SeguimientoCount: s.SeguimientoCount,
			ActividadCount:   s.ActividadCount,
			EstrategiaCount:  s.EstrategiaCount,
			ResultadoCount:   s.ResultadoCount,
			DificultadCount:  s.DificultadCount,
			MetaCount:        s.MetaCount,
			CreatedAt:        s.Reporte.CreatedAt,
		})
	}
	return &dto.ReporteListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete elimina un reporte con sus sub-registros y referencias en cascada.
// Nunca toca los seguimientos citados: la referencia no es propiedad.
func (uc *ReporteUseCase) Delete(id, callerID, role string) error {
	r, err := uc.reporteRepo.GetByID(id)
	if err != nil {
		return err
	}
	if r == nil {
		return domain.ErrNotFound
	}
	if r.OwnerID != callerID && role != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	return uc.reporteRepo.Delete(id)
}

// checkReferences resuelve cada ID citado vía GetByIDs y acumula en verrs los
// no resueltos. GetByIDs omite silenciosamente los desconocidos, así que la
// completitud se verifica aquí. Con AllowForeign en false, un rol sin vista
// global tampoco puede citar seguimientos ajenos.
func (uc *ReporteUseCase) checkReferences(
	seguimientoRepo repository.SeguimientoRepository,
	ownerID, role string,
	ids []string,
	verrs domain.ValidationErrors,
) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := seguimientoRepo.GetByIDs(ids)
	if err != nil {
		return err
	}
	var missing, foreign []string
	for _, id := range ids {
		s, ok := found[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		if !uc.policy.AllowForeign && !entity.CanViewAll(role) && s.OwnerID != ownerID {
			foreign = append(foreign, id)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		verrs.Add("seguimiento_ids", "seguimientos inexistentes: "+strings.Join(missing, ", "))
	} else if len(foreign) > 0 {
		sort.Strings(foreign)
		verrs.Add("seguimiento_ids", "seguimientos de otro vendedor: "+strings.Join(foreign, ", "))
	}
	return nil
}

// buildReporte arma la entidad completa a partir del request, asignando IDs
// nuevos a todos los sub-registros y conservando el orden de captura en
// Posicion. Los IDs referenciados se deduplican conservando el primer orden.
func buildReporte(id, ownerID string, in dto.SaveReporteRequest, createdAt, updatedAt time.Time) *entity.ReporteVenta {
	r := &entity.ReporteVenta{
		ID:              id,
		OwnerID:         ownerID,
		PeriodType:      in.PeriodType,
		PeriodStart:     in.PeriodStart,
		PeriodEnd:       in.PeriodEnd,
		Notes:           in.Notes,
		Recommendations: in.Recommendations,
		SeguimientoIDs:  dedup(in.SeguimientoIDs),
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
	for i, a := range in.Actividades {
		r.Actividades = append(r.Actividades, entity.Actividad{
			ID: uuid.New().String(), ReporteID: id, Posicion: i,
			ActivityType: a.ActivityType, Description: a.Description,
			ActivityDate: a.ActivityDate, Remarks: a.Remarks,
		})
	}
	for i, e := range in.Estrategias {
		r.Estrategias = append(r.Estrategias, entity.Estrategia{
			ID: uuid.New().String(), ReporteID: id, Posicion: i,
			Method: e.Method, ToolsUsed: e.ToolsUsed, ExpectedResult: e.ExpectedResult,
		})
	}
	for i, res := range in.Resultados {
		r.Resultados = append(r.Resultados, entity.Resultado{
			ID: uuid.New().String(), ReporteID: id, Posicion: i,
			Indicator: res.Indicator, MonthGoal: res.MonthGoal,
			ActualResult: res.ActualResult, Remarks: res.Remarks,
		})
	}
	for i, d := range in.Dificultades {
		r.Dificultades = append(r.Dificultades, entity.Dificultad{
			ID: uuid.New().String(), ReporteID: id, Posicion: i,
			Type: d.Type, Description: d.Description,
			Impact: d.Impact, ActionTaken: d.ActionTaken,
		})
	}
	for i, m := range in.Metas {
		r.Metas = append(r.Metas, entity.Meta{
			ID: uuid.New().String(), ReporteID: id, Posicion: i,
			Objective: m.Objective, ActionToImplement: m.ActionToImplement,
			Responsible: m.Responsible, DueDate: m.DueDate,
		})
	}
	return r
}

func dedup(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// toResponse hidrata los seguimientos referenciados (en el orden del conjunto
// de referencias) y arma la respuesta completa. Los campos del seguimiento
// nunca se duplican dentro del reporte; siempre se resuelven en lectura.
func (uc *ReporteUseCase) toResponse(r *entity.ReporteVenta) (*dto.ReporteResponse, error) {
	resp := &dto.ReporteResponse{
		ID:              r.ID,
		OwnerID:         r.OwnerID,
		PeriodType:      r.PeriodType,
		PeriodStart:     r.PeriodStart,
		PeriodEnd:       r.PeriodEnd,
		Notes:           r.Notes,
		Recommendations: r.Recommendations,
		Seguimientos:    []dto.SeguimientoResponse{},
		Actividades:     make([]dto.ActividadInput, 0, len(r.Actividades)),
		Estrategias:     make([]dto.EstrategiaInput, 0, len(r.Estrategias)),
		Resultados:      make([]dto.ResultadoInput, 0, len(r.Resultados)),
		Dificultades:    make([]dto.DificultadInput, 0, len(r.Dificultades)),
		Metas:           make([]dto.MetaInput, 0, len(r.Metas)),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if len(r.SeguimientoIDs) > 0 {
		found, err := uc.seguimientoRepo.GetByIDs(r.SeguimientoIDs)
		if err != nil {
			return nil, err
		}
		for _, id := range r.SeguimientoIDs {
			s, ok := found[id]
			if !ok {
				continue // el FK RESTRICT lo impide; tolerante por si acaso
			}
			resp.Seguimientos = append(resp.Seguimientos, dto.SeguimientoResponse{
				ID:           s.ID,
				CompanyName:  s.CompanyName,
				OwnerID:      s.OwnerID,
				PaqueteID:    s.PaqueteID,
				PaqueteName:  s.PaqueteName,
				Status:       s.Status,
				StartDate:    s.StartDate,
				EndDate:      s.EndDate,
				Description:  s.Description,
				ContactPhone: s.ContactPhone,
				CreatedAt:    s.CreatedAt,
				UpdatedAt:    s.UpdatedAt,
			})
		}
	}
	for _, a := range r.Actividades {
		resp.Actividades = append(resp.Actividades, dto.ActividadInput{
			ActivityType: a.ActivityType, Description: a.Description,
			ActivityDate: a.ActivityDate, Remarks: a.Remarks,
		})
	}
	for _, e := range r.Estrategias {
		resp.Estrategias = append(resp.Estrategias, dto.EstrategiaInput{
			Method: e.Method, ToolsUsed: e.ToolsUsed, ExpectedResult: e.ExpectedResult,
		})
	}
	for _, res := range r.Resultados {
		resp.Resultados = append(resp.Resultados, dto.ResultadoInput{
			Indicator: res.Indicator, MonthGoal: res.MonthGoal,
			ActualResult: res.ActualResult, Remarks: res.Remarks,
		})
	}
	for _, d := range r.Dificultades {
		resp.Dificultades = append(resp.Dificultades, dto.DificultadInput{
			Type: d.Type, Description: d.Description,
			Impact: d.Impact, ActionTaken: d.ActionTaken,
		})
	}
	for _, m := range r.Metas {
		resp.Metas = append(resp.Metas, dto.MetaInput{
			Objective: m.Objective, ActionToImplement: m.ActionToImplement,
			Responsible: m.Responsible, DueDate: m.DueDate,
		})
	}
	return resp, nil
}
