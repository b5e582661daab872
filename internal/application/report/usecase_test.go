package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El store de reportes y el de seguimientos se comparten
// entre el "pool" y la "transacción"; el fake de TxRunner toma un snapshot
// antes de ejecutar fn y lo restaura si fn falla, imitando el rollback real.
// ──────────────────────────────────────────────────────────────────────────────

type memReporteStore struct {
	rows      map[string]*entity.ReporteVenta
	failWrite error // si no es nil, CreateFull/ReplaceFull fallan
}

func newMemReporteStore() *memReporteStore {
	return &memReporteStore{rows: make(map[string]*entity.ReporteVenta)}
}

func (m *memReporteStore) CreateFull(r *entity.ReporteVenta) error {
	if m.failWrite != nil {
		return m.failWrite
	}
	cp := *r
	m.rows[r.ID] = &cp
	return nil
}

func (m *memReporteStore) ReplaceFull(r *entity.ReporteVenta) error {
	if m.failWrite != nil {
		return m.failWrite
	}
	if _, ok := m.rows[r.ID]; !ok {
		return errors.New("fila inexistente")
	}
	cp := *r
	m.rows[r.ID] = &cp
	return nil
}

func (m *memReporteStore) GetByID(id string) (*entity.ReporteVenta, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *memReporteStore) ListByOwner(ownerID string, limit, offset int) ([]*repository.ReporteSummary, int, error) {
	var out []*repository.ReporteSummary
	for _, r := range m.rows {
		if ownerID != "" && r.OwnerID != ownerID {
			continue
		}
		cp := *r
		out = append(out, &repository.ReporteSummary{
			Reporte:          &cp,
			SeguimientoCount: len(r.SeguimientoIDs),
			ActividadCount:   len(r.Actividades),
			EstrategiaCount:  len(r.Estrategias),
			ResultadoCount:   len(r.Resultados),
			DificultadCount:  len(r.Dificultades),
			MetaCount:        len(r.Metas),
		})
	}
	return out, len(out), nil
}

func (m *memReporteStore) Delete(id string) error {
	delete(m.rows, id)
	return nil
}

func (m *memReporteStore) CountReferences(seguimientoID string) (int, error) {
	n := 0
	for _, r := range m.rows {
		for _, sid := range r.SeguimientoIDs {
			if sid == seguimientoID {
				n++
			}
		}
	}
	return n, nil
}

type memSeguimientoStore struct {
	rows map[string]*entity.Seguimiento
}

func newMemSeguimientoStore() *memSeguimientoStore {
	return &memSeguimientoStore{rows: make(map[string]*entity.Seguimiento)}
}

func (m *memSeguimientoStore) add(id, ownerID string) {
	m.rows[id] = &entity.Seguimiento{
		ID:          id,
		CompanyName: "Empresa " + id,
		OwnerID:     ownerID,
		Status:      entity.SeguimientoEnProceso,
		StartDate:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memSeguimientoStore) Create(s *entity.Seguimiento) error { return nil }

func (m *memSeguimientoStore) GetByID(id string) (*entity.Seguimiento, error) {
	s, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memSeguimientoStore) GetByIDs(ids []string) (map[string]*entity.Seguimiento, error) {
	out := make(map[string]*entity.Seguimiento)
	for _, id := range ids {
		if s, ok := m.rows[id]; ok {
			cp := *s
			out[id] = &cp
		}
	}
	return out, nil
}

func (m *memSeguimientoStore) UpdateFields(id string, fields repository.SeguimientoUpdate, updatedAt time.Time) (bool, error) {
	return false, nil
}

func (m *memSeguimientoStore) Transition(id, newStatus string, endDate time.Time) (bool, error) {
	return false, nil
}

func (m *memSeguimientoStore) Search(f repository.SeguimientoFilter) ([]*entity.Seguimiento, int, error) {
	return nil, 0, nil
}

func (m *memSeguimientoStore) Delete(id string) error { return nil }

// memTxRunner ejecuta fn contra los stores compartidos con snapshot-rollback.
type memTxRunner struct {
	reportes     *memReporteStore
	seguimientos *memSeguimientoStore
}

func (t *memTxRunner) RunReporte(ctx context.Context, fn func(
	reporteRepo repository.ReporteRepository,
	seguimientoRepo repository.SeguimientoRepository,
) error) error {
	snapshot := make(map[string]*entity.ReporteVenta, len(t.reportes.rows))
	for k, v := range t.reportes.rows {
		cp := *v
		snapshot[k] = &cp
	}
	if err := fn(t.reportes, t.seguimientos); err != nil {
		t.reportes.rows = snapshot
		return err
	}
	return nil
}

const (
	segUno  = "bbbbbbbb-0000-0000-0000-000000000001"
	segDos  = "bbbbbbbb-0000-0000-0000-000000000002"
	segAjen = "bbbbbbbb-0000-0000-0000-000000000099"

	duenaAna     = "aaaaaaaa-0000-0000-0000-000000000001"
	vendedorBeto = "aaaaaaaa-0000-0000-0000-000000000002"
)

func buildReporteUseCase(policy Policy) (*ReporteUseCase, *memReporteStore, *memSeguimientoStore) {
	reportes := newMemReporteStore()
	seguimientos := newMemSeguimientoStore()
	seguimientos.add(segUno, duenaAna)
	seguimientos.add(segDos, duenaAna)
	seguimientos.add(segAjen, vendedorBeto)
	uc := NewReporteUseCase(
		&memTxRunner{reportes: reportes, seguimientos: seguimientos},
		reportes, seguimientos, policy,
	)
	return uc, reportes, seguimientos
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestReporteCreate_PersisteArbolCompleto(t *testing.T) {
	uc, store, _ := buildReporteUseCase(Policy{AllowForeign: true})

	in := requestValido()
	in.SeguimientoIDs = []string{segDos, segUno}

	out, err := uc.Create(context.Background(), duenaAna, entity.RoleVendedor, in)
	require.NoError(t, err)

	require.Len(t, store.rows, 1, "debe persistirse exactamente un reporte")
	saved := store.rows[out.ID]
	assert.Equal(t, duenaAna, saved.OwnerID)
	assert.Equal(t, []string{segDos, segUno}, saved.SeguimientoIDs,
		"las referencias conservan el orden de captura")
	assert.Len(t, saved.Actividades, 1)
	assert.Len(t, saved.Metas, 1)
	assert.Equal(t, 0, saved.Actividades[0].Posicion)

	require.Len(t, out.Seguimientos, 2, "la respuesta hidrata los seguimientos citados")
	assert.Equal(t, segDos, out.Seguimientos[0].ID, "hidratación en el orden de las referencias")
	assert.Equal(t, segUno, out.Seguimientos[1].ID)
}

func TestReporteCreate_SeccionVacia_NoPersisteNada(t *testing.T) {
	uc, store, _ := buildReporteUseCase(Policy{AllowForeign: true})

	in := requestValido()
	in.Dificultades = nil

	_, err := uc.Create(context.Background(), duenaAna, entity.RoleVendedor, in)

	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, msgSeccionVacia, verrs["dificultades"])
	assert.Empty(t, store.rows, "validación fallida = cero escrituras")
}

func TestReporteCreate_ReferenciaInexistente_NoPersisteNada(t *testing.T) {
	uc, store, _ := buildReporteUseCase(Policy{AllowForeign: true})

	in := requestValido()
	in.SeguimientoIDs = []string{segUno, "cccccccc-0000-0000-0000-000000000000"}

	_, err := uc.Create(context.Background(), duenaAna, entity.RoleVendedor, in)

	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs["seguimiento_ids"], "seguimientos inexistentes")
	assert.Contains(t, verrs["seguimiento_ids"], "cccccccc-0000-0000-0000-000000000000")
	assert.Empty(t, store.rows)
}

func TestReporteCreate_ReferenciaAjena_SegunPolitica(t *testing.T) {
	in := requestValido()
	in.SeguimientoIDs = []string{segAjen}

	// Política permisiva: un vendedor puede citar seguimientos ajenos.
	ucPermisivo, _, _ := buildReporteUseCase(Policy{AllowForeign: true})
	_, err := ucPermisivo.Create(context.Background(), duenaAna, entity.RoleVendedor, in)
	assert.NoError(t, err)

	// Política estricta: la referencia ajena es violación de validación.
	ucEstricto, store, _ := buildReporteUseCase(Policy{AllowForeign: false})
	_, err = ucEstricto.Create(context.Background(), duenaAna, entity.RoleVendedor, in)
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs["seguimiento_ids"], "seguimientos de otro vendedor")
	assert.Empty(t, store.rows)

	// Líder: la política estricta no lo limita, tiene vista global.
	ucLider, _, _ := buildReporteUseCase(Policy{AllowForeign: false})
	_, err = ucLider.Create(context.Background(), duenaAna, entity.RoleLider, in)
	assert.NoError(t, err)
}

func TestReporteCreate_ReferenciasDuplicadas_SeDeduplicanConservandoOrden(t *testing.T) {
	uc, store, _ := buildReporteUseCase(Policy{AllowForeign: true})

	in := requestValido()
	in.SeguimientoIDs = []string{segDos, segUno, segDos}

	out, err := uc.Create(context.Background(), duenaAna, entity.RoleVendedor, in)
	require.NoError(t, err)
	assert.Equal(t, []string{segDos, segUno}, store.rows[out.ID].SeguimientoIDs)
}

// Si la escritura falla a mitad de camino, el rollback no deja nada a medias.
func TestReporteCreate_FalloDeEscritura_Rollback(t *testing.T) {
	uc, store, _ := buildReporteUseCase(Policy{AllowForeign: true})
	store.failWrite = errors.New("conexión perdida")

	_, err := uc.Create(context.Background(), duenaAna, entity.RoleVendedor, requestValido())
	require.Error(t, err)
	assert.Empty(t, store.rows, "no debe quedar un reporte a medias")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reemplazo
// ──────────────────────────────────────────────────────────────────────────────

func TestReporteUpdate_ReemplazaTodoPreservandoDuenoYCreacion(t *testing.T) {
	uc, store, _ := buildReporteUseCase(Policy{AllowForeign: true})

	created, err := uc.Create(context.Background(), duenaAna, entity.RoleVendedor, requestValido())
	require.NoError(t, err)
	createdAt := store.rows[created.ID].CreatedAt

	in := requestValido()
	in.PeriodType = entity.PeriodoMensual
	in.Actividades = append(in.Actividades, dto.ActividadInput{
		ActivityType: "llamada",
		Description:  "Llamada de cierre",
		ActivityDate: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
		Remarks:      "cliente pidió cotización formal",
	})
	in.SeguimientoIDs = []string{segUno}

	out, err := uc.Update(context.Background(), created.ID, duenaAna, entity.RoleVendedor, in)
	require.NoError(t, err)

	saved := store.rows[created.ID]
	assert.Equal(t, entity.PeriodoMensual, saved.PeriodType)
	assert.Len(t, saved.Actividades, 2, "las secciones se reemplazan, no se fusionan")
	assert.Equal(t, []string{segUno}, saved.SeguimientoIDs)
	assert.Equal(t, duenaAna, saved.OwnerID, "el dueño no cambia en update")
	assert.Equal(t, createdAt, saved.CreatedAt, "la fecha de creación se preserva")
	assert.Equal(t, created.ID, out.ID)
}

func TestReporteUpdate_Invalido_ConservaVersionAnterior(t *testing.T) {
	uc, store, _ := buildReporteUseCase(Policy{AllowForeign: true})

	created, err := uc.Create(context.Background(), duenaAna, entity.RoleVendedor, requestValido())
	require.NoError(t, err)

	in := requestValido()
	in.Estrategias = nil

	_, err = uc.Update(context.Background(), created.ID, duenaAna, entity.RoleVendedor, in)
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	saved := store.rows[created.ID]
	assert.Len(t, saved.Estrategias, 1, "el update inválido no debe tocar el reporte guardado")
}

func TestReporteUpdate_Inexistente_RetornaNotFound(t *testing.T) {
	uc, _, _ := buildReporteUseCase(Policy{AllowForeign: true})

	_, err := uc.Update(context.Background(), "no-existe", duenaAna, entity.RoleVendedor, requestValido())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReporteUpdate_OtroVendedorNoEdita(t *testing.T) {
	uc, _, _ := buildReporteUseCase(Policy{AllowForeign: true})

	created, err := uc.Create(context.Background(), duenaAna, entity.RoleVendedor, requestValido())
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), created.ID, vendedorBeto, entity.RoleVendedor, requestValido())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Update(context.Background(), created.ID, vendedorBeto, entity.RoleLider, requestValido())
	assert.NoError(t, err, "el líder sí puede editar reportes ajenos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Lectura, listado y eliminación
// ──────────────────────────────────────────────────────────────────────────────

func TestReporteGet_AlcancePorRol(t *testing.T) {
	uc, _, _ := buildReporteUseCase(Policy{AllowForeign: true})

	created, err := uc.Create(context.Background(), duenaAna, entity.RoleVendedor, requestValido())
	require.NoError(t, err)

	_, err = uc.Get(created.ID, vendedorBeto, entity.RoleVendedor)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.Get(created.ID, vendedorBeto, entity.RoleLider)
	require.NoError(t, err)
	assert.Equal(t, created.ID, out.ID)
}

func TestReporteList_VendedorAcotado_ConConteos(t *testing.T) {
	uc, _, _ := buildReporteUseCase(Policy{AllowForeign: true})

	in := requestValido()
	in.SeguimientoIDs = []string{segUno, segDos}
	_, err := uc.Create(context.Background(), duenaAna, entity.RoleVendedor, in)
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), vendedorBeto, entity.RoleVendedor, requestValido())
	require.NoError(t, err)

	// El filtro de dueño se fuerza aunque el vendedor pida otro.
	out, err := uc.List(duenaAna, entity.RoleVendedor, vendedorBeto, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, duenaAna, out.Items[0].OwnerID)
	assert.Equal(t, 2, out.Items[0].SeguimientoCount)
	assert.Equal(t, 1, out.Items[0].ActividadCount)

	// Admin sin filtro ve ambos.
	out, err = uc.List("admin-id", entity.RoleAdmin, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
}

func TestReporteDelete_DuenoOAdmin(t *testing.T) {
	uc, store, _ := buildReporteUseCase(Policy{AllowForeign: true})

	created, err := uc.Create(context.Background(), duenaAna, entity.RoleVendedor, requestValido())
	require.NoError(t, err)

	err = uc.Delete(created.ID, vendedorBeto, entity.RoleVendedor)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = uc.Delete(created.ID, duenaAna, entity.RoleVendedor)
	require.NoError(t, err)
	assert.Empty(t, store.rows)
}

// Eliminar un reporte nunca toca los seguimientos que cita.
func TestReporteDelete_NoTocaSeguimientosCitados(t *testing.T) {
	uc, _, seguimientos := buildReporteUseCase(Policy{AllowForeign: true})

	in := requestValido()
	in.SeguimientoIDs = []string{segUno}
	created, err := uc.Create(context.Background(), duenaAna, entity.RoleVendedor, in)
	require.NoError(t, err)

	require.NoError(t, uc.Delete(created.ID, duenaAna, entity.RoleVendedor))

	s, err := seguimientos.GetByID(segUno)
	require.NoError(t, err)
	assert.NotNil(t, s, "el seguimiento citado sobrevive al borrado del reporte")
}
