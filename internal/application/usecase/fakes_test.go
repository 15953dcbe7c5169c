package usecase_test

import (
	"context"
	"strings"

	"github.com/ENEASJO/control-valo-api/internal/application/usecase"
	"github.com/ENEASJO/control-valo-api/internal/domain"
	"github.com/ENEASJO/control-valo-api/internal/domain/entity"
	"github.com/ENEASJO/control-valo-api/internal/domain/query"
	"github.com/ENEASJO/control-valo-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia. Reproducen los contratos
// relevantes del adaptador real: nil cuando no hay fila, ErrDuplicate en
// violación de unicidad, reemplazo de colecciones todo-o-nada vía el TxRunner.
// ──────────────────────────────────────────────────────────────────────────────

type fakeEmpresaRepo struct {
	store map[string]*entity.Empresa
}

func newFakeEmpresaRepo() *fakeEmpresaRepo {
	return &fakeEmpresaRepo{store: map[string]*entity.Empresa{}}
}

func cloneEmpresa(e *entity.Empresa) *entity.Empresa {
	c := *e
	c.Integrantes = append([]entity.IntegranteConsorcio(nil), e.Integrantes...)
	return &c
}

func (r *fakeEmpresaRepo) Create(_ context.Context, e *entity.Empresa) error {
	for _, otra := range r.store {
		if otra.RUC == e.RUC {
			return domain.ErrDuplicate
		}
	}
	r.store[e.ID] = cloneEmpresa(e)
	return nil
}

func (r *fakeEmpresaRepo) GetByID(_ context.Context, id string) (*entity.Empresa, error) {
	e, ok := r.store[id]
	if !ok {
		return nil, nil
	}
	return cloneEmpresa(e), nil
}

func (r *fakeEmpresaRepo) GetByRUC(_ context.Context, ruc string) (*entity.Empresa, error) {
	for _, e := range r.store {
		if e.RUC == ruc {
			return cloneEmpresa(e), nil
		}
	}
	return nil, nil
}

func (r *fakeEmpresaRepo) Update(_ context.Context, e *entity.Empresa) error {
	actual, ok := r.store[e.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c := cloneEmpresa(e)
	c.Integrantes = actual.Integrantes
	r.store[e.ID] = c
	return nil
}

func (r *fakeEmpresaRepo) matches(e *entity.Empresa, search string) bool {
	if search == "" {
		return true
	}
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(e.Nombre), s) || strings.Contains(e.RUC, search)
}

func (r *fakeEmpresaRepo) List(_ context.Context, shape query.Shape) ([]*entity.Empresa, error) {
	var all []*entity.Empresa
	for _, e := range r.store {
		if r.matches(e, shape.Search) {
			all = append(all, cloneEmpresa(e))
		}
	}
	if shape.Offset >= len(all) {
		return nil, nil
	}
	end := shape.Offset + shape.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[shape.Offset:end], nil
}

func (r *fakeEmpresaRepo) Count(_ context.Context, search string) (int, error) {
	total := 0
	for _, e := range r.store {
		if r.matches(e, search) {
			total++
		}
	}
	return total, nil
}

func (r *fakeEmpresaRepo) Delete(_ context.Context, id string) error {
	delete(r.store, id)
	return nil
}

func (r *fakeEmpresaRepo) ReplaceIntegrantes(_ context.Context, empresaID string, integrantes []entity.IntegranteConsorcio) error {
	e, ok := r.store[empresaID]
	if !ok {
		return domain.ErrNotFound
	}
	e.Integrantes = append([]entity.IntegranteConsorcio(nil), integrantes...)
	return nil
}

type fakeObraRepo struct {
	store map[string]*entity.Obra

	// failReplace fuerza el fallo de ReplaceProfesionales para probar que la
	// transacción revierte el alta o la actualización completa.
	failReplace error
}

func newFakeObraRepo() *fakeObraRepo {
	return &fakeObraRepo{store: map[string]*entity.Obra{}}
}

func cloneObra(o *entity.Obra) *entity.Obra {
	c := *o
	c.Profesionales = append([]entity.Profesional(nil), o.Profesionales...)
	return &c
}

func (r *fakeObraRepo) Create(_ context.Context, o *entity.Obra) error {
	for _, otra := range r.store {
		if otra.Tipo == o.Tipo && otra.NumeroContrato == o.NumeroContrato {
			return domain.ErrDuplicate
		}
	}
	c := cloneObra(o)
	c.Profesionales = nil
	r.store[o.ID] = c
	return nil
}

func (r *fakeObraRepo) GetByID(_ context.Context, tipo entity.TipoObra, id string) (*entity.Obra, error) {
	o, ok := r.store[id]
	if !ok || o.Tipo != tipo {
		return nil, nil
	}
	return cloneObra(o), nil
}

func (r *fakeObraRepo) GetByNumeroContrato(_ context.Context, tipo entity.TipoObra, numero string) (*entity.Obra, error) {
	for _, o := range r.store {
		if o.Tipo == tipo && o.NumeroContrato == numero {
			return cloneObra(o), nil
		}
	}
	return nil, nil
}

func (r *fakeObraRepo) Update(_ context.Context, o *entity.Obra) error {
	actual, ok := r.store[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, otra := range r.store {
		if otra.ID != o.ID && otra.Tipo == o.Tipo && otra.NumeroContrato == o.NumeroContrato {
			return domain.ErrDuplicate
		}
	}
	c := cloneObra(o)
	c.Profesionales = actual.Profesionales
	r.store[o.ID] = c
	return nil
}

func (r *fakeObraRepo) matches(o *entity.Obra, search string) bool {
	if search == "" {
		return true
	}
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(o.Nombre), s) ||
		strings.Contains(strings.ToLower(o.NumeroContrato), s) ||
		strings.Contains(strings.ToLower(o.NumeroExpediente), s)
}

func (r *fakeObraRepo) List(_ context.Context, tipo entity.TipoObra, shape query.Shape) ([]*entity.Obra, error) {
	var all []*entity.Obra
	for _, o := range r.store {
		if o.Tipo == tipo && r.matches(o, shape.Search) {
			all = append(all, cloneObra(o))
		}
	}
	if shape.Offset >= len(all) {
		return nil, nil
	}
	end := shape.Offset + shape.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[shape.Offset:end], nil
}

func (r *fakeObraRepo) Count(_ context.Context, tipo entity.TipoObra, search string) (int, error) {
	total := 0
	for _, o := range r.store {
		if o.Tipo == tipo && r.matches(o, search) {
			total++
		}
	}
	return total, nil
}

func (r *fakeObraRepo) Delete(_ context.Context, id string) error {
	delete(r.store, id)
	return nil
}

func (r *fakeObraRepo) CountByEmpresa(_ context.Context, empresaID string) (int, error) {
	total := 0
	for _, o := range r.store {
		if o.EmpresaEjecutoraID == empresaID || o.EmpresaSupervisoraID == empresaID {
			total++
		}
	}
	return total, nil
}

func (r *fakeObraRepo) ReplaceProfesionales(_ context.Context, obraID string, profesionales []entity.Profesional) error {
	if r.failReplace != nil {
		return r.failReplace
	}
	o, ok := r.store[obraID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Profesionales = append([]entity.Profesional(nil), profesionales...)
	return nil
}

type fakeProfesionalRepo struct {
	store map[string]*entity.Profesional
}

func newFakeProfesionalRepo() *fakeProfesionalRepo {
	return &fakeProfesionalRepo{store: map[string]*entity.Profesional{}}
}

func (r *fakeProfesionalRepo) ListByObra(_ context.Context, obraID string) ([]entity.Profesional, error) {
	var lista []entity.Profesional
	for _, p := range r.store {
		if p.ObraID == obraID {
			lista = append(lista, *p)
		}
	}
	return lista, nil
}

func (r *fakeProfesionalRepo) GetByID(_ context.Context, id string) (*entity.Profesional, error) {
	p, ok := r.store[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *fakeProfesionalRepo) Create(_ context.Context, p *entity.Profesional) error {
	c := *p
	r.store[p.ID] = &c
	return nil
}

func (r *fakeProfesionalRepo) Update(_ context.Context, p *entity.Profesional) error {
	if _, ok := r.store[p.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *p
	r.store[p.ID] = &c
	return nil
}

func (r *fakeProfesionalRepo) Delete(_ context.Context, id string) error {
	delete(r.store, id)
	return nil
}

type fakeValorizacionRepo struct {
	store map[string]*entity.Valorizacion
}

func newFakeValorizacionRepo() *fakeValorizacionRepo {
	return &fakeValorizacionRepo{store: map[string]*entity.Valorizacion{}}
}

func (r *fakeValorizacionRepo) Create(_ context.Context, v *entity.Valorizacion) error {
	for _, otra := range r.store {
		if otra.ObraID == v.ObraID && otra.Numero == v.Numero {
			return domain.ErrDuplicate
		}
	}
	c := *v
	r.store[v.ID] = &c
	return nil
}

func (r *fakeValorizacionRepo) GetByID(_ context.Context, id string) (*entity.Valorizacion, error) {
	v, ok := r.store[id]
	if !ok {
		return nil, nil
	}
	c := *v
	return &c, nil
}

func (r *fakeValorizacionRepo) GetByObraAndNumero(_ context.Context, obraID string, numero int) (*entity.Valorizacion, error) {
	for _, v := range r.store {
		if v.ObraID == obraID && v.Numero == numero {
			c := *v
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeValorizacionRepo) ListByObra(_ context.Context, obraID string) ([]entity.Valorizacion, error) {
	var lista []entity.Valorizacion
	for _, v := range r.store {
		if v.ObraID == obraID {
			lista = append(lista, *v)
		}
	}
	return lista, nil
}

func (r *fakeValorizacionRepo) CountByObra(_ context.Context, obraID string) (int, error) {
	total := 0
	for _, v := range r.store {
		if v.ObraID == obraID {
			total++
		}
	}
	return total, nil
}

func (r *fakeValorizacionRepo) Delete(_ context.Context, id string) error {
	delete(r.store, id)
	return nil
}

// fakeTxRunner ejecuta el callback sobre los mismos fakes y, si falla,
// restaura el estado previo (simula el rollback del adaptador real).
// Los overrides permiten entregar al callback un repositorio decorado
// (p. ej. uno que falla a mitad de camino) sin perder el snapshot.
type fakeTxRunner struct {
	empresas *fakeEmpresaRepo
	obras    *fakeObraRepo

	empresasOverride repository.EmpresaRepository
	obrasOverride    repository.ObraRepository
}

var _ usecase.TxRunner = (*fakeTxRunner)(nil)

func (t *fakeTxRunner) Run(_ context.Context, fn func(repository.EmpresaRepository, repository.ObraRepository) error) error {
	snapEmpresas := map[string]*entity.Empresa{}
	for id, e := range t.empresas.store {
		snapEmpresas[id] = cloneEmpresa(e)
	}
	snapObras := map[string]*entity.Obra{}
	for id, o := range t.obras.store {
		snapObras[id] = cloneObra(o)
	}

	var empresas repository.EmpresaRepository = t.empresas
	if t.empresasOverride != nil {
		empresas = t.empresasOverride
	}
	var obras repository.ObraRepository = t.obras
	if t.obrasOverride != nil {
		obras = t.obrasOverride
	}

	if err := fn(empresas, obras); err != nil {
		t.empresas.store = snapEmpresas
		t.obras.store = snapObras
		return err
	}
	return nil
}

// empresaRepoConFallo delega todo en el fake salvo el reemplazo de
// integrantes, que falla siempre.
type empresaRepoConFallo struct {
	*fakeEmpresaRepo
	err error
}

func (r *empresaRepoConFallo) ReplaceIntegrantes(context.Context, string, []entity.IntegranteConsorcio) error {
	return r.err
}

// fixture arma un juego completo de fakes y casos de uso listos para usar.
type fixture struct {
	empresas       *fakeEmpresaRepo
	obras          *fakeObraRepo
	profesionales  *fakeProfesionalRepo
	valorizaciones *fakeValorizacionRepo

	empresaUC      *usecase.EmpresaUseCase
	obraUC         *usecase.ObraUseCase
	profesionalUC  *usecase.ProfesionalUseCase
	valorizacionUC *usecase.ValorizacionUseCase
}

func newFixture() *fixture {
	f := &fixture{
		empresas:       newFakeEmpresaRepo(),
		obras:          newFakeObraRepo(),
		profesionales:  newFakeProfesionalRepo(),
		valorizaciones: newFakeValorizacionRepo(),
	}
	tx := &fakeTxRunner{empresas: f.empresas, obras: f.obras}
	f.empresaUC = usecase.NewEmpresaUseCase(f.empresas, f.obras, tx)
	f.obraUC = usecase.NewObraUseCase(f.obras, f.empresas, f.valorizaciones, tx)
	f.profesionalUC = usecase.NewProfesionalUseCase(f.profesionales, f.obras)
	f.valorizacionUC = usecase.NewValorizacionUseCase(f.valorizaciones, f.obras)
	return f
}
