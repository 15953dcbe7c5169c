package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ENEASJO/control-valo-api/internal/application/dto"
	"github.com/ENEASJO/control-valo-api/internal/application/usecase"
	"github.com/ENEASJO/control-valo-api/internal/domain"
	"github.com/ENEASJO/control-valo-api/internal/domain/entity"
	"github.com/ENEASJO/control-valo-api/internal/domain/valuation"
)

func seedEmpresa(f *fixture, nombre, ruc string) *entity.Empresa {
	now := time.Now()
	e := &entity.Empresa{
		ID:        uuid.New().String(),
		Nombre:    nombre,
		RUC:       ruc,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.empresas.store[e.ID] = e
	return e
}

func TestEmpresaCreate_IndividualDescartaIntegrantes(t *testing.T) {
	f := newFixture()

	// Una empresa individual con integrantes en el payload: se ignoran.
	out, err := f.empresaUC.Create(context.Background(), dto.CreateEmpresaRequest{
		Nombre:      "Constructora Andina SAC",
		Ruc:         "20123456789",
		EsConsorcio: false,
		IntegrantesConsorcio: []dto.IntegranteRequest{
			{Nombre: "Fantasma", Ruc: "20999999999", PorcentajeParticipacion: 100},
		},
	})
	require.NoError(t, err)
	assert.False(t, out.EsConsorcio)
	assert.Empty(t, out.IntegrantesConsorcio)
}

func TestEmpresaCreate_ConsorcioValido(t *testing.T) {
	f := newFixture()

	out, err := f.empresaUC.Create(context.Background(), dto.CreateEmpresaRequest{
		Nombre:      "Consorcio Vial Norte",
		Ruc:         "20555555555",
		EsConsorcio: true,
		IntegrantesConsorcio: []dto.IntegranteRequest{
			{Nombre: "Empresa A", Ruc: "20111111111", PorcentajeParticipacion: 60},
			{Nombre: "Empresa B", Ruc: "20222222222", PorcentajeParticipacion: 40},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.IntegrantesConsorcio, 2)
	assert.NotEmpty(t, out.IntegrantesConsorcio[0].ID)
	assert.Equal(t, out.ID, out.IntegrantesConsorcio[0].EmpresaID)
}

func TestEmpresaCreate_ConsorcioSumaExcede100(t *testing.T) {
	f := newFixture()

	_, err := f.empresaUC.Create(context.Background(), dto.CreateEmpresaRequest{
		Nombre:      "Consorcio Sobregirado",
		Ruc:         "20555555555",
		EsConsorcio: true,
		IntegrantesConsorcio: []dto.IntegranteRequest{
			{Nombre: "Empresa A", Ruc: "20111111111", PorcentajeParticipacion: 60},
			{Nombre: "Empresa B", Ruc: "20222222222", PorcentajeParticipacion: 50},
		},
	})
	var perr *valuation.ErrorPorcentaje
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, valuation.CodigoSumaExcede, perr.Codigo)
	assert.InDelta(t, 110, perr.Suma, 0.001)
	assert.Empty(t, f.empresas.store, "no debe persistir nada")
}

func TestEmpresaCreate_ConsorcioSinIntegrantes(t *testing.T) {
	f := newFixture()

	_, err := f.empresaUC.Create(context.Background(), dto.CreateEmpresaRequest{
		Nombre:      "Consorcio Vacío",
		Ruc:         "20555555555",
		EsConsorcio: true,
	})
	var perr *valuation.ErrorPorcentaje
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, valuation.CodigoRequiereAlMenos1, perr.Codigo)
}

func TestEmpresaCreate_RUCDuplicado(t *testing.T) {
	f := newFixture()
	seedEmpresa(f, "Existente", "20123456789")

	_, err := f.empresaUC.Create(context.Background(), dto.CreateEmpresaRequest{
		Nombre: "Otra",
		Ruc:    "20123456789",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestEmpresaUpdate_NilNoTocaIntegrantes(t *testing.T) {
	f := newFixture()
	e := seedEmpresa(f, "Consorcio Sur", "20333333333")
	e.EsConsorcio = true
	e.Integrantes = []entity.IntegranteConsorcio{
		{ID: uuid.New().String(), EmpresaID: e.ID, Nombre: "A", RUC: "20111111111", PorcentajeParticipacion: 100},
	}

	nombre := "Consorcio Sur Renombrado"
	out, err := f.empresaUC.Update(context.Background(), e.ID, dto.UpdateEmpresaRequest{Nombre: &nombre})
	require.NoError(t, err)
	assert.Equal(t, nombre, out.Nombre)
	assert.Len(t, out.IntegrantesConsorcio, 1, "sin lista en el payload los integrantes no cambian")
}

func TestEmpresaUpdate_ListaVaciaEliminaIntegrantes(t *testing.T) {
	f := newFixture()
	e := seedEmpresa(f, "Consorcio Disuelto", "20333333333")
	e.EsConsorcio = true
	e.Integrantes = []entity.IntegranteConsorcio{
		{ID: uuid.New().String(), EmpresaID: e.ID, Nombre: "A", RUC: "20111111111", PorcentajeParticipacion: 100},
	}

	// Deja de ser consorcio: lista vacía explícita elimina todos los integrantes.
	esConsorcio := false
	vacia := []dto.IntegranteRequest{}
	out, err := f.empresaUC.Update(context.Background(), e.ID, dto.UpdateEmpresaRequest{
		EsConsorcio:          &esConsorcio,
		IntegrantesConsorcio: &vacia,
	})
	require.NoError(t, err)
	assert.False(t, out.EsConsorcio)
	assert.Empty(t, out.IntegrantesConsorcio)
}

func TestEmpresaUpdate_ConsorcioNoAceptaListaVacia(t *testing.T) {
	f := newFixture()
	e := seedEmpresa(f, "Consorcio Activo", "20333333333")
	e.EsConsorcio = true
	e.Integrantes = []entity.IntegranteConsorcio{
		{ID: uuid.New().String(), EmpresaID: e.ID, Nombre: "A", RUC: "20111111111", PorcentajeParticipacion: 100},
	}

	// Mientras siga siendo consorcio, vaciar el listado viola el mínimo de uno.
	vacia := []dto.IntegranteRequest{}
	_, err := f.empresaUC.Update(context.Background(), e.ID, dto.UpdateEmpresaRequest{
		IntegrantesConsorcio: &vacia,
	})
	var perr *valuation.ErrorPorcentaje
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, valuation.CodigoRequiereAlMenos1, perr.Codigo)
}

func TestEmpresaUpdate_IndividualDescartaIntegrantes(t *testing.T) {
	f := newFixture()
	e := seedEmpresa(f, "Constructora Sola", "20333333333")

	// Igual que en el alta: una empresa individual no lleva integrantes,
	// aunque el payload los traiga.
	lista := []dto.IntegranteRequest{
		{Nombre: "Colado", Ruc: "20111111111", PorcentajeParticipacion: 50},
	}
	out, err := f.empresaUC.Update(context.Background(), e.ID, dto.UpdateEmpresaRequest{
		IntegrantesConsorcio: &lista,
	})
	require.NoError(t, err)
	assert.Empty(t, out.IntegrantesConsorcio)
	assert.Empty(t, f.empresas.store[e.ID].Integrantes)
}

func TestEmpresaUpdate_RUCEnConflicto(t *testing.T) {
	f := newFixture()
	seedEmpresa(f, "Una", "20111111111")
	e := seedEmpresa(f, "Otra", "20222222222")

	ruc := "20111111111"
	_, err := f.empresaUC.Update(context.Background(), e.ID, dto.UpdateEmpresaRequest{Ruc: &ruc})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestEmpresaDelete_BloqueadaPorObras(t *testing.T) {
	f := newFixture()
	e := seedEmpresa(f, "Referenciada", "20111111111")
	f.obras.store["o1"] = &entity.Obra{
		ID: "o1", Tipo: entity.TipoEjecucion, NumeroContrato: "C-001",
		EmpresaEjecutoraID: e.ID, EmpresaSupervisoraID: "otra",
	}

	err := f.empresaUC.Delete(context.Background(), e.ID)
	assert.ErrorIs(t, err, domain.ErrEmpresaReferenced)
	assert.Contains(t, f.empresas.store, e.ID, "la empresa no debe borrarse")
}

func TestEmpresaDelete_NoExiste(t *testing.T) {
	f := newFixture()
	err := f.empresaUC.Delete(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEmpresaList_Paginacion(t *testing.T) {
	f := newFixture()
	for i := 0; i < 12; i++ {
		seedEmpresa(f, "Empresa", fmt.Sprintf("201%08d", i))
	}

	out, err := f.empresaUC.List(context.Background(), dto.ListParams{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 12, out.Pagination.Total)
	assert.Equal(t, 2, out.Pagination.TotalPages)
	assert.Len(t, out.Data, 2)
}

func TestEmpresaList_PaginaFueraDeRango(t *testing.T) {
	f := newFixture()
	seedEmpresa(f, "Única", "20111111111")

	out, err := f.empresaUC.List(context.Background(), dto.ListParams{Page: 99, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, out.Data, "página fuera de rango devuelve lista vacía, no error")
	assert.Equal(t, 1, out.Pagination.Total)
	assert.Equal(t, 99, out.Pagination.Page, "la página pedida se conserva en la respuesta")
}

func TestEmpresaCreate_RollbackSiFallaElReemplazo(t *testing.T) {
	f := newFixture()

	// El alta de la empresa entra pero el paso de integrantes cae: la
	// transacción debe revertir todo.
	fallo := errors.New("conexión perdida")
	tx := &fakeTxRunner{
		empresas:         f.empresas,
		obras:            f.obras,
		empresasOverride: &empresaRepoConFallo{fakeEmpresaRepo: f.empresas, err: fallo},
	}
	uc := usecase.NewEmpresaUseCase(f.empresas, f.obras, tx)

	_, err := uc.Create(context.Background(), dto.CreateEmpresaRequest{
		Nombre:      "Consorcio Truncado",
		Ruc:         "20777777777",
		EsConsorcio: true,
		IntegrantesConsorcio: []dto.IntegranteRequest{
			{Nombre: "A", Ruc: "20111111111", PorcentajeParticipacion: 100},
		},
	})
	require.ErrorIs(t, err, fallo)
	assert.Empty(t, f.empresas.store, "el rollback debe revertir el alta de la empresa")
}
