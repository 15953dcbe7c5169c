package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/ENEASJO/control-valo-api/internal/application/usecase"
	"github.com/ENEASJO/control-valo-api/internal/domain/entity"
)

// Pinger abstrae el chequeo de salud del datastore (lo implementa pgxpool.Pool).
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	EmpresaUC      *usecase.EmpresaUseCase
	ObraUC         *usecase.ObraUseCase
	ProfesionalUC  *usecase.ProfesionalUseCase
	ValorizacionUC *usecase.ValorizacionUseCase
	ReporteUC      *usecase.ReporteUseCase
	DB             Pinger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Health
	healthHandler := NewHealthHandler(deps.DB)
	api.Get("/health", healthHandler.Health)

	// Empresas y consorcios
	empresas := api.Group("/empresas")
	empresaHandler := NewEmpresaHandler(deps.EmpresaUC)
	empresas.Get("/", empresaHandler.List)
	empresas.Post("/", empresaHandler.Create)
	empresas.Get("/:id", empresaHandler.GetByID)
	empresas.Put("/:id", empresaHandler.Update)
	empresas.Delete("/:id", empresaHandler.Delete)

	// Las dos variantes de obra comparten handlers; solo cambia el prefijo
	// y el tipo fijado en cada instancia.
	registrarObras(api.Group("/ejecucion/obras"), deps, entity.TipoEjecucion)
	registrarObras(api.Group("/supervision/obras"), deps, entity.TipoSupervision)
}

// registrarObras monta el CRUD de obras y sus sub-recursos bajo un prefijo.
func registrarObras(g fiber.Router, deps RouterDeps, tipo entity.TipoObra) {
	obraHandler := NewObraHandler(deps.ObraUC, deps.ReporteUC, tipo)
	g.Get("/", obraHandler.List)
	g.Post("/", obraHandler.Create)
	g.Get("/:id", obraHandler.GetByID)
	g.Put("/:id", obraHandler.Update)
	g.Delete("/:id", obraHandler.Delete)
	g.Get("/:id/reporte", obraHandler.Reporte)

	profesionalHandler := NewProfesionalHandler(deps.ProfesionalUC, tipo)
	g.Get("/:id/profesionales", profesionalHandler.List)
	g.Post("/:id/profesionales", profesionalHandler.Create)
	g.Put("/:id/profesionales/:profId", profesionalHandler.Update)
	g.Delete("/:id/profesionales/:profId", profesionalHandler.Delete)

	valorizacionHandler := NewValorizacionHandler(deps.ValorizacionUC, tipo)
	g.Get("/:id/valorizaciones", valorizacionHandler.List)
	g.Post("/:id/valorizaciones", valorizacionHandler.Create)
	g.Delete("/:id/valorizaciones/:valId", valorizacionHandler.Delete)
}
