package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ENEASJO/control-valo-api/internal/application/usecase"
	infrapdf "github.com/ENEASJO/control-valo-api/internal/infrastructure/pdf"
	"github.com/ENEASJO/control-valo-api/internal/infrastructure/postgres"
	httpRouter "github.com/ENEASJO/control-valo-api/internal/interfaces/http"
	"github.com/ENEASJO/control-valo-api/pkg/config"
	"github.com/ENEASJO/control-valo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	empresaRepo := postgres.NewEmpresaRepository(pool)
	obraRepo := postgres.NewObraRepository(pool)
	profesionalRepo := postgres.NewProfesionalRepository(pool)
	valorizacionRepo := postgres.NewValorizacionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	empresaUC := usecase.NewEmpresaUseCase(empresaRepo, obraRepo, txRunner)
	obraUC := usecase.NewObraUseCase(obraRepo, empresaRepo, valorizacionRepo, txRunner)
	profesionalUC := usecase.NewProfesionalUseCase(profesionalRepo, obraRepo)
	valorizacionUC := usecase.NewValorizacionUseCase(valorizacionRepo, obraRepo)

	// PDF: reporte de valorizaciones de una obra
	reporteGenerator := infrapdf.NewMarotoReporteGenerator()
	reporteUC := usecase.NewReporteUseCase(obraRepo, empresaRepo, valorizacionRepo, reporteGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Control de Valorizaciones API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		EmpresaUC:      empresaUC,
		ObraUC:         obraUC,
		ProfesionalUC:  profesionalUC,
		ValorizacionUC: valorizacionUC,
		ReporteUC:      reporteUC,
		DB:             pool,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
