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
	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/catalog"
	"github.com/jhoicas/Ventas-api/internal/application/report"
	"github.com/jhoicas/Ventas-api/internal/application/tracking"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Ventas-api/internal/interfaces/http"
	"github.com/jhoicas/Ventas-api/pkg/config"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	// Repositorios atados al pool (lecturas y escrituras simples). Las
	// escrituras de reportes pasan por los repos transaccionales del TxRunner.
	userRepo := postgres.NewUserRepository(pool)
	paqueteRepo := postgres.NewPaqueteRepository(pool)
	seguimientoRepo := postgres.NewSeguimientoRepository(pool)
	reporteRepo := postgres.NewReporteRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, auth.Policy{
		AllowAdminRegister: cfg.Auth.AllowAdminRegister,
	})
	paqueteUC := catalog.NewPaqueteUseCase(paqueteRepo)
	seguimientoUC := tracking.NewSeguimientoUseCase(seguimientoRepo, paqueteRepo, reporteRepo)
	reporteUC := report.NewReporteUseCase(txRunner, reporteRepo, seguimientoRepo, report.Policy{
		AllowForeign: cfg.Report.AllowForeign,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ventas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		PaqueteUC:     paqueteUC,
		SeguimientoUC: seguimientoUC,
		ReporteUC:     reporteUC,
		JWTSecret:     cfg.JWT.Secret,
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
