package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Almacen-api/internal/application/stock"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-api/internal/jobs"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	itemRepo := postgres.NewItemRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	unitRepo := postgres.NewUnitRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	issueRepo := postgres.NewIssueRepository(pool)
	issueItemRepo := postgres.NewIssueItemRepository(pool)
	txRepo := postgres.NewStockTxRepository(pool)
	levelRepo := postgres.NewStockLevelRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// La fila de settings debe existir antes de servir tráfico
	if err := settingsRepo.InitializeDefaults(); err != nil {
		log.Fatal().Err(err).Msg("inicializar settings")
	}

	stockUC := stock.NewLedgerUseCase(txRunner, txRepo, levelRepo, itemRepo, locationRepo, settingsRepo)
	itemUC := usecase.NewItemUseCase(itemRepo, categoryRepo, unitRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	unitUC := usecase.NewUnitUseCase(unitRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo)
	issueUC := usecase.NewIssueUseCase(issueRepo, userRepo)
	issueItemUC := usecase.NewIssueItemUseCase(issueItemRepo, issueRepo, itemRepo)

	lowStockJob := jobs.NewLowStockNotifier(levelRepo, settingsRepo, log.Zerolog())
	if err := lowStockJob.Start(cfg.Jobs.LowStockSchedule); err != nil {
		log.Fatal().Err(err).Msg("iniciar job de stock bajo")
	}
	defer lowStockJob.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockUC:     stockUC,
		ItemUC:      itemUC,
		CategoryUC:  categoryUC,
		UnitUC:      unitUC,
		LocationUC:  locationUC,
		UserUC:      userUC,
		SettingsUC:  settingsUC,
		IssueUC:     issueUC,
		IssueItemUC: issueItemUC,
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
