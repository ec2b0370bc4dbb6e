package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appbasket "github.com/tu-usuario/activos-pro/internal/application/basket"
	apptransfer "github.com/tu-usuario/activos-pro/internal/application/transfer"
	"github.com/tu-usuario/activos-pro/internal/application/usecase"
	"github.com/tu-usuario/activos-pro/internal/infrastructure/events"
	infrapdf "github.com/tu-usuario/activos-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/activos-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/activos-pro/internal/interfaces/http"
	"github.com/tu-usuario/activos-pro/pkg/config"
	"github.com/tu-usuario/activos-pro/pkg/logger"
	"github.com/tu-usuario/activos-pro/pkg/metrics"
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

	assetRepo := postgres.NewAssetRepository(pool)
	basketRepo := postgres.NewBasketRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)

	// Publicador de eventos: Kafka si hay brokers, si no uno no-op.
	var publisher appbasket.EventPublisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled() {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publicación de eventos habilitada")
	}

	m := metrics.New("activos")

	resolver := appbasket.NewResolver(assetRepo)
	manager := appbasket.NewManager(basketRepo, warehouseRepo, resolver)
	preflight := appbasket.NewPreflight(basketRepo, assetRepo)
	completer := appbasket.NewCompleter(basketRepo, assetRepo, transferRepo, movementRepo, publisher, m, log)

	receiptGenerator := infrapdf.NewMarotoReceiptGenerator()
	transferUC := apptransfer.NewUseCase(transferRepo, receiptGenerator)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)

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
		Title:    "Activos Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Manager:     manager,
		Preflight:   preflight,
		Completer:   completer,
		Resolver:    resolver,
		AssetRepo:   assetRepo,
		TransferUC:  transferUC,
		WarehouseUC: warehouseUC,
		Metrics:     m,
		JWTSecret:   cfg.JWT.Secret,
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
