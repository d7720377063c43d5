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

	"github.com/jhoicas/sklad-ledger/internal/application/auth"
	"github.com/jhoicas/sklad-ledger/internal/application/catalog"
	"github.com/jhoicas/sklad-ledger/internal/application/inventory"
	"github.com/jhoicas/sklad-ledger/internal/application/reports"
	infrapdf "github.com/jhoicas/sklad-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/sklad-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/sklad-ledger/internal/infrastructure/telegram"
	httpRouter "github.com/jhoicas/sklad-ledger/internal/interfaces/http"
	"github.com/jhoicas/sklad-ledger/pkg/config"
	"github.com/jhoicas/sklad-ledger/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Notificador Telegram: best-effort, solo si hay credenciales configuradas.
	var notifier inventory.Notifier
	if cfg.Telegram.Enabled {
		notifier = telegram.NewBotNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		log.Info().Str("chat_id", cfg.Telegram.ChatID).Msg("notificaciones Telegram habilitadas")
	} else {
		log.Info().Msg("notificaciones Telegram deshabilitadas")
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	catalogUC := catalog.NewCatalogUseCase(categoryRepo, productRepo)
	stockUC := inventory.NewStockUseCase(txRunner, notifier)

	// PDF: exportación del libro de movimientos
	pdfGenerator := infrapdf.NewMarotoLedgerGenerator()
	reportsUC := reports.NewReportsUseCase(movementRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs. El middleware hace
	// panic si el archivo no existe, así que solo se monta si está presente
	// (despliegues sin docs/ arrancan igual).
	const swaggerFile = "./docs/swagger.json"
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Sklad Ledger API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, UI de docs deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		CatalogUC: catalogUC,
		StockUC:   stockUC,
		ReportsUC: reportsUC,
		JWTSecret: cfg.JWT.Secret,
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
