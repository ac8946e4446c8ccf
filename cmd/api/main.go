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

	"github.com/chocodealers/ledger-api/internal/application/auth"
	"github.com/chocodealers/ledger-api/internal/application/catalog"
	"github.com/chocodealers/ledger-api/internal/application/ledger"
	"github.com/chocodealers/ledger-api/internal/application/report"
	infrapdf "github.com/chocodealers/ledger-api/internal/infrastructure/pdf"
	"github.com/chocodealers/ledger-api/internal/infrastructure/postgres"
	"github.com/chocodealers/ledger-api/internal/infrastructure/square"
	httpRouter "github.com/chocodealers/ledger-api/internal/interfaces/http"
	"github.com/chocodealers/ledger-api/pkg/config"
	"github.com/chocodealers/ledger-api/pkg/logger"
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
	itemRepo := postgres.NewItemRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Espejo POS en Square — solo si hay access token configurado.
	// Sin token el notifier queda nil y los use cases lo omiten.
	var notifier ledger.StockNotifier
	if sq := square.NewClient(cfg.Square); sq != nil {
		notifier = sq
		log.Info().Str("environment", cfg.Square.Environment).Msg("espejo POS Square activo")
	}

	applyUC := ledger.NewApplyUseCase(txRunner, notifier)
	produceUC := ledger.NewProduceUseCase(txRunner, notifier)
	historyUC := ledger.NewHistoryUseCase(itemRepo, ledgerRepo)
	lowStockUC := ledger.NewLowStockUseCase(itemRepo)
	catalogUC := catalog.NewCatalogUseCase(itemRepo, recipeRepo)

	pdfGenerator := infrapdf.NewMarotoStockReport(cfg.App.Name)
	reportUC := report.NewReportUseCase(itemRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
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
		Title:    "Choco Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CatalogUC:  catalogUC,
		ApplyUC:    applyUC,
		ProduceUC:  produceUC,
		HistoryUC:  historyUC,
		LowStockUC: lowStockUC,
		ReportUC:   reportUC,
		JWTSecret:  cfg.JWT.Secret,
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
