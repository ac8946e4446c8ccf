package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chocodealers/ledger-api/internal/application/auth"
	"github.com/chocodealers/ledger-api/internal/application/catalog"
	"github.com/chocodealers/ledger-api/internal/application/ledger"
	"github.com/chocodealers/ledger-api/internal/application/report"
	"github.com/chocodealers/ledger-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CatalogUC  *catalog.CatalogUseCase
	ApplyUC    *ledger.ApplyUseCase
	ProduceUC  *ledger.ProduceUseCase
	HistoryUC  *ledger.HistoryUseCase
	LowStockUC *ledger.LowStockUseCase
	ReportUC   *report.ReportUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Items (protegido; alta solo manager/admin)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.CatalogUC, deps.LowStockUC)
	ledgerHandler := NewLedgerHandler(deps.ApplyUC, deps.HistoryUC)
	items.Post("/", RequireRole(entity.RoleAdmin, entity.RoleManager), itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/low-stock", itemHandler.ListLowStock)
	items.Get("/producible", itemHandler.ListProducible)
	items.Get("/:id", itemHandler.GetByID)
	items.Get("/:id/ledger", ledgerHandler.ListByItem)

	// Movimientos y correcciones (protegido; correcciones solo manager/admin)
	invGroup := protected.Group("/inventory")
	invGroup.Post("/movements", ledgerHandler.RegisterMovement)
	invGroup.Post("/corrections", RequireRole(entity.RoleAdmin, entity.RoleManager), ledgerHandler.RegisterCorrection)

	// Ledger global (protegido)
	protected.Get("/ledger", ledgerHandler.ListRecent)

	// Producción (protegido)
	production := protected.Group("/production")
	productionHandler := NewProductionHandler(deps.ProduceUC, deps.HistoryUC)
	production.Post("/", productionHandler.Produce)
	production.Get("/:eventId", productionHandler.GetEvent)

	// Reportes (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/stock.pdf", reportHandler.StockReportPDF)
}
