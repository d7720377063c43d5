package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sklad-ledger/internal/application/auth"
	"github.com/jhoicas/sklad-ledger/internal/application/catalog"
	"github.com/jhoicas/sklad-ledger/internal/application/inventory"
	"github.com/jhoicas/sklad-ledger/internal/application/reports"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	CatalogUC *catalog.CatalogUseCase
	StockUC   *inventory.StockUseCase
	ReportsUC *reports.ReportsUseCase
	JWTSecret string
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

	// Categorías (protegido)
	categories := protected.Group("/categories")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	categories.Post("/", catalogHandler.CreateCategory)
	categories.Get("/", catalogHandler.ListCategories)
	categories.Get("/:id", catalogHandler.GetCategory)
	categories.Put("/:id", catalogHandler.UpdateCategory)
	categories.Delete("/:id", catalogHandler.DeleteCategory)

	// Productos (protegido, solo lectura: las cantidades cambian vía inventory)
	products := protected.Group("/products")
	products.Get("/", catalogHandler.ListProducts)

	// Movimientos de stock (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockUC)
	invGroup.Post("/receive", inventoryHandler.ReceiveStock)
	invGroup.Post("/sell", inventoryHandler.SellStock)

	// Reportes (protegido)
	reportsGroup := protected.Group("/reports")
	reportsHandler := NewReportsHandler(deps.ReportsUC)
	reportsGroup.Get("/ledger", reportsHandler.Ledger)
	reportsGroup.Get("/ledger/pdf", reportsHandler.LedgerPDF)
}
