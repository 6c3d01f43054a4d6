package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/stock"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC     *stock.LedgerUseCase
	ItemUC      *usecase.ItemUseCase
	CategoryUC  *usecase.CategoryUseCase
	UnitUC      *usecase.UnitUseCase
	LocationUC  *usecase.LocationUseCase
	UserUC      *usecase.UserUseCase
	SettingsUC  *usecase.SettingsUseCase
	IssueUC     *usecase.IssueUseCase
	IssueItemUC *usecase.IssueItemUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Ledger de stock y niveles materializados
	stockGroup := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Post("/transactions", stockHandler.CreateTransaction)
	stockGroup.Get("/transactions", stockHandler.ListTransactions)
	stockGroup.Get("/transactions/:id", stockHandler.GetTransaction)
	stockGroup.Put("/transactions/:id", stockHandler.UpdateTransaction)
	stockGroup.Delete("/transactions/:id", stockHandler.DeleteTransaction)
	stockGroup.Get("/levels", stockHandler.ListStockLevels)

	// Catálogo de artículos
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	// Categorías
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Unidades de medida
	units := api.Group("/units")
	unitHandler := NewUnitHandler(deps.UnitUC)
	units.Post("/", unitHandler.Create)
	units.Get("/", unitHandler.List)
	units.Get("/:id", unitHandler.GetByID)
	units.Put("/:id", unitHandler.Update)
	units.Delete("/:id", unitHandler.Delete)

	// Ubicaciones
	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Delete)

	// Usuarios
	users := api.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Solicitudes de salida de almacén
	issues := api.Group("/issues")
	issueHandler := NewIssueHandler(deps.IssueUC)
	issueItemHandler := NewIssueItemHandler(deps.IssueItemUC)
	issues.Post("/", issueHandler.Create)
	issues.Get("/", issueHandler.List)
	issues.Get("/code/:code", issueHandler.GetByCode)
	issues.Get("/:id", issueHandler.GetByID)
	issues.Get("/:id/items", issueItemHandler.ListByIssue)
	issues.Put("/:id", issueHandler.Update)
	issues.Delete("/:id", issueHandler.Delete)
	issues.Patch("/:id/approve", issueHandler.Approve)
	issues.Patch("/:id/status", issueHandler.ChangeStatus)

	// Líneas de solicitud
	issueItems := api.Group("/issue-items")
	issueItems.Post("/", issueItemHandler.Create)
	issueItems.Post("/bulk", issueItemHandler.CreateBulk)
	issueItems.Get("/", issueItemHandler.List)
	issueItems.Get("/:id", issueItemHandler.GetByID)
	issueItems.Put("/:id", issueItemHandler.Update)
	issueItems.Delete("/:id", issueItemHandler.Delete)

	// Configuración global
	settings := api.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settings.Get("/", settingsHandler.Get)
	settings.Put("/", settingsHandler.Update)
}
