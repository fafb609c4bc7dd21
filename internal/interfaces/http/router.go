package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/concretera-erp/internal/application/analytics"
	"github.com/jhoicas/concretera-erp/internal/application/auth"
	"github.com/jhoicas/concretera-erp/internal/application/billing"
	"github.com/jhoicas/concretera-erp/internal/application/inventory"
	"github.com/jhoicas/concretera-erp/internal/application/logistics"
	"github.com/jhoicas/concretera-erp/internal/application/orders"
	"github.com/jhoicas/concretera-erp/internal/application/production"
	"github.com/jhoicas/concretera-erp/internal/application/sales"
	"github.com/jhoicas/concretera-erp/internal/application/usecase"
	"github.com/jhoicas/concretera-erp/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	OrganizationUC  *usecase.OrganizationUseCase
	UserUC          *usecase.UserUseCase
	ClientUC        *usecase.ClientUseCase
	ProductUC       *usecase.ProductUseCase
	FleetUC         *usecase.FleetUseCase
	QuoteUC         *sales.QuoteUseCase
	BudgetUC        *sales.BudgetUseCase
	OrderUC         *orders.OrderUseCase
	ProductionUC    *production.ProductionUseCase
	RecipeUC        *production.RecipeUseCase
	InventoryUC     *inventory.InventoryUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	DeliveryUC      *logistics.DeliveryUseCase
	ReceivableUC    *billing.ReceivableUseCase
	InvoiceUC       *billing.InvoiceUseCase
	DashboardUC     *appanalytics.DashboardUseCase
	JWTSecret       string
	// Location zona usada para interpretar los filtros from/to de los listados.
	Location *time.Location
}

// NewFiberConfig configuración de fiber para la API. Immutable obliga a copiar params y cuerpo:
// los casos de uso guardan c.Params("id") en entidades que sobreviven a la petición.
func NewFiberConfig(appName string) fiber.Config {
	return fiber.Config{
		AppName:      appName,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	}
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Organizations (público: alta inicial antes de existir usuarios)
	organizations := api.Group("/organizations")
	organizationHandler := NewOrganizationHandler(deps.OrganizationUC)
	organizations.Get("/", organizationHandler.List)
	organizations.Post("/", organizationHandler.Create)
	organizations.Get("/:id", organizationHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	sellers := RequireRole(entity.RoleAdmin, entity.RoleVendedor)
	plant := RequireRole(entity.RoleAdmin, entity.RoleProducao)
	fleet := RequireRole(entity.RoleAdmin, entity.RoleLogistica)
	finance := RequireRole(entity.RoleAdmin, entity.RoleFinanceiro)

	userHandler := NewUserHandler(deps.UserUC)
	protected.Get("/users", RequireRole(entity.RoleAdmin), userHandler.List)
	protected.Get("/users/:id", RequireRole(entity.RoleAdmin), userHandler.GetByID)

	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC, loc)
	clients.Post("/", sellers, clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", sellers, clientHandler.Update)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.RecipeUC, loc)
	products.Post("/", sellers, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", sellers, productHandler.Update)
	products.Get("/:id/recipe", productHandler.GetRecipe)
	products.Put("/:id/recipe", plant, productHandler.ReplaceRecipe)

	fleetHandler := NewFleetHandler(deps.FleetUC, loc)
	protected.Post("/trucks", fleet, fleetHandler.CreateTruck)
	protected.Get("/trucks", fleetHandler.ListTrucks)
	protected.Post("/drivers", fleet, fleetHandler.CreateDriver)
	protected.Get("/drivers", fleetHandler.ListDrivers)

	// Ventas
	salesHandler := NewSalesHandler(deps.QuoteUC, deps.BudgetUC, loc)
	protected.Post("/pricing/quote-preview", salesHandler.QuotePreview)

	quotes := protected.Group("/quotes")
	quotes.Post("/", sellers, salesHandler.CreateQuote)
	quotes.Get("/", salesHandler.ListQuotes)
	quotes.Get("/:id", salesHandler.GetQuote)
	quotes.Patch("/:id/status", sellers, salesHandler.UpdateQuoteStatus)

	budgets := protected.Group("/budgets")
	budgets.Post("/", sellers, salesHandler.CreateBudget)
	budgets.Get("/", salesHandler.ListBudgets)
	budgets.Get("/:id", salesHandler.GetBudget)
	budgets.Patch("/:id/status", sellers, salesHandler.UpdateBudgetStatus)
	budgets.Post("/:id/convert", sellers, salesHandler.ConvertBudget)

	// Pedidos y producción
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ProductionUC, loc)
	ordersGroup := protected.Group("/orders")
	ordersGroup.Post("/", sellers, orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Patch("/:id/status",
		RequireRole(entity.RoleAdmin, entity.RoleVendedor, entity.RoleProducao), orderHandler.UpdateStatus)

	productionGroup := protected.Group("/production-orders")
	productionGroup.Get("/", orderHandler.ListProductionOrders)
	productionGroup.Get("/:id", orderHandler.GetProductionOrder)
	productionGroup.Patch("/:id/status", plant, orderHandler.UpdateProductionStatus)

	// Estoque
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.ReplenishmentUC, loc)
	materials := protected.Group("/raw-materials")
	materials.Post("/", plant, inventoryHandler.CreateRawMaterial)
	materials.Get("/", inventoryHandler.ListRawMaterials)
	materials.Get("/:id", inventoryHandler.GetRawMaterial)
	materials.Post("/:id/entries", plant, inventoryHandler.AddStock)
	materials.Get("/:id/movements", inventoryHandler.ListMovements)
	protected.Get("/inventory/replenishment-list", inventoryHandler.GetReplenishmentList)

	// Logística
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC, loc)
	deliveries := protected.Group("/deliveries")
	deliveries.Post("/", fleet, deliveryHandler.Create)
	deliveries.Get("/", deliveryHandler.List)
	deliveries.Get("/:id", deliveryHandler.GetByID)
	deliveries.Patch("/:id/status", fleet, deliveryHandler.UpdateStatus)

	// Financiero
	billingHandler := NewBillingHandler(deps.ReceivableUC, deps.InvoiceUC, loc)
	receivables := protected.Group("/receivables")
	receivables.Get("/", billingHandler.ListReceivables)
	receivables.Post("/refresh-overdue", finance, billingHandler.RefreshOverdue)
	receivables.Get("/:id", billingHandler.GetReceivable)
	receivables.Post("/:id/pay", finance, billingHandler.PayReceivable)

	invoices := protected.Group("/invoices")
	invoices.Post("/", finance, billingHandler.IssueInvoice)
	invoices.Get("/", billingHandler.ListInvoices)
	invoices.Get("/:id", billingHandler.GetInvoice)
	invoices.Post("/:id/cancel", finance, billingHandler.CancelInvoice)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
