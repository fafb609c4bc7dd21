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

	appanalytics "github.com/jhoicas/concretera-erp/internal/application/analytics"
	"github.com/jhoicas/concretera-erp/internal/application/auth"
	"github.com/jhoicas/concretera-erp/internal/application/billing"
	"github.com/jhoicas/concretera-erp/internal/application/inventory"
	"github.com/jhoicas/concretera-erp/internal/application/logistics"
	"github.com/jhoicas/concretera-erp/internal/application/orders"
	"github.com/jhoicas/concretera-erp/internal/application/production"
	"github.com/jhoicas/concretera-erp/internal/application/sales"
	"github.com/jhoicas/concretera-erp/internal/application/usecase"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
	"github.com/jhoicas/concretera-erp/internal/infrastructure/memory"
	"github.com/jhoicas/concretera-erp/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/concretera-erp/internal/interfaces/http"
	"github.com/jhoicas/concretera-erp/pkg/config"
	"github.com/jhoicas/concretera-erp/pkg/logger"
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
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	var (
		txRunner repository.TxRunner
		repos    repository.Repos
	)
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.New()
		txRunner, repos = store, store.Repos()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner, repos = postgres.NewTxRunner(pool), postgres.NewRepos(pool)
	}

	authUC := auth.NewAuthUseCase(repos.Users, repos.Organizations, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	receivableUC := billing.NewReceivableUseCase(txRunner, repos)
	deliveryUC := logistics.NewDeliveryUseCase(txRunner, repos, receivableUC, log.Component("logistics"))

	app := fiber.New(httpRouter.NewFiberConfig(cfg.App.Name))
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Concretera ERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		OrganizationUC:  usecase.NewOrganizationUseCase(repos.Organizations),
		UserUC:          usecase.NewUserUseCase(repos.Users),
		ClientUC:        usecase.NewClientUseCase(repos.Clients),
		ProductUC:       usecase.NewProductUseCase(repos.Products),
		FleetUC:         usecase.NewFleetUseCase(repos.Trucks, repos.Drivers),
		QuoteUC:         sales.NewQuoteUseCase(txRunner, repos),
		BudgetUC:        sales.NewBudgetUseCase(txRunner, repos),
		OrderUC:         orders.NewOrderUseCase(txRunner, repos),
		ProductionUC:    production.NewProductionUseCase(txRunner, repos),
		RecipeUC:        production.NewRecipeUseCase(txRunner, repos),
		InventoryUC:     inventory.NewInventoryUseCase(txRunner, repos),
		ReplenishmentUC: inventory.NewReplenishmentUseCase(repos.RawMaterials),
		DeliveryUC:      deliveryUC,
		ReceivableUC:    receivableUC,
		InvoiceUC:       billing.NewInvoiceUseCase(txRunner, repos),
		DashboardUC:     appanalytics.NewDashboardUseCase(repos, cfg.Metrics.Location),
		JWTSecret:       cfg.JWT.Secret,
		Location:        cfg.Metrics.Location,
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
