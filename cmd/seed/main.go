// seed carga datos iniciales en el almacenamiento configurado: una organización, un usuario admin,
// productos, materias primas y la receita del concreto FCK 25.
//
// Uso: go run ./cmd/seed [-org "Concreteira Modelo"] [-email admin@...] [-password ...]
//
//	[-materials materias.csv -charset iso-8859-1]
//
// Sin -materials usa un juego fijo de cimento, areia, brita, água y aditivo.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/concretera-erp/internal/application/auth"
	"github.com/jhoicas/concretera-erp/internal/application/dto"
	"github.com/jhoicas/concretera-erp/internal/application/inventory"
	"github.com/jhoicas/concretera-erp/internal/application/production"
	"github.com/jhoicas/concretera-erp/internal/application/usecase"
	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
	"github.com/jhoicas/concretera-erp/internal/infrastructure/memory"
	"github.com/jhoicas/concretera-erp/internal/infrastructure/postgres"
	"github.com/jhoicas/concretera-erp/pkg/config"
	"github.com/jhoicas/concretera-erp/pkg/logger"
)

var defaultMaterials = []dto.CreateRawMaterialRequest{
	{Name: "cimento", Unit: "kg", InitialStock: decimal.NewFromInt(20000), MinimumStock: decimal.NewFromInt(5000)},
	{Name: "areia", Unit: "m3", InitialStock: decimal.NewFromInt(60), MinimumStock: decimal.NewFromInt(15)},
	{Name: "brita", Unit: "m3", InitialStock: decimal.NewFromInt(70), MinimumStock: decimal.NewFromInt(15)},
	{Name: "água", Unit: "l", InitialStock: decimal.NewFromInt(30000), MinimumStock: decimal.NewFromInt(5000)},
	{Name: "aditivo", Unit: "l", InitialStock: decimal.NewFromInt(200), MinimumStock: decimal.NewFromInt(50)},
}

// traço por m³ del FCK 25.
var fck25Recipe = []struct{ material, qty string }{
	{"cimento", "300"},
	{"areia", "0.8"},
	{"brita", "0.9"},
	{"água", "180"},
	{"aditivo", "1.5"},
}

func main() {
	orgName := flag.String("org", "Concreteira Modelo", "nombre de la organización")
	email := flag.String("email", "admin@concreteira.local", "email del usuario admin")
	password := flag.String("password", "admin12345", "password del usuario admin")
	materialsPath := flag.String("materials", "", "CSV de materias primas (nome;unidade;estoque_atual;estoque_minimo)")
	charset := flag.String("charset", "utf-8", "charset del CSV: utf-8, iso-8859-1, windows-1252")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	materials := defaultMaterials
	if *materialsPath != "" {
		f, err := os.Open(*materialsPath)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir CSV de materias primas")
		}
		materials, err = readMaterials(f, *charset)
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Str("path", *materialsPath).Msg("leer materias primas")
		}
	}

	ctx := context.Background()
	var (
		txRunner repository.TxRunner
		repos    repository.Repos
	)
	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warn().Msg("STORAGE_DRIVER=memory: el seed solo sirve como prueba en seco")
		store := memory.New()
		txRunner, repos = store, store.Repos()
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner, repos = postgres.NewTxRunner(pool), postgres.NewRepos(pool)
	}

	if err := seed(ctx, txRunner, repos, seedInput{
		OrgName:   *orgName,
		Email:     *email,
		Password:  *password,
		Materials: materials,
		JWT:       auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
	}, log); err != nil {
		log.Error().Err(err).Msg("seed")
		os.Exit(1)
	}
}

type seedInput struct {
	OrgName   string
	Email     string
	Password  string
	Materials []dto.CreateRawMaterialRequest
	JWT       auth.JWTConfig
}

func seed(ctx context.Context, txRunner repository.TxRunner, repos repository.Repos, in seedInput, log *logger.Logger) error {
	org, err := usecase.NewOrganizationUseCase(repos.Organizations).Create(ctx, dto.CreateOrganizationRequest{Name: in.OrgName})
	if err != nil {
		return fmt.Errorf("organización: %w", err)
	}
	user, err := auth.NewAuthUseCase(repos.Users, repos.Organizations, in.JWT).RegisterUser(ctx, dto.RegisterRequest{
		Email:          in.Email,
		Password:       in.Password,
		OrganizationID: org.ID,
		Name:           "Administrador",
		Role:           entity.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("usuario admin: %w", err)
	}

	products := usecase.NewProductUseCase(repos.Products)
	var fck25 string
	for _, p := range []dto.CreateProductRequest{
		{Name: "Concreto FCK 20", Category: entity.ProductCategoryConcreto, PriceM3: decimal.NewFromInt(380), CostM3: decimal.NewFromInt(265)},
		{Name: "Concreto FCK 25", Category: entity.ProductCategoryConcreto, PriceM3: decimal.NewFromInt(400), CostM3: decimal.NewFromInt(280)},
		{Name: "Manilha 60 cm", Category: entity.ProductCategoryManilha, PriceM3: decimal.NewFromInt(620), CostM3: decimal.NewFromInt(410)},
	} {
		out, err := products.Create(ctx, org.ID, p)
		if err != nil {
			return fmt.Errorf("producto %s: %w", p.Name, err)
		}
		if p.Name == "Concreto FCK 25" {
			fck25 = out.ID
		}
	}

	inv := inventory.NewInventoryUseCase(txRunner, repos)
	byName := make(map[string]string, len(in.Materials))
	for _, m := range in.Materials {
		out, err := inv.CreateRawMaterial(ctx, org.ID, m)
		if err != nil {
			return fmt.Errorf("materia prima %s: %w", m.Name, err)
		}
		byName[out.Name] = out.ID
	}

	var recipe dto.ReplaceRecipeRequest
	for _, line := range fck25Recipe {
		id, ok := byName[line.material]
		if !ok {
			log.Warn().Str("material", line.material).Msg("material de la receita no cargado; se omite")
			continue
		}
		recipe.Items = append(recipe.Items, dto.RecipeItemRequest{RawMaterialID: id, QuantityPerM3: decimal.RequireFromString(line.qty)})
	}
	if len(recipe.Items) > 0 {
		if _, err := production.NewRecipeUseCase(txRunner, repos).Replace(ctx, org.ID, fck25, recipe); err != nil {
			return fmt.Errorf("receita FCK 25: %w", err)
		}
	}

	log.Info().
		Str("organization_id", org.ID).
		Str("admin_email", user.Email).
		Int("raw_materials", len(byName)).
		Int("recipe_items", len(recipe.Items)).
		Msg("seed completo")
	return nil
}
