package production_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/concretera-erp/internal/application/dto"
	"github.com/jhoicas/concretera-erp/internal/application/production"
	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
	"github.com/jhoicas/concretera-erp/internal/infrastructure/memory"
)

const org = "org-1"

type fixture struct {
	store *memory.Store
	repos repository.Repos
	uc    *production.ProductionUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	repos := store.Repos()
	now := time.Now()
	require.NoError(t, repos.Products.Create(context.Background(), &entity.Product{
		ID: "prod-fck25", OrganizationID: org, Name: "Concreto FCK 25", Category: entity.ProductCategoryConcreto,
		PriceM3: decimal.NewFromInt(400), CostM3: decimal.NewFromInt(280), Unit: "m3", Active: true,
		CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, repos.Orders.Create(context.Background(), &entity.Order{
		ID: "ped-1", OrganizationID: org, ClientID: "cli-1", TotalValue: decimal.NewFromInt(800),
		Status: entity.OrderStatusEmProducao, CreatedBy: "user-1", CreatedAt: now, UpdatedAt: now,
	}))
	return &fixture{store: store, repos: repos, uc: production.NewProductionUseCase(store, repos)}
}

func (f *fixture) material(t *testing.T, id, name string, stock int64) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.repos.RawMaterials.Create(context.Background(), &entity.RawMaterial{
		ID: id, OrganizationID: org, Name: name, Unit: "kg",
		CurrentStock: decimal.NewFromInt(stock), MinimumStock: decimal.NewFromInt(100),
		CreatedAt: now, UpdatedAt: now,
	}))
}

func (f *fixture) recipe(t *testing.T, materialID string, perM3 int64) {
	t.Helper()
	require.NoError(t, f.repos.Recipes.Create(context.Background(), &entity.RecipeItem{
		ID: "tr-" + materialID, OrganizationID: org, ProductID: "prod-fck25",
		RawMaterialID: materialID, QuantityPerM3: decimal.NewFromInt(perM3), CreatedAt: time.Now(),
	}))
}

func (f *fixture) productionOrder(t *testing.T, id string, qty int64) {
	t.Helper()
	f.productionOrderM3(t, id, decimal.NewFromInt(qty))
}

func (f *fixture) productionOrderM3(t *testing.T, id string, qty decimal.Decimal) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.repos.ProductionOrders.Create(context.Background(), &entity.ProductionOrder{
		ID: id, OrganizationID: org, OrderID: "ped-1", ProductID: "prod-fck25",
		QuantityM3: qty, Status: entity.ProductionStatusAguardando,
		CreatedAt: now, UpdatedAt: now,
	}))
}

func (f *fixture) stock(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	m, err := f.repos.RawMaterials.GetByID(context.Background(), org, id)
	require.NoError(t, err)
	return m.CurrentStock
}

func TestFinalizar_DescuentaTracoPorVolumen(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "mp-cimento", "cimento", 1000)
	f.recipe(t, "mp-cimento", 300)
	f.productionOrder(t, "op-1", 2)

	res, err := f.uc.UpdateStatus(ctx, org, "user-1", "op-1", entity.ProductionStatusFinalizado)
	require.NoError(t, err)

	assert.Equal(t, entity.ProductionStatusFinalizado, res.Status)
	assert.NotNil(t, res.StartedAt)
	assert.NotNil(t, res.FinishedAt)
	assert.True(t, f.stock(t, "mp-cimento").Equal(decimal.NewFromInt(400)))

	movs, err := f.repos.Movements.ListByReference(ctx, org, "op-1")
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeSaida, movs[0].Type)
	assert.True(t, movs[0].Quantity.Equal(decimal.NewFromInt(600)))
	require.Len(t, res.Deductions, 1)
}

func TestFinalizar_EstoqueInsuficienteNoCambiaNada(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "mp-areia", "areia", 5000)
	f.material(t, "mp-cimento", "cimento", 250)
	f.recipe(t, "mp-areia", 700)
	f.recipe(t, "mp-cimento", 300)
	f.productionOrder(t, "op-1", 1)

	_, err := f.uc.UpdateStatus(ctx, org, "user-1", "op-1", entity.ProductionStatusFinalizado)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "cimento", stockErr.Material)
	assert.True(t, stockErr.Required.Equal(decimal.NewFromInt(300)))
	assert.True(t, stockErr.Available.Equal(decimal.NewFromInt(250)))

	assert.True(t, f.stock(t, "mp-areia").Equal(decimal.NewFromInt(5000)), "areia no debe descontarse")
	assert.True(t, f.stock(t, "mp-cimento").Equal(decimal.NewFromInt(250)))
	movs, err := f.repos.Movements.ListByReference(ctx, org, "op-1")
	require.NoError(t, err)
	assert.Empty(t, movs)

	po, err := f.repos.ProductionOrders.GetByID(ctx, org, "op-1")
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionStatusAguardando, po.Status)
	assert.Nil(t, po.FinishedAt)
}

func TestFinalizar_CantidadesFraccionariasSinRedondeo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "mp-aditivo", "aditivo", 1)
	require.NoError(t, f.repos.Recipes.Create(ctx, &entity.RecipeItem{
		ID: "tr-aditivo", OrganizationID: org, ProductID: "prod-fck25",
		RawMaterialID: "mp-aditivo", QuantityPerM3: decimal.RequireFromString("0.000012"), CreatedAt: time.Now(),
	}))
	f.productionOrderM3(t, "op-1", decimal.RequireFromString("0.5"))

	res, err := f.uc.UpdateStatus(ctx, org, "user-1", "op-1", entity.ProductionStatusFinalizado)
	require.NoError(t, err)
	require.Len(t, res.Deductions, 1)

	want := decimal.RequireFromString("0.000006")
	movs, err := f.repos.Movements.ListByReference(ctx, org, "op-1")
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.True(t, movs[0].Quantity.Equal(want), "got %s", movs[0].Quantity)
	assert.True(t, f.stock(t, "mp-aditivo").Equal(decimal.NewFromInt(1).Sub(want)))
}

func TestFinalizar_SinTracoEsErrorDeDominio(t *testing.T) {
	f := newFixture(t)
	f.productionOrder(t, "op-1", 1)

	_, err := f.uc.UpdateStatus(context.Background(), org, "user-1", "op-1", entity.ProductionStatusFinalizado)
	assert.ErrorIs(t, err, domain.ErrDomain)
	assert.Equal(t, "recipe_not_defined", domain.Reason(err))
}

func TestFinalizar_NoSeDescuentaDosVeces(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "mp-cimento", "cimento", 1000)
	f.recipe(t, "mp-cimento", 300)
	f.productionOrder(t, "op-1", 1)

	_, err := f.uc.UpdateStatus(ctx, org, "user-1", "op-1", entity.ProductionStatusFinalizado)
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(ctx, org, "user-1", "op-1", entity.ProductionStatusFinalizado)
	assert.Equal(t, "production_already_finished", domain.Reason(err))
	_, err = f.uc.UpdateStatus(ctx, org, "user-1", "op-1", entity.ProductionStatusProduzindo)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	assert.True(t, f.stock(t, "mp-cimento").Equal(decimal.NewFromInt(700)))
}

func TestProduzindo_MarcaInicioUnaVez(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.productionOrder(t, "op-1", 1)

	first, err := f.uc.UpdateStatus(ctx, org, "user-1", "op-1", entity.ProductionStatusProduzindo)
	require.NoError(t, err)
	require.NotNil(t, first.StartedAt)

	_, err = f.uc.UpdateStatus(ctx, org, "user-1", "op-1", entity.ProductionStatusAguardando)
	require.NoError(t, err)
	again, err := f.uc.UpdateStatus(ctx, org, "user-1", "op-1", entity.ProductionStatusProduzindo)
	require.NoError(t, err)
	assert.True(t, first.StartedAt.Equal(*again.StartedAt))
}

func TestUpdateStatus_Validaciones(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.uc.UpdateStatus(ctx, org, "user-1", "op-x", "parado")
	assert.Equal(t, "invalid_status", domain.Reason(err))

	_, err = f.uc.UpdateStatus(ctx, org, "user-1", "op-x", entity.ProductionStatusProduzindo)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.UpdateStatus(ctx, "", "user-1", "op-x", entity.ProductionStatusProduzindo)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRecipe_ReemplazaCompleto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "mp-areia", "areia", 0)
	f.material(t, "mp-cimento", "cimento", 0)
	f.recipe(t, "mp-areia", 700)
	uc := production.NewRecipeUseCase(f.store, f.repos)

	res, err := uc.Replace(ctx, org, "prod-fck25", dto.ReplaceRecipeRequest{Items: []dto.RecipeItemRequest{
		{RawMaterialID: "mp-cimento", QuantityPerM3: decimal.NewFromInt(320)},
	}})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "cimento", res.Items[0].RawMaterialName)

	got, err := uc.Get(ctx, org, "prod-fck25")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "mp-cimento", got.Items[0].RawMaterialID)

	cleared, err := uc.Replace(ctx, org, "prod-fck25", dto.ReplaceRecipeRequest{})
	require.NoError(t, err)
	assert.Empty(t, cleared.Items)
}

func TestRecipe_RechazaLineasInvalidas(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.material(t, "mp-cimento", "cimento", 0)
	f.recipe(t, "mp-cimento", 300)
	uc := production.NewRecipeUseCase(f.store, f.repos)

	_, err := uc.Replace(ctx, org, "prod-fck25", dto.ReplaceRecipeRequest{Items: []dto.RecipeItemRequest{
		{RawMaterialID: "mp-cimento", QuantityPerM3: decimal.Zero},
	}})
	assert.Equal(t, "quantity_must_be_positive", domain.Reason(err))

	_, err = uc.Replace(ctx, org, "prod-fck25", dto.ReplaceRecipeRequest{Items: []dto.RecipeItemRequest{
		{RawMaterialID: "mp-cimento", QuantityPerM3: decimal.NewFromInt(1)},
		{RawMaterialID: "mp-cimento", QuantityPerM3: decimal.NewFromInt(2)},
	}})
	assert.Equal(t, "duplicated_raw_material", domain.Reason(err))

	_, err = uc.Replace(ctx, org, "prod-fck25", dto.ReplaceRecipeRequest{Items: []dto.RecipeItemRequest{
		{RawMaterialID: "no-existe", QuantityPerM3: decimal.NewFromInt(1)},
	}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := uc.Get(ctx, org, "prod-fck25")
	require.NoError(t, err)
	require.Len(t, got.Items, 1, "el traço anterior sigue intacto tras el rollback")
}
