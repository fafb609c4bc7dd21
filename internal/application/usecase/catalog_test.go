package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/concretera-erp/internal/application/dto"
	"github.com/jhoicas/concretera-erp/internal/application/usecase"
	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
	"github.com/jhoicas/concretera-erp/internal/infrastructure/memory"
)

func TestProduct_CreateAplicaDefaults(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.New().Repos().Products)

	p, err := uc.Create(ctx, "org-1", dto.CreateProductRequest{
		Name: "  Concreto FCK 30 ", Category: entity.ProductCategoryConcreto,
		PriceM3: decimal.NewFromInt(450), CostM3: decimal.NewFromInt(300),
	})
	require.NoError(t, err)
	assert.Equal(t, "Concreto FCK 30", p.Name)
	assert.Equal(t, "m3", p.Unit)
	assert.True(t, p.Active)
}

func TestProduct_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.New().Repos().Products)

	_, err := uc.Create(ctx, "org-1", dto.CreateProductRequest{Name: "X", Category: "tijolo"})
	assert.Equal(t, "invalid_category", domain.Reason(err))

	_, err = uc.Create(ctx, "org-1", dto.CreateProductRequest{
		Name: "X", Category: entity.ProductCategoryManilha, PriceM3: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "negative_price_m3", domain.Reason(err))

	_, err = uc.Create(ctx, "", dto.CreateProductRequest{Name: "X", Category: entity.ProductCategoryManilha})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestProduct_UpdateParcialYAislamiento(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.New().Repos().Products)
	p, err := uc.Create(ctx, "org-1", dto.CreateProductRequest{
		Name: "Manilha 80", Category: entity.ProductCategoryManilha,
		PriceM3: decimal.NewFromInt(700), CostM3: decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	price := decimal.NewFromInt(720)
	inactive := false
	out, err := uc.Update(ctx, "org-1", p.ID, dto.UpdateProductRequest{PriceM3: &price, Active: &inactive})
	require.NoError(t, err)
	assert.True(t, out.PriceM3.Equal(price))
	assert.True(t, out.CostM3.Equal(decimal.NewFromInt(500)), "lo no enviado se conserva")
	assert.False(t, out.Active)

	negative := decimal.NewFromInt(-5)
	_, err = uc.Update(ctx, "org-1", p.ID, dto.UpdateProductRequest{CostM3: &negative})
	assert.Equal(t, "negative_cost_m3", domain.Reason(err))

	_, err = uc.GetByID(ctx, "org-2", p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_CreateNormaliza(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewClientUseCase(memory.New().Repos().Clients)

	c, err := uc.Create(ctx, "org-1", dto.CreateClientRequest{Name: "Construtora Alfa", State: "sp"})
	require.NoError(t, err)
	assert.Equal(t, entity.ClientKindExternal, c.Kind)
	assert.Equal(t, "SP", c.State)

	_, err = uc.Create(ctx, "org-1", dto.CreateClientRequest{Name: "  "})
	assert.Equal(t, "name_required", domain.Reason(err))

	_, err = uc.Create(ctx, "org-1", dto.CreateClientRequest{Name: "Y", Kind: "parceiro"})
	assert.Equal(t, "invalid_client_kind", domain.Reason(err))
}

func TestFleet_PlacaNormalizada(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	uc := usecase.NewFleetUseCase(repos.Trucks, repos.Drivers)

	truck, err := uc.CreateTruck(ctx, "org-1", dto.CreateTruckRequest{Plate: " abc-1d23 ", CapacityM3: decimal.NewFromInt(8)})
	require.NoError(t, err)
	assert.Equal(t, "ABC1D23", truck.Plate)

	_, err = uc.CreateTruck(ctx, "org-1", dto.CreateTruckRequest{Plate: "XYZ9A87", CapacityM3: decimal.NewFromInt(-1)})
	assert.Equal(t, "negative_capacity", domain.Reason(err))

	_, err = uc.CreateDriver(ctx, "org-1", dto.CreateDriverRequest{Name: "João", License: "12345678900"})
	require.NoError(t, err)

	trucks, err := uc.ListTrucks(ctx, "org-1", repository.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, trucks, 1)
	drivers, err := uc.ListDrivers(ctx, "org-2", repository.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, drivers)
}

func TestUser_OtraOrganizacionEsInexistente(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	now := time.Now()
	require.NoError(t, repos.Users.Create(ctx, &entity.User{
		ID: "u-1", OrganizationID: "org-1", Email: "a@alfa.com.br", PasswordHash: "x",
		Role: entity.RoleVendedor, Status: "active", CreatedAt: now, UpdatedAt: now,
	}))
	uc := usecase.NewUserUseCase(repos.Users)

	u, err := uc.GetByID(ctx, "org-1", "u-1")
	require.NoError(t, err)
	assert.Equal(t, "a@alfa.com.br", u.Email)

	_, err = uc.GetByID(ctx, "org-2", "u-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, "org-1", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
