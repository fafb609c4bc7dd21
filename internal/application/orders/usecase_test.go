package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/concretera-erp/internal/application/dto"
	"github.com/jhoicas/concretera-erp/internal/application/orders"
	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
	"github.com/jhoicas/concretera-erp/internal/infrastructure/memory"
)

const org = "org-1"

func seed(t *testing.T) (*memory.Store, *orders.OrderUseCase) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	repos := store.Repos()
	now := time.Now()
	require.NoError(t, repos.Clients.Create(ctx, &entity.Client{
		ID: "cli-1", OrganizationID: org, Name: "Construtora Alfa", Kind: entity.ClientKindExternal,
		CreatedAt: now, UpdatedAt: now,
	}))
	for _, id := range []string{"prod-a", "prod-b"} {
		require.NoError(t, repos.Products.Create(ctx, &entity.Product{
			ID: id, OrganizationID: org, Name: id, Category: entity.ProductCategoryConcreto,
			PriceM3: decimal.NewFromInt(400), CostM3: decimal.NewFromInt(280), Active: true,
			CreatedAt: now, UpdatedAt: now,
		}))
	}
	return store, orders.NewOrderUseCase(store, repos)
}

func twoItems() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{ClientID: "cli-1", Items: []dto.OrderItemRequest{
		{ProductID: "prod-a", QuantityM3: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(400)},
		{ProductID: "prod-b", QuantityM3: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(600)},
	}}
}

func TestCreate_CalculaSubtotalesYTotal(t *testing.T) {
	_, uc := seed(t)
	res, err := uc.Create(context.Background(), org, "user-1", twoItems())
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPendente, res.Status)
	assert.True(t, res.TotalValue.Equal(decimal.NewFromInt(1400)))
	require.Len(t, res.Items, 2)
	assert.Equal(t, 1, res.Items[0].Position)
	assert.True(t, res.Items[0].Subtotal.Equal(decimal.NewFromInt(800)))
	assert.Empty(t, res.BudgetID)
}

func TestCreate_ProductoInexistenteNoDejaPedido(t *testing.T) {
	ctx := context.Background()
	store, uc := seed(t)
	in := twoItems()
	in.Items[1].ProductID = "no-existe"

	_, err := uc.Create(ctx, org, "user-1", in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := store.Repos().Orders.List(ctx, org, repository.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreate_Validaciones(t *testing.T) {
	_, uc := seed(t)
	in := twoItems()
	in.Items[0].QuantityM3 = decimal.Zero
	_, err := uc.Create(context.Background(), org, "user-1", in)
	assert.Equal(t, "quantity_must_be_positive", domain.Reason(err))

	_, err = uc.Create(context.Background(), org, "user-1", dto.CreateOrderRequest{ClientID: "cli-1"})
	assert.Equal(t, "items_required", domain.Reason(err))
}

func TestEmProducao_CreaUnaOPPorItemSinDuplicar(t *testing.T) {
	ctx := context.Background()
	store, uc := seed(t)
	created, err := uc.Create(ctx, org, "user-1", twoItems())
	require.NoError(t, err)

	res, err := uc.UpdateStatus(ctx, org, created.ID, entity.OrderStatusEmProducao)
	require.NoError(t, err)
	require.Len(t, res.ProductionOrders, 2)
	for _, po := range res.ProductionOrders {
		assert.Equal(t, entity.ProductionStatusAguardando, po.Status)
	}

	_, err = uc.UpdateStatus(ctx, org, created.ID, entity.OrderStatusPendente)
	require.NoError(t, err)
	_, err = uc.UpdateStatus(ctx, org, created.ID, entity.OrderStatusEmProducao)
	require.NoError(t, err)

	pos, err := store.Repos().ProductionOrders.ListByOrder(ctx, org, created.ID)
	require.NoError(t, err)
	assert.Len(t, pos, 2)

	got, err := uc.GetByID(ctx, org, created.ID)
	require.NoError(t, err)
	assert.Len(t, got.ProductionOrders, 2)
	assert.Len(t, got.Items, 2)
}

func TestUpdateStatus_EstadoInvalido(t *testing.T) {
	_, uc := seed(t)
	_, err := uc.UpdateStatus(context.Background(), org, "ped-x", "perdido")
	assert.Equal(t, "invalid_status", domain.Reason(err))

	_, err = uc.UpdateStatus(context.Background(), org, "ped-x", entity.OrderStatusPronto)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Escenario: pedido con 3 ítems pasa a em_producao → exactamente 3 OPs aguardando.
func TestEmProducao_TresItemsTresOPs(t *testing.T) {
	ctx := context.Background()
	_, uc := seed(t)
	in := twoItems()
	in.Items = append(in.Items, dto.OrderItemRequest{ProductID: "prod-a", QuantityM3: decimal.NewFromFloat(0.5), UnitPrice: decimal.NewFromInt(400)})
	created, err := uc.Create(ctx, org, "user-1", in)
	require.NoError(t, err)

	res, err := uc.UpdateStatus(ctx, org, created.ID, entity.OrderStatusEmProducao)
	require.NoError(t, err)
	require.Len(t, res.ProductionOrders, 3)
	total := decimal.Zero
	for _, po := range res.ProductionOrders {
		assert.Equal(t, entity.ProductionStatusAguardando, po.Status)
		total = total.Add(po.QuantityM3)
	}
	assert.True(t, total.Equal(decimal.NewFromFloat(3.5)))
}
