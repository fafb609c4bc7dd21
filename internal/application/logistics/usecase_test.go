package logistics_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/concretera-erp/internal/application/billing"
	"github.com/jhoicas/concretera-erp/internal/application/dto"
	"github.com/jhoicas/concretera-erp/internal/application/logistics"
	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/infrastructure/memory"
)

const org = "org-1"

// seed deja un pedido de 3 m³ @ 400 con su OP en el estado indicado.
func seed(t *testing.T, poStatus string) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	repos := store.Repos()
	now := time.Now()
	require.NoError(t, repos.Clients.Create(ctx, &entity.Client{ID: "cli-1", OrganizationID: org, Name: "Alfa", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "prod-a", OrganizationID: org, Name: "FCK 25", Active: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Orders.Create(ctx, &entity.Order{
		ID: "ped-1", OrganizationID: org, ClientID: "cli-1", TotalValue: decimal.NewFromInt(1200),
		Status: entity.OrderStatusEmProducao, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, repos.Orders.CreateItem(ctx, &entity.OrderItem{
		ID: "it-1", OrganizationID: org, OrderID: "ped-1", ProductID: "prod-a", Position: 1,
		QuantityM3: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(400), Subtotal: decimal.NewFromInt(1200),
	}))
	require.NoError(t, repos.ProductionOrders.Create(ctx, &entity.ProductionOrder{
		ID: "op-1", OrganizationID: org, OrderID: "ped-1", ProductID: "prod-a",
		QuantityM3: decimal.NewFromInt(3), Status: poStatus, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, repos.Trucks.Create(ctx, &entity.Truck{ID: "cam-1", OrganizationID: org, Plate: "ABC1D23", Active: true, CreatedAt: now}))
	return store
}

func newUseCase(store *memory.Store, log zerolog.Logger) *logistics.DeliveryUseCase {
	receivables := billing.NewReceivableUseCase(store, store.Repos())
	return logistics.NewDeliveryUseCase(store, store.Repos(), receivables, log)
}

func TestCreate_ExigeOPFinalizada(t *testing.T) {
	for _, status := range []string{entity.ProductionStatusAguardando, entity.ProductionStatusProduzindo} {
		store := seed(t, status)
		uc := newUseCase(store, zerolog.Nop())

		_, err := uc.Create(context.Background(), org, dto.CreateDeliveryRequest{ProductionOrderID: "op-1"})
		assert.ErrorIs(t, err, domain.ErrInvalidState, status)
		assert.Equal(t, "production_not_finished", domain.Reason(err))
	}
}

func TestCreate_TomaClienteYVolumeDeLaOP(t *testing.T) {
	store := seed(t, entity.ProductionStatusFinalizado)
	uc := newUseCase(store, zerolog.Nop())

	res, err := uc.Create(context.Background(), org, dto.CreateDeliveryRequest{ProductionOrderID: "op-1", TruckID: "cam-1"})
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusAgendada, res.Status)
	assert.Equal(t, "cli-1", res.ClientID)
	assert.Equal(t, "ped-1", res.OrderID)
	assert.Equal(t, "cam-1", res.TruckID)
	assert.True(t, res.VolumeM3.Equal(decimal.NewFromInt(3)))

	_, err = uc.Create(context.Background(), org, dto.CreateDeliveryRequest{ProductionOrderID: "op-1", DriverID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	zero := decimal.Zero
	_, err = uc.Create(context.Background(), org, dto.CreateDeliveryRequest{ProductionOrderID: "op-1", VolumeM3: &zero})
	assert.Equal(t, "volume_must_be_positive", domain.Reason(err))
}

func TestUpdateStatus_FlujoCompletoGeneraConta(t *testing.T) {
	ctx := context.Background()
	store := seed(t, entity.ProductionStatusFinalizado)
	uc := newUseCase(store, zerolog.Nop())
	del, err := uc.Create(ctx, org, dto.CreateDeliveryRequest{ProductionOrderID: "op-1"})
	require.NoError(t, err)

	moving, err := uc.UpdateStatus(ctx, org, del.ID, dto.UpdateDeliveryStatusRequest{Status: "transporte"})
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusEmTransporte, moving.Status)
	assert.NotNil(t, moving.DepartedAt)

	lat, lng := -23.55, -46.63
	done, err := uc.UpdateStatus(ctx, org, del.ID, dto.UpdateDeliveryStatusRequest{
		Status: entity.DeliveryStatusEntregue, ProofURL: "https://fotos.example/1.jpg", Latitude: &lat, Longitude: &lng,
	})
	require.NoError(t, err)
	assert.NotNil(t, done.DeliveredAt)
	assert.Equal(t, "https://fotos.example/1.jpg", done.ProofURL)
	require.NotEmpty(t, done.ReceivableID)

	rec, err := store.Repos().Receivables.GetByID(ctx, org, done.ReceivableID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReceivableStatusPendente, rec.Status)
	assert.True(t, rec.Amount.Equal(decimal.NewFromInt(1200)))
	assert.True(t, rec.DueDate.Equal(rec.IssueDate.AddDate(0, 0, 30)))

	_, err = uc.UpdateStatus(ctx, org, del.ID, dto.UpdateDeliveryStatusRequest{Status: entity.DeliveryStatusCancelada})
	assert.Equal(t, "delivery_already_completed", domain.Reason(err))

	got, err := uc.GetByID(ctx, org, del.ID)
	require.NoError(t, err)
	assert.Equal(t, done.ReceivableID, got.ReceivableID)
}

// Entrega de orçamento legado: sin pedido no hay conta, pero la entrega queda concluida.
func TestUpdateStatus_FalloDeCobroNoRevierteEntrega(t *testing.T) {
	ctx := context.Background()
	store := seed(t, entity.ProductionStatusFinalizado)
	now := time.Now()
	require.NoError(t, store.Repos().Deliveries.Create(ctx, &entity.Delivery{
		ID: "ent-legado", OrganizationID: org, QuoteID: entity.Ref("orc-1"), ClientID: "cli-1",
		VolumeM3: decimal.NewFromInt(5), Status: entity.DeliveryStatusAgendada, CreatedAt: now, UpdatedAt: now,
	}))
	var buf bytes.Buffer
	uc := newUseCase(store, zerolog.New(&buf))

	res, err := uc.UpdateStatus(ctx, org, "ent-legado", dto.UpdateDeliveryStatusRequest{Status: entity.DeliveryStatusEntregue})
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusEntregue, res.Status)
	assert.Empty(t, res.ReceivableID)
	assert.Contains(t, buf.String(), "ent-legado")
	assert.Contains(t, buf.String(), `"level":"warn"`)

	stored, err := store.Repos().Deliveries.GetByID(ctx, org, "ent-legado")
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusEntregue, stored.Status)
}

func TestUpdateStatus_EstadoDesconocido(t *testing.T) {
	store := seed(t, entity.ProductionStatusFinalizado)
	uc := newUseCase(store, zerolog.Nop())
	_, err := uc.UpdateStatus(context.Background(), org, "x", dto.UpdateDeliveryStatusRequest{Status: "perdida"})
	assert.Equal(t, "invalid_status", domain.Reason(err))
}
