package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
	"github.com/jhoicas/concretera-erp/internal/infrastructure/memory"
)

func newMaterial(org, id string, stock int64) *entity.RawMaterial {
	now := time.Now()
	return &entity.RawMaterial{
		ID:             id,
		OrganizationID: org,
		Name:           "cimento",
		Unit:           "kg",
		CurrentStock:   decimal.NewFromInt(stock),
		MinimumStock:   decimal.NewFromInt(100),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestRun_DescartaCambiosSiFnFalla(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Repos().RawMaterials.Create(ctx, newMaterial("org-1", "mp-1", 1000)))

	boom := errors.New("boom")
	err := store.Run(ctx, func(r repository.Repos) error {
		if _, err := r.RawMaterials.AdjustStock(ctx, "org-1", "mp-1", decimal.NewFromInt(-600)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	m, err := store.Repos().RawMaterials.GetByID(ctx, "org-1", "mp-1")
	require.NoError(t, err)
	assert.True(t, m.CurrentStock.Equal(decimal.NewFromInt(1000)), "el saldo no debe cambiar tras rollback")
}

func TestRun_PublicaCambiosAlTerminarSinError(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Repos().RawMaterials.Create(ctx, newMaterial("org-1", "mp-1", 1000)))

	err := store.Run(ctx, func(r repository.Repos) error {
		_, err := r.RawMaterials.AdjustStock(ctx, "org-1", "mp-1", decimal.NewFromInt(-600))
		return err
	})
	require.NoError(t, err)

	m, _ := store.Repos().RawMaterials.GetByID(ctx, "org-1", "mp-1")
	assert.True(t, m.CurrentStock.Equal(decimal.NewFromInt(400)))
}

func TestAdjustStock_NoDejaSaldoNegativo(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	require.NoError(t, repos.RawMaterials.Create(ctx, newMaterial("org-1", "mp-1", 250)))

	_, err := repos.RawMaterials.AdjustStock(ctx, "org-1", "mp-1", decimal.NewFromInt(-300))
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "cimento", stockErr.Material)
	assert.True(t, stockErr.Required.Equal(decimal.NewFromInt(300)))
	assert.True(t, stockErr.Available.Equal(decimal.NewFromInt(250)))

	_, err = repos.RawMaterials.AdjustStock(ctx, "org-1", "no-existe", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepos_AisladosPorOrganizacion(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	require.NoError(t, repos.RawMaterials.Create(ctx, newMaterial("org-1", "mp-1", 10)))

	got, err := repos.RawMaterials.GetByID(ctx, "org-2", "mp-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = repos.RawMaterials.AdjustStock(ctx, "org-2", "mp-1", decimal.NewFromInt(5))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := repos.RawMaterials.List(ctx, "org-2", repository.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestInvoiceNextNumber_SecuencialPorOrganizacion(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()

	for want := int64(1); want <= 3; want++ {
		n, err := repos.Invoices.NextNumber(ctx, "org-1")
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
	n, err := repos.Invoices.NextNumber(ctx, "org-2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMarkOverdue_SoloPendientesVencidas(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	issue := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mk := func(id, delivery, status string) {
		require.NoError(t, repos.Receivables.Create(ctx, &entity.Receivable{
			ID: id, OrganizationID: "org-1", DeliveryID: delivery, Amount: decimal.NewFromInt(10),
			IssueDate: issue, DueDate: entity.DueDateFor(issue), Status: status,
		}))
	}
	mk("r1", "e1", entity.ReceivableStatusPendente)
	mk("r2", "e2", entity.ReceivableStatusPago)

	n, err := repos.Receivables.MarkOverdue(ctx, "org-1", issue.AddDate(0, 0, 31))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	r1, _ := repos.Receivables.GetByID(ctx, "org-1", "r1")
	r2, _ := repos.Receivables.GetByID(ctx, "org-1", "r2")
	assert.Equal(t, entity.ReceivableStatusVencido, r1.Status)
	assert.Equal(t, entity.ReceivableStatusPago, r2.Status)
}

func TestList_PaginaYFiltraPorFecha(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repos.Quotes.Create(ctx, &entity.Quote{
			ID: string(rune('a' + i)), OrganizationID: "org-1", Status: entity.QuoteStatusPendente,
			CreatedAt: base.AddDate(0, 0, i),
		}))
	}

	from, to := base.AddDate(0, 0, 1), base.AddDate(0, 0, 4)
	got, err := repos.Quotes.List(ctx, "org-1", repository.ListFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "d", got[0].ID, "más reciente primero")

	got, err = repos.Quotes.List(ctx, "org-1", repository.ListFilter{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
