package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// NewRepos construye todos los repositorios sobre q (pool o tx).
func NewRepos(q Querier) repository.Repos {
	return repository.Repos{
		Organizations:    NewOrganizationRepository(q),
		Users:            NewUserRepository(q),
		Clients:          NewClientRepository(q),
		Products:         NewProductRepository(q),
		Quotes:           NewQuoteRepository(q),
		Budgets:          NewBudgetRepository(q),
		Orders:           NewOrderRepository(q),
		ProductionOrders: NewProductionOrderRepository(q),
		Recipes:          NewRecipeRepository(q),
		RawMaterials:     NewRawMaterialRepository(q),
		Movements:        NewInventoryMovementRepository(q),
		Trucks:           NewTruckRepository(q),
		Drivers:          NewDriverRepository(q),
		Deliveries:       NewDeliveryRepository(q),
		Receivables:      NewReceivableRepository(q),
		Invoices:         NewInvoiceRepository(q),
	}
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
