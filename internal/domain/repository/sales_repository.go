package repository

import (
	"context"

	"github.com/jhoicas/concretera-erp/internal/domain/entity"
)

// QuoteRepository puerto para orçamentos legados (un solo producto).
type QuoteRepository interface {
	Create(ctx context.Context, q *entity.Quote) error
	Update(ctx context.Context, q *entity.Quote) error
	GetByID(ctx context.Context, orgID, id string) (*entity.Quote, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) durante la transición de estado.
	GetForUpdate(ctx context.Context, orgID, id string) (*entity.Quote, error)
	List(ctx context.Context, orgID string, f ListFilter) ([]*entity.Quote, error)
}

// BudgetRepository puerto para orçamentos multi-ítem y sus ítems.
type BudgetRepository interface {
	Create(ctx context.Context, b *entity.Budget) error
	CreateItem(ctx context.Context, item *entity.BudgetItem) error
	Update(ctx context.Context, b *entity.Budget) error
	GetByID(ctx context.Context, orgID, id string) (*entity.Budget, error)
	GetForUpdate(ctx context.Context, orgID, id string) (*entity.Budget, error)
	// ListItems devuelve los ítems ordenados por posición.
	ListItems(ctx context.Context, orgID, budgetID string) ([]*entity.BudgetItem, error)
	List(ctx context.Context, orgID string, f ListFilter) ([]*entity.Budget, error)
}

// OrderRepository puerto para pedidos y sus ítems.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	CreateItem(ctx context.Context, item *entity.OrderItem) error
	Update(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, orgID, id string) (*entity.Order, error)
	GetForUpdate(ctx context.Context, orgID, id string) (*entity.Order, error)
	// GetByBudget devuelve el pedido generado desde un orçamento, o nil si no se convirtió.
	GetByBudget(ctx context.Context, orgID, budgetID string) (*entity.Order, error)
	ListItems(ctx context.Context, orgID, orderID string) ([]*entity.OrderItem, error)
	List(ctx context.Context, orgID string, f ListFilter) ([]*entity.Order, error)
}
