package memory

import (
	"context"

	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

var (
	_ repository.QuoteRepository  = (*quoteRepo)(nil)
	_ repository.BudgetRepository = (*budgetRepo)(nil)
	_ repository.OrderRepository  = (*orderRepo)(nil)
)

func orgOfQuote(q *entity.Quote) string           { return q.OrganizationID }
func orgOfBudget(b *entity.Budget) string         { return b.OrganizationID }
func orgOfBudgetItem(i *entity.BudgetItem) string { return i.OrganizationID }
func orgOfOrder(o *entity.Order) string           { return o.OrganizationID }
func orgOfOrderItem(i *entity.OrderItem) string   { return i.OrganizationID }

type quoteRepo struct{ db access }

func (r *quoteRepo) Create(_ context.Context, q *entity.Quote) error {
	return r.db.with(func(st *state) error { return insert(st.quotes, q.ID, *q) })
}

func (r *quoteRepo) Update(_ context.Context, q *entity.Quote) error {
	return r.db.with(func(st *state) error {
		return replace(st.quotes, q.OrganizationID, q.ID, *q, orgOfQuote)
	})
}

func (r *quoteRepo) GetByID(_ context.Context, orgID, id string) (*entity.Quote, error) {
	var out *entity.Quote
	err := r.db.with(func(st *state) error {
		out = scoped(st.quotes, orgID, id, orgOfQuote)
		return nil
	})
	return out, err
}

// GetForUpdate en memoria equivale a GetByID: Run ya serializa las transacciones.
func (r *quoteRepo) GetForUpdate(ctx context.Context, orgID, id string) (*entity.Quote, error) {
	return r.GetByID(ctx, orgID, id)
}

func (r *quoteRepo) List(_ context.Context, orgID string, f repository.ListFilter) ([]*entity.Quote, error) {
	var out []*entity.Quote
	err := r.db.with(func(st *state) error {
		out = collect(st.quotes,
			func(q *entity.Quote) bool {
				return q.OrganizationID == orgID && statusMatches(q.Status, f) && inWindow(q.CreatedAt, f)
			},
			func(a, b *entity.Quote) bool { return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID) },
			f.Limit, f.Offset)
		return nil
	})
	return out, err
}

type budgetRepo struct{ db access }

func (r *budgetRepo) Create(_ context.Context, b *entity.Budget) error {
	return r.db.with(func(st *state) error { return insert(st.budgets, b.ID, *b) })
}

func (r *budgetRepo) CreateItem(_ context.Context, item *entity.BudgetItem) error {
	return r.db.with(func(st *state) error {
		if scoped(st.budgets, item.OrganizationID, item.BudgetID, orgOfBudget) == nil {
			return errParentMissing("orcamento", item.BudgetID)
		}
		return insert(st.budgetItems, item.ID, *item)
	})
}

func (r *budgetRepo) Update(_ context.Context, b *entity.Budget) error {
	return r.db.with(func(st *state) error {
		return replace(st.budgets, b.OrganizationID, b.ID, *b, orgOfBudget)
	})
}

func (r *budgetRepo) GetByID(_ context.Context, orgID, id string) (*entity.Budget, error) {
	var out *entity.Budget
	err := r.db.with(func(st *state) error {
		out = scoped(st.budgets, orgID, id, orgOfBudget)
		return nil
	})
	return out, err
}

func (r *budgetRepo) GetForUpdate(ctx context.Context, orgID, id string) (*entity.Budget, error) {
	return r.GetByID(ctx, orgID, id)
}

func (r *budgetRepo) ListItems(_ context.Context, orgID, budgetID string) ([]*entity.BudgetItem, error) {
	var out []*entity.BudgetItem
	err := r.db.with(func(st *state) error {
		out = collect(st.budgetItems,
			func(i *entity.BudgetItem) bool { return orgOfBudgetItem(i) == orgID && i.BudgetID == budgetID },
			func(a, b *entity.BudgetItem) bool { return a.Position < b.Position },
			0, 0)
		return nil
	})
	return out, err
}

func (r *budgetRepo) List(_ context.Context, orgID string, f repository.ListFilter) ([]*entity.Budget, error) {
	var out []*entity.Budget
	err := r.db.with(func(st *state) error {
		out = collect(st.budgets,
			func(b *entity.Budget) bool {
				return b.OrganizationID == orgID && statusMatches(b.Status, f) && inWindow(b.CreatedAt, f)
			},
			func(a, b *entity.Budget) bool { return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID) },
			f.Limit, f.Offset)
		return nil
	})
	return out, err
}

type orderRepo struct{ db access }

func (r *orderRepo) Create(_ context.Context, o *entity.Order) error {
	return r.db.with(func(st *state) error {
		if o.BudgetID != nil {
			for _, existing := range st.orders {
				if existing.BudgetID != nil && *existing.BudgetID == *o.BudgetID {
					return errUnique("pedidos.orcamento_id")
				}
			}
		}
		return insert(st.orders, o.ID, *o)
	})
}

func (r *orderRepo) CreateItem(_ context.Context, item *entity.OrderItem) error {
	return r.db.with(func(st *state) error {
		if scoped(st.orders, item.OrganizationID, item.OrderID, orgOfOrder) == nil {
			return errParentMissing("pedido", item.OrderID)
		}
		return insert(st.orderItems, item.ID, *item)
	})
}

func (r *orderRepo) Update(_ context.Context, o *entity.Order) error {
	return r.db.with(func(st *state) error {
		return replace(st.orders, o.OrganizationID, o.ID, *o, orgOfOrder)
	})
}

func (r *orderRepo) GetByID(_ context.Context, orgID, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.db.with(func(st *state) error {
		out = scoped(st.orders, orgID, id, orgOfOrder)
		return nil
	})
	return out, err
}

func (r *orderRepo) GetForUpdate(ctx context.Context, orgID, id string) (*entity.Order, error) {
	return r.GetByID(ctx, orgID, id)
}

func (r *orderRepo) GetByBudget(_ context.Context, orgID, budgetID string) (*entity.Order, error) {
	var out *entity.Order
	err := r.db.with(func(st *state) error {
		for _, o := range st.orders {
			if o.OrganizationID == orgID && o.BudgetID != nil && *o.BudgetID == budgetID {
				out = &o
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *orderRepo) ListItems(_ context.Context, orgID, orderID string) ([]*entity.OrderItem, error) {
	var out []*entity.OrderItem
	err := r.db.with(func(st *state) error {
		out = collect(st.orderItems,
			func(i *entity.OrderItem) bool { return orgOfOrderItem(i) == orgID && i.OrderID == orderID },
			func(a, b *entity.OrderItem) bool { return a.Position < b.Position },
			0, 0)
		return nil
	})
	return out, err
}

func (r *orderRepo) List(_ context.Context, orgID string, f repository.ListFilter) ([]*entity.Order, error) {
	var out []*entity.Order
	err := r.db.with(func(st *state) error {
		out = collect(st.orders,
			func(o *entity.Order) bool {
				return o.OrganizationID == orgID && statusMatches(o.Status, f) && inWindow(o.CreatedAt, f)
			},
			func(a, b *entity.Order) bool { return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID) },
			f.Limit, f.Offset)
		return nil
	})
	return out, err
}
