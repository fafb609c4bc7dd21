package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

var (
	_ repository.QuoteRepository  = (*QuoteRepo)(nil)
	_ repository.BudgetRepository = (*BudgetRepo)(nil)
	_ repository.OrderRepository  = (*OrderRepo)(nil)
)

var (
	quoteCols = []string{"id", "organization_id", "cliente_id", "produto_id", "comprimento", "largura", "altura",
		"preco_unitario", "custo_m3", "distancia_km", "valor_km", "volume_m3", "valor_frete", "valor_total",
		"lucro_estimado", "status", "motivo_perda", "created_by", "created_at", "updated_at"}
	budgetCols = []string{"id", "organization_id", "cliente_id", "valor_total", "custo_total", "lucro_total",
		"status", "observacoes", "created_by", "created_at", "updated_at"}
	budgetItemCols = []string{"id", "organization_id", "orcamento_id", "produto_id", "posicao", "quantidade_m3",
		"preco_unitario", "custo_unitario", "subtotal", "custo_subtotal", "lucro_item"}
	orderCols = []string{"id", "organization_id", "cliente_id", "orcamento_id", "valor_total", "status",
		"created_by", "created_at", "updated_at"}
	orderItemCols = []string{"id", "organization_id", "pedido_id", "produto_id", "posicao", "quantidade_m3",
		"preco_unitario", "subtotal"}
)

// QuoteRepo orçamentos legados de un producto.
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository construye el repo. Pasar pool o tx.
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

func (r *QuoteRepo) Create(ctx context.Context, o *entity.Quote) error {
	return insert(ctx, r.q, "insert quote", "quotes", quoteCols,
		o.ID, o.OrganizationID, o.ClientID, o.ProductID, o.Length, o.Width, o.Height,
		o.UnitPrice, o.CostM3, o.DistanceKm, o.KmRate, o.VolumeM3, o.FreightValue, o.Total,
		o.EstimatedProfit, o.Status, o.LossReason, o.CreatedBy, o.CreatedAt, o.UpdatedAt)
}

// Update solo estado y motivo: los valores calculados se congelan al crear.
func (r *QuoteRepo) Update(ctx context.Context, o *entity.Quote) error {
	return update(ctx, r.q, "update quote", "quotes", o.OrganizationID, o.ID, map[string]any{
		"status":       o.Status,
		"motivo_perda": o.LossReason,
		"updated_at":   o.UpdatedAt,
	})
}

func (r *QuoteRepo) GetByID(ctx context.Context, orgID, id string) (*entity.Quote, error) {
	return getOne[entity.Quote](ctx, r.q, "get quote", r.byID(orgID, id))
}

func (r *QuoteRepo) GetForUpdate(ctx context.Context, orgID, id string) (*entity.Quote, error) {
	return getOne[entity.Quote](ctx, r.q, "lock quote", r.byID(orgID, id).Suffix("FOR UPDATE"))
}

func (r *QuoteRepo) List(ctx context.Context, orgID string, f repository.ListFilter) ([]*entity.Quote, error) {
	return getMany[entity.Quote](ctx, r.q, "list quotes",
		scopedList(psql.Select(quoteCols...).From("quotes"), orgID, f, "status", "created_at"))
}

func (r *QuoteRepo) byID(orgID, id string) sq.SelectBuilder {
	return psql.Select(quoteCols...).From("quotes").Where(sq.Eq{"id": id, "organization_id": orgID})
}

// BudgetRepo orçamentos multi-ítem.
type BudgetRepo struct {
	q Querier
}

// NewBudgetRepository construye el repo. Pasar pool o tx.
func NewBudgetRepository(q Querier) *BudgetRepo {
	return &BudgetRepo{q: q}
}

func (r *BudgetRepo) Create(ctx context.Context, b *entity.Budget) error {
	return insert(ctx, r.q, "insert budget", "budgets", budgetCols,
		b.ID, b.OrganizationID, b.ClientID, b.TotalValue, b.TotalCost, b.TotalProfit,
		b.Status, b.Notes, b.CreatedBy, b.CreatedAt, b.UpdatedAt)
}

func (r *BudgetRepo) CreateItem(ctx context.Context, it *entity.BudgetItem) error {
	return insert(ctx, r.q, "insert budget item", "budget_items", budgetItemCols,
		it.ID, it.OrganizationID, it.BudgetID, it.ProductID, it.Position, it.QuantityM3,
		it.UnitPrice, it.UnitCost, it.Subtotal, it.CostSubtotal, it.ItemProfit)
}

func (r *BudgetRepo) Update(ctx context.Context, b *entity.Budget) error {
	return update(ctx, r.q, "update budget", "budgets", b.OrganizationID, b.ID, map[string]any{
		"status":      b.Status,
		"observacoes": b.Notes,
		"updated_at":  b.UpdatedAt,
	})
}

func (r *BudgetRepo) GetByID(ctx context.Context, orgID, id string) (*entity.Budget, error) {
	return getOne[entity.Budget](ctx, r.q, "get budget", r.byID(orgID, id))
}

func (r *BudgetRepo) GetForUpdate(ctx context.Context, orgID, id string) (*entity.Budget, error) {
	return getOne[entity.Budget](ctx, r.q, "lock budget", r.byID(orgID, id).Suffix("FOR UPDATE"))
}

func (r *BudgetRepo) ListItems(ctx context.Context, orgID, budgetID string) ([]*entity.BudgetItem, error) {
	return getMany[entity.BudgetItem](ctx, r.q, "list budget items",
		psql.Select(budgetItemCols...).From("budget_items").
			Where(sq.Eq{"orcamento_id": budgetID, "organization_id": orgID}).
			OrderBy("posicao"))
}

func (r *BudgetRepo) List(ctx context.Context, orgID string, f repository.ListFilter) ([]*entity.Budget, error) {
	return getMany[entity.Budget](ctx, r.q, "list budgets",
		scopedList(psql.Select(budgetCols...).From("budgets"), orgID, f, "status", "created_at"))
}

func (r *BudgetRepo) byID(orgID, id string) sq.SelectBuilder {
	return psql.Select(budgetCols...).From("budgets").Where(sq.Eq{"id": id, "organization_id": orgID})
}

// OrderRepo pedidos. orcamento_id tiene índice único parcial: un pedido por orçamento.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el repo. Pasar pool o tx.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	return insert(ctx, r.q, "insert order", "orders", orderCols,
		o.ID, o.OrganizationID, o.ClientID, o.BudgetID, o.TotalValue, o.Status, o.CreatedBy, o.CreatedAt, o.UpdatedAt)
}

func (r *OrderRepo) CreateItem(ctx context.Context, it *entity.OrderItem) error {
	return insert(ctx, r.q, "insert order item", "order_items", orderItemCols,
		it.ID, it.OrganizationID, it.OrderID, it.ProductID, it.Position, it.QuantityM3, it.UnitPrice, it.Subtotal)
}

func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	return update(ctx, r.q, "update order", "orders", o.OrganizationID, o.ID, map[string]any{
		"status":     o.Status,
		"updated_at": o.UpdatedAt,
	})
}

func (r *OrderRepo) GetByID(ctx context.Context, orgID, id string) (*entity.Order, error) {
	return getOne[entity.Order](ctx, r.q, "get order", r.byID(orgID, id))
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, orgID, id string) (*entity.Order, error) {
	return getOne[entity.Order](ctx, r.q, "lock order", r.byID(orgID, id).Suffix("FOR UPDATE"))
}

func (r *OrderRepo) GetByBudget(ctx context.Context, orgID, budgetID string) (*entity.Order, error) {
	return getOne[entity.Order](ctx, r.q, "get order by budget",
		psql.Select(orderCols...).From("orders").Where(sq.Eq{"orcamento_id": budgetID, "organization_id": orgID}))
}

func (r *OrderRepo) ListItems(ctx context.Context, orgID, orderID string) ([]*entity.OrderItem, error) {
	return getMany[entity.OrderItem](ctx, r.q, "list order items",
		psql.Select(orderItemCols...).From("order_items").
			Where(sq.Eq{"pedido_id": orderID, "organization_id": orgID}).
			OrderBy("posicao"))
}

func (r *OrderRepo) List(ctx context.Context, orgID string, f repository.ListFilter) ([]*entity.Order, error) {
	return getMany[entity.Order](ctx, r.q, "list orders",
		scopedList(psql.Select(orderCols...).From("orders"), orgID, f, "status", "created_at"))
}

func (r *OrderRepo) byID(orgID, id string) sq.SelectBuilder {
	return psql.Select(orderCols...).From("orders").Where(sq.Eq{"id": id, "organization_id": orgID})
}
