package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

var (
	_ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)
	_ repository.RecipeRepository          = (*RecipeRepo)(nil)
)

var (
	productionOrderCols = []string{"id", "organization_id", "pedido_id", "produto_id", "quantidade_m3", "status",
		"iniciado_em", "finalizado_em", "created_at", "updated_at"}
	recipeCols = []string{"id", "organization_id", "produto_id", "materia_prima_id", "quantidade_por_m3", "created_at"}
)

// ProductionOrderRepo ordens de produção.
type ProductionOrderRepo struct {
	q Querier
}

// NewProductionOrderRepository construye el repo. Pasar pool o tx.
func NewProductionOrderRepository(q Querier) *ProductionOrderRepo {
	return &ProductionOrderRepo{q: q}
}

func (r *ProductionOrderRepo) Create(ctx context.Context, po *entity.ProductionOrder) error {
	return insert(ctx, r.q, "insert production order", "production_orders", productionOrderCols,
		po.ID, po.OrganizationID, po.OrderID, po.ProductID, po.QuantityM3, po.Status,
		po.StartedAt, po.FinishedAt, po.CreatedAt, po.UpdatedAt)
}

func (r *ProductionOrderRepo) Update(ctx context.Context, po *entity.ProductionOrder) error {
	return update(ctx, r.q, "update production order", "production_orders", po.OrganizationID, po.ID, map[string]any{
		"status":        po.Status,
		"iniciado_em":   po.StartedAt,
		"finalizado_em": po.FinishedAt,
		"updated_at":    po.UpdatedAt,
	})
}

func (r *ProductionOrderRepo) GetByID(ctx context.Context, orgID, id string) (*entity.ProductionOrder, error) {
	return getOne[entity.ProductionOrder](ctx, r.q, "get production order", r.byID(orgID, id))
}

func (r *ProductionOrderRepo) GetForUpdate(ctx context.Context, orgID, id string) (*entity.ProductionOrder, error) {
	return getOne[entity.ProductionOrder](ctx, r.q, "lock production order", r.byID(orgID, id).Suffix("FOR UPDATE"))
}

func (r *ProductionOrderRepo) ListByOrder(ctx context.Context, orgID, orderID string) ([]*entity.ProductionOrder, error) {
	return getMany[entity.ProductionOrder](ctx, r.q, "list production orders by order",
		psql.Select(productionOrderCols...).From("production_orders").
			Where(sq.Eq{"pedido_id": orderID, "organization_id": orgID}).
			OrderBy("created_at", "id"))
}

func (r *ProductionOrderRepo) List(ctx context.Context, orgID string, f repository.ListFilter) ([]*entity.ProductionOrder, error) {
	return getMany[entity.ProductionOrder](ctx, r.q, "list production orders",
		scopedList(psql.Select(productionOrderCols...).From("production_orders"), orgID, f, "status", "created_at"))
}

func (r *ProductionOrderRepo) byID(orgID, id string) sq.SelectBuilder {
	return psql.Select(productionOrderCols...).From("production_orders").Where(sq.Eq{"id": id, "organization_id": orgID})
}

// RecipeRepo traço por producto (tabla production_recipes).
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el repo. Pasar pool o tx.
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// ListByProduct ordena por materia prima: es el mismo orden en que se bloquean al finalizar.
func (r *RecipeRepo) ListByProduct(ctx context.Context, orgID, productID string) ([]*entity.RecipeItem, error) {
	return getMany[entity.RecipeItem](ctx, r.q, "list recipe",
		psql.Select(recipeCols...).From("production_recipes").
			Where(sq.Eq{"produto_id": productID, "organization_id": orgID}).
			OrderBy("materia_prima_id"))
}

func (r *RecipeRepo) DeleteByProduct(ctx context.Context, orgID, productID string) error {
	sql, args, err := psql.Delete("production_recipes").
		Where(sq.Eq{"produto_id": productID, "organization_id": orgID}).ToSql()
	if err != nil {
		return fmt.Errorf("delete recipe: build query: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}

func (r *RecipeRepo) Create(ctx context.Context, it *entity.RecipeItem) error {
	return insert(ctx, r.q, "insert recipe item", "production_recipes", recipeCols,
		it.ID, it.OrganizationID, it.ProductID, it.RawMaterialID, it.QuantityPerM3, it.CreatedAt)
}
