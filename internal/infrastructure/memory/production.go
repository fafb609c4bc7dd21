package memory

import (
	"context"

	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

var (
	_ repository.ProductionOrderRepository = (*productionOrderRepo)(nil)
	_ repository.RecipeRepository          = (*recipeRepo)(nil)
)

func orgOfProductionOrder(po *entity.ProductionOrder) string { return po.OrganizationID }

type productionOrderRepo struct{ db access }

func (r *productionOrderRepo) Create(_ context.Context, po *entity.ProductionOrder) error {
	return r.db.with(func(st *state) error {
		if scoped(st.orders, po.OrganizationID, po.OrderID, orgOfOrder) == nil {
			return errParentMissing("pedido", po.OrderID)
		}
		return insert(st.productionOrders, po.ID, *po)
	})
}

func (r *productionOrderRepo) Update(_ context.Context, po *entity.ProductionOrder) error {
	return r.db.with(func(st *state) error {
		return replace(st.productionOrders, po.OrganizationID, po.ID, *po, orgOfProductionOrder)
	})
}

func (r *productionOrderRepo) GetByID(_ context.Context, orgID, id string) (*entity.ProductionOrder, error) {
	var out *entity.ProductionOrder
	err := r.db.with(func(st *state) error {
		out = scoped(st.productionOrders, orgID, id, orgOfProductionOrder)
		return nil
	})
	return out, err
}

func (r *productionOrderRepo) GetForUpdate(ctx context.Context, orgID, id string) (*entity.ProductionOrder, error) {
	return r.GetByID(ctx, orgID, id)
}

func (r *productionOrderRepo) ListByOrder(_ context.Context, orgID, orderID string) ([]*entity.ProductionOrder, error) {
	var out []*entity.ProductionOrder
	err := r.db.with(func(st *state) error {
		out = collect(st.productionOrders,
			func(po *entity.ProductionOrder) bool { return po.OrganizationID == orgID && po.OrderID == orderID },
			func(a, b *entity.ProductionOrder) bool { return newestFirst(b.CreatedAt, a.CreatedAt, a.ID, b.ID) },
			0, 0)
		return nil
	})
	return out, err
}

func (r *productionOrderRepo) List(_ context.Context, orgID string, f repository.ListFilter) ([]*entity.ProductionOrder, error) {
	var out []*entity.ProductionOrder
	err := r.db.with(func(st *state) error {
		out = collect(st.productionOrders,
			func(po *entity.ProductionOrder) bool {
				return po.OrganizationID == orgID && statusMatches(po.Status, f) && inWindow(po.CreatedAt, f)
			},
			func(a, b *entity.ProductionOrder) bool { return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID) },
			f.Limit, f.Offset)
		return nil
	})
	return out, err
}

type recipeRepo struct{ db access }

// ListByProduct devuelve el traço ordenado por materia prima (orden de bloqueo).
func (r *recipeRepo) ListByProduct(_ context.Context, orgID, productID string) ([]*entity.RecipeItem, error) {
	var out []*entity.RecipeItem
	err := r.db.with(func(st *state) error {
		out = collect(st.recipes,
			func(i *entity.RecipeItem) bool { return i.OrganizationID == orgID && i.ProductID == productID },
			func(a, b *entity.RecipeItem) bool { return a.RawMaterialID < b.RawMaterialID },
			0, 0)
		return nil
	})
	return out, err
}

func (r *recipeRepo) DeleteByProduct(_ context.Context, orgID, productID string) error {
	return r.db.with(func(st *state) error {
		for id, item := range st.recipes {
			if item.OrganizationID == orgID && item.ProductID == productID {
				delete(st.recipes, id)
			}
		}
		return nil
	})
}

func (r *recipeRepo) Create(_ context.Context, item *entity.RecipeItem) error {
	return r.db.with(func(st *state) error {
		if scoped(st.products, item.OrganizationID, item.ProductID, orgOfProduct) == nil {
			return errParentMissing("produto", item.ProductID)
		}
		if scoped(st.rawMaterials, item.OrganizationID, item.RawMaterialID, orgOfRawMaterial) == nil {
			return errParentMissing("materia_prima", item.RawMaterialID)
		}
		for _, existing := range st.recipes {
			if existing.OrganizationID == item.OrganizationID &&
				existing.ProductID == item.ProductID && existing.RawMaterialID == item.RawMaterialID {
				return errUnique("producao_receitas.produto_materia")
			}
		}
		return insert(st.recipes, item.ID, *item)
	})
}
