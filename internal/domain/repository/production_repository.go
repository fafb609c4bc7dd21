package repository

import (
	"context"

	"github.com/jhoicas/concretera-erp/internal/domain/entity"
)

// ProductionOrderRepository puerto para ordens de produção.
type ProductionOrderRepository interface {
	Create(ctx context.Context, po *entity.ProductionOrder) error
	Update(ctx context.Context, po *entity.ProductionOrder) error
	GetByID(ctx context.Context, orgID, id string) (*entity.ProductionOrder, error)
	GetForUpdate(ctx context.Context, orgID, id string) (*entity.ProductionOrder, error)
	ListByOrder(ctx context.Context, orgID, orderID string) ([]*entity.ProductionOrder, error)
	List(ctx context.Context, orgID string, f ListFilter) ([]*entity.ProductionOrder, error)
}

// RecipeRepository puerto para el traço de cada producto.
type RecipeRepository interface {
	ListByProduct(ctx context.Context, orgID, productID string) ([]*entity.RecipeItem, error)
	DeleteByProduct(ctx context.Context, orgID, productID string) error
	Create(ctx context.Context, item *entity.RecipeItem) error
}
