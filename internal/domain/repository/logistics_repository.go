package repository

import (
	"context"

	"github.com/jhoicas/concretera-erp/internal/domain/entity"
)

// DeliveryRepository puerto para entregas.
type DeliveryRepository interface {
	Create(ctx context.Context, d *entity.Delivery) error
	Update(ctx context.Context, d *entity.Delivery) error
	GetByID(ctx context.Context, orgID, id string) (*entity.Delivery, error)
	GetForUpdate(ctx context.Context, orgID, id string) (*entity.Delivery, error)
	// GetByQuote devuelve la entrega creada al cerrar un orçamento legado, o nil.
	GetByQuote(ctx context.Context, orgID, quoteID string) (*entity.Delivery, error)
	List(ctx context.Context, orgID string, f ListFilter) ([]*entity.Delivery, error)
}
