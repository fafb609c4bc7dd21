// Package billing implementa las contas a receber y la NF-e simulada.
package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

// deliveryAmount valor cobrable de una entrega: volumen transportado × precio unitario del ítem del
// pedido con el mismo producto de la OP. Sin OP o sin ítem coincidente se usa el total del pedido.
func deliveryAmount(ctx context.Context, r repository.Repos, d *entity.Delivery, order *entity.Order) (decimal.Decimal, error) {
	if d.ProductionOrderID == nil {
		return order.TotalValue, nil
	}
	po, err := r.ProductionOrders.GetByID(ctx, d.OrganizationID, *d.ProductionOrderID)
	if err != nil {
		return decimal.Zero, err
	}
	if po == nil {
		return order.TotalValue, nil
	}
	items, err := r.Orders.ListItems(ctx, d.OrganizationID, order.ID)
	if err != nil {
		return decimal.Zero, err
	}
	for _, it := range items {
		if it.ProductID == po.ProductID {
			return d.VolumeM3.Mul(it.UnitPrice), nil
		}
	}
	return order.TotalValue, nil
}
