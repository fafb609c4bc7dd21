// Package orders implementa los pedidos: alta directa, transiciones y el fan-out a OPs.
package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/concretera-erp/internal/application/dto"
	"github.com/jhoicas/concretera-erp/internal/application/production"
	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

// OrderUseCase casos de uso de pedidos.
type OrderUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner repository.TxRunner, repos repository.Repos) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, repos: repos}
}

// Create registra un pedido sin orçamento. Pedido e ítems se confirman juntos.
func (uc *OrderUseCase) Create(ctx context.Context, orgID, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, domain.Validation("items_required")
	}
	for _, it := range in.Items {
		if !it.QuantityM3.IsPositive() {
			return nil, domain.Validation("quantity_must_be_positive")
		}
		if it.UnitPrice.IsNegative() {
			return nil, domain.Validation("negative_unit_price")
		}
	}

	now := time.Now()
	order := &entity.Order{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		ClientID:       in.ClientID,
		Status:         entity.OrderStatusPendente,
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	items := make([]*entity.OrderItem, 0, len(in.Items))
	total := decimal.Zero
	for i, it := range in.Items {
		sub := it.QuantityM3.Mul(it.UnitPrice)
		total = total.Add(sub)
		items = append(items, &entity.OrderItem{
			ID:             uuid.New().String(),
			OrganizationID: orgID,
			OrderID:        order.ID,
			ProductID:      it.ProductID,
			Position:       i + 1,
			QuantityM3:     it.QuantityM3,
			UnitPrice:      it.UnitPrice,
			Subtotal:       sub,
		})
	}
	order.TotalValue = total

	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		client, err := r.Clients.GetByID(ctx, orgID, in.ClientID)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.ErrNotFound
		}
		for _, it := range items {
			p, err := r.Products.GetByID(ctx, orgID, it.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.ErrNotFound
			}
		}
		return CreateWithItems(ctx, r, order, items)
	})
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order, items, nil), nil
}

// CreateWithItems persiste pedido e ítems con los repos de la transacción en curso.
// Lo usan el alta directa y la conversión de orçamentos.
func CreateWithItems(ctx context.Context, r repository.Repos, order *entity.Order, items []*entity.OrderItem) error {
	if err := r.Orders.Create(ctx, order); err != nil {
		return err
	}
	for _, it := range items {
		if err := r.Orders.CreateItem(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

// UpdateStatus cambia el estado del pedido. Al pasar a em_producao crea una OP aguardando por
// ítem, solo si el pedido todavía no tiene OPs: repetir la transición no duplica nada.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, orgID, id, status string) (*dto.OrderResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	if !entity.ValidOrderStatus(status) {
		return nil, domain.Validation("invalid_status")
	}

	var (
		out   *entity.Order
		items []*entity.OrderItem
		pos   []*entity.ProductionOrder
	)
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		o, err := r.Orders.GetForUpdate(ctx, orgID, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		o.Status = status
		o.UpdatedAt = now
		if err := r.Orders.Update(ctx, o); err != nil {
			return err
		}
		out = o

		if items, err = r.Orders.ListItems(ctx, orgID, o.ID); err != nil {
			return err
		}
		if pos, err = r.ProductionOrders.ListByOrder(ctx, orgID, o.ID); err != nil {
			return err
		}
		if status != entity.OrderStatusEmProducao || len(pos) > 0 {
			return nil
		}
		for _, it := range items {
			po := &entity.ProductionOrder{
				ID:             uuid.New().String(),
				OrganizationID: orgID,
				OrderID:        o.ID,
				ProductID:      it.ProductID,
				QuantityM3:     it.QuantityM3,
				Status:         entity.ProductionStatusAguardando,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if err := r.ProductionOrders.Create(ctx, po); err != nil {
				return err
			}
			pos = append(pos, po)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(out, items, pos), nil
}

// GetByID pedido con ítems y OPs.
func (uc *OrderUseCase) GetByID(ctx context.Context, orgID, id string) (*dto.OrderResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	o, err := uc.repos.Orders.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.repos.Orders.ListItems(ctx, orgID, o.ID)
	if err != nil {
		return nil, err
	}
	pos, err := uc.repos.ProductionOrders.ListByOrder(ctx, orgID, o.ID)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(o, items, pos), nil
}

// List lista pedidos (sin ítems), más recientes primero.
func (uc *OrderUseCase) List(ctx context.Context, orgID string, f repository.ListFilter) (*dto.OrderListResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	list, err := uc.repos.Orders.List(ctx, orgID, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *ToOrderResponse(o, nil, nil))
	}
	return &dto.OrderListResponse{Items: out, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset}}, nil
}

// ToOrderResponse convierte un pedido en DTO.
func ToOrderResponse(o *entity.Order, items []*entity.OrderItem, pos []*entity.ProductionOrder) *dto.OrderResponse {
	res := &dto.OrderResponse{
		ID:         o.ID,
		ClientID:   o.ClientID,
		BudgetID:   entity.Deref(o.BudgetID),
		TotalValue: o.TotalValue,
		Status:     o.Status,
		CreatedBy:  o.CreatedBy,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	for _, it := range items {
		res.Items = append(res.Items, dto.OrderItemResponse{
			ID:         it.ID,
			Position:   it.Position,
			ProductID:  it.ProductID,
			QuantityM3: it.QuantityM3,
			UnitPrice:  it.UnitPrice,
			Subtotal:   it.Subtotal,
		})
	}
	for _, po := range pos {
		res.ProductionOrders = append(res.ProductionOrders, *production.ToProductionOrderResponse(po, nil))
	}
	return res
}
