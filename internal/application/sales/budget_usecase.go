package sales

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/concretera-erp/internal/application/dto"
	"github.com/jhoicas/concretera-erp/internal/application/orders"
	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/pricing"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

// BudgetUseCase orçamentos multi-ítem y su conversión en pedido.
type BudgetUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
}

// NewBudgetUseCase construye el caso de uso.
func NewBudgetUseCase(txRunner repository.TxRunner, repos repository.Repos) *BudgetUseCase {
	return &BudgetUseCase{txRunner: txRunner, repos: repos}
}

// Create calcula totales e ítems y los persiste juntos en estado rascunho.
func (uc *BudgetUseCase) Create(ctx context.Context, orgID, userID string, in dto.CreateBudgetRequest) (*dto.BudgetResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	lines := make([]pricing.LineInput, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, pricing.LineInput{QuantityM3: it.QuantityM3, UnitPrice: it.UnitPrice, UnitCost: it.UnitCost})
	}
	calc, err := pricing.CalculateBudget(lines)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	b := &entity.Budget{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		ClientID:       in.ClientID,
		TotalValue:     calc.TotalValue,
		TotalCost:      calc.TotalCost,
		TotalProfit:    calc.TotalProfit,
		Status:         entity.BudgetStatusRascunho,
		Notes:          in.Notes,
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	items := make([]*entity.BudgetItem, 0, len(in.Items))
	for i, it := range in.Items {
		line := calc.Lines[i]
		items = append(items, &entity.BudgetItem{
			ID:             uuid.New().String(),
			OrganizationID: orgID,
			BudgetID:       b.ID,
			ProductID:      it.ProductID,
			Position:       i + 1,
			QuantityM3:     it.QuantityM3,
			UnitPrice:      it.UnitPrice,
			UnitCost:       it.UnitCost,
			Subtotal:       line.Subtotal,
			CostSubtotal:   line.CostSubtotal,
			ItemProfit:     line.Profit,
		})
	}

	err = uc.txRunner.Run(ctx, func(r repository.Repos) error {
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
		if err := r.Budgets.Create(ctx, b); err != nil {
			return err
		}
		for _, it := range items {
			if err := r.Budgets.CreateItem(ctx, it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toBudgetResponse(b, items), nil
}

// UpdateStatus cambia el estado; cualquier transición entre estados válidos está permitida.
func (uc *BudgetUseCase) UpdateStatus(ctx context.Context, orgID, id, status string) (*dto.BudgetResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	if !entity.ValidBudgetStatus(status) {
		return nil, domain.Validation("invalid_status")
	}
	var out *entity.Budget
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		b, err := r.Budgets.GetForUpdate(ctx, orgID, id)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		b.Status = status
		b.UpdatedAt = time.Now()
		out = b
		return r.Budgets.Update(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return toBudgetResponse(out, nil), nil
}

// ConvertToOrder crea el pedido de un orçamento aprobado copiando sus ítems.
// El orçamento queda bloqueado durante la conversión y un segundo intento devuelve conflicto:
// nunca existen dos pedidos para el mismo orçamento.
func (uc *BudgetUseCase) ConvertToOrder(ctx context.Context, orgID, userID, budgetID string) (*dto.OrderResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	var (
		order *entity.Order
		items []*entity.OrderItem
	)
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		b, err := r.Budgets.GetForUpdate(ctx, orgID, budgetID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if b.Status != entity.BudgetStatusAprovado {
			return domain.InvalidState("must_be_approved")
		}
		existing, err := r.Orders.GetByBudget(ctx, orgID, b.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.Conflict("budget_already_converted")
		}
		budgetItems, err := r.Budgets.ListItems(ctx, orgID, b.ID)
		if err != nil {
			return err
		}

		now := time.Now()
		order = &entity.Order{
			ID:             uuid.New().String(),
			OrganizationID: orgID,
			ClientID:       b.ClientID,
			BudgetID:       entity.Ref(b.ID),
			TotalValue:     b.TotalValue,
			Status:         entity.OrderStatusPendente,
			CreatedBy:      userID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		items = make([]*entity.OrderItem, 0, len(budgetItems))
		for _, bi := range budgetItems {
			items = append(items, &entity.OrderItem{
				ID:             uuid.New().String(),
				OrganizationID: orgID,
				OrderID:        order.ID,
				ProductID:      bi.ProductID,
				Position:       bi.Position,
				QuantityM3:     bi.QuantityM3,
				UnitPrice:      bi.UnitPrice,
				Subtotal:       bi.Subtotal,
			})
		}
		return orders.CreateWithItems(ctx, r, order, items)
	})
	if err != nil {
		return nil, err
	}
	return orders.ToOrderResponse(order, items, nil), nil
}

// GetByID orçamento con ítems.
func (uc *BudgetUseCase) GetByID(ctx context.Context, orgID, id string) (*dto.BudgetResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	b, err := uc.repos.Budgets.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.repos.Budgets.ListItems(ctx, orgID, b.ID)
	if err != nil {
		return nil, err
	}
	return toBudgetResponse(b, items), nil
}

// List lista orçamentos, más recientes primero.
func (uc *BudgetUseCase) List(ctx context.Context, orgID string, f repository.ListFilter) (*dto.BudgetListResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	list, err := uc.repos.Budgets.List(ctx, orgID, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BudgetResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *toBudgetResponse(b, nil))
	}
	return &dto.BudgetListResponse{Items: out, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset}}, nil
}

func toBudgetResponse(b *entity.Budget, items []*entity.BudgetItem) *dto.BudgetResponse {
	res := &dto.BudgetResponse{
		ID:          b.ID,
		ClientID:    b.ClientID,
		TotalValue:  b.TotalValue,
		TotalCost:   b.TotalCost,
		TotalProfit: b.TotalProfit,
		Status:      b.Status,
		Notes:       b.Notes,
		CreatedBy:   b.CreatedBy,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	for _, it := range items {
		res.Items = append(res.Items, dto.BudgetItemResponse{
			ID:           it.ID,
			Position:     it.Position,
			ProductID:    it.ProductID,
			QuantityM3:   it.QuantityM3,
			UnitPrice:    it.UnitPrice,
			UnitCost:     it.UnitCost,
			Subtotal:     it.Subtotal,
			CostSubtotal: it.CostSubtotal,
			ItemProfit:   it.ItemProfit,
		})
	}
	return res
}
