package production

import (
	"context"
	"time"

	"github.com/jhoicas/concretera-erp/internal/application/dto"
	"github.com/jhoicas/concretera-erp/internal/application/inventory"
	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

// ProductionUseCase transiciones de las OPs. Finalizar verifica y descuenta el traço en una sola
// transacción: si algo falla, ni el estado ni el estoque cambian.
type ProductionUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
}

// NewProductionUseCase construye el caso de uso.
func NewProductionUseCase(txRunner repository.TxRunner, repos repository.Repos) *ProductionUseCase {
	return &ProductionUseCase{txRunner: txRunner, repos: repos}
}

// UpdateStatus cambia el estado de una OP.
//   - produzindo marca iniciado_em (la primera vez).
//   - finalizado exige traço y estoque suficiente en todos los ingredientes; aplica las baixas.
//   - una OP finalizada no admite más transiciones.
func (uc *ProductionUseCase) UpdateStatus(ctx context.Context, orgID, userID, id, status string) (*dto.ProductionOrderResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	if !entity.ValidProductionStatus(status) {
		return nil, domain.Validation("invalid_status")
	}

	var (
		out        *entity.ProductionOrder
		deductions []*entity.InventoryMovement
	)
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		po, err := r.ProductionOrders.GetForUpdate(ctx, orgID, id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status == entity.ProductionStatusFinalizado {
			return domain.InvalidState("production_already_finished")
		}

		now := time.Now()
		switch status {
		case entity.ProductionStatusProduzindo:
			if po.StartedAt == nil {
				po.StartedAt = &now
			}
		case entity.ProductionStatusFinalizado:
			plan, err := PlanDeductions(ctx, r, po)
			if err != nil {
				return err
			}
			if deductions, err = ApplyDeductions(ctx, r, po, plan, userID, now); err != nil {
				return err
			}
			if po.StartedAt == nil {
				po.StartedAt = &now
			}
			po.FinishedAt = &now
		}
		po.Status = status
		po.UpdatedAt = now
		if err := r.ProductionOrders.Update(ctx, po); err != nil {
			return err
		}
		out = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToProductionOrderResponse(out, deductions), nil
}

// GetByID obtiene una OP con las baixas que generó.
func (uc *ProductionUseCase) GetByID(ctx context.Context, orgID, id string) (*dto.ProductionOrderResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	po, err := uc.repos.ProductionOrders.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	movements, err := uc.repos.Movements.ListByReference(ctx, orgID, po.ID)
	if err != nil {
		return nil, err
	}
	return ToProductionOrderResponse(po, movements), nil
}

// List lista OPs, más recientes primero.
func (uc *ProductionUseCase) List(ctx context.Context, orgID string, f repository.ListFilter) (*dto.ProductionOrderListResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	list, err := uc.repos.ProductionOrders.List(ctx, orgID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductionOrderResponse, 0, len(list))
	for _, po := range list {
		items = append(items, *ToProductionOrderResponse(po, nil))
	}
	return &dto.ProductionOrderListResponse{Items: items, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset}}, nil
}

// ToProductionOrderResponse convierte una OP (y sus baixas, si las hay) en DTO.
func ToProductionOrderResponse(po *entity.ProductionOrder, movements []*entity.InventoryMovement) *dto.ProductionOrderResponse {
	res := &dto.ProductionOrderResponse{
		ID:         po.ID,
		OrderID:    po.OrderID,
		ProductID:  po.ProductID,
		QuantityM3: po.QuantityM3,
		Status:     po.Status,
		StartedAt:  po.StartedAt,
		FinishedAt: po.FinishedAt,
		CreatedAt:  po.CreatedAt,
		UpdatedAt:  po.UpdatedAt,
	}
	for _, m := range movements {
		res.Deductions = append(res.Deductions, inventory.ToMovementResponse(m))
	}
	return res
}
