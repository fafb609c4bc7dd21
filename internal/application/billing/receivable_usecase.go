package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/concretera-erp/internal/application/dto"
	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

// ReceivableUseCase contas a receber: generación desde la entrega, pago y vencimiento.
type ReceivableUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	now      func() time.Time
}

// NewReceivableUseCase construye el caso de uso.
func NewReceivableUseCase(txRunner repository.TxRunner, repos repository.Repos) *ReceivableUseCase {
	return &ReceivableUseCase{txRunner: txRunner, repos: repos, now: time.Now}
}

// CreateFromDelivery genera la conta a receber de una entrega concluida, con vencimiento a 30 días.
// Si la entrega ya tiene una, la devuelve sin crear otra.
func (uc *ReceivableUseCase) CreateFromDelivery(ctx context.Context, orgID, deliveryID string) (*dto.ReceivableResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	var out *entity.Receivable
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		d, err := r.Deliveries.GetByID(ctx, orgID, deliveryID)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
		if d.Status != entity.DeliveryStatusEntregue {
			return domain.InvalidState("delivery_not_completed")
		}
		if out, err = r.Receivables.GetByDelivery(ctx, orgID, d.ID); err != nil || out != nil {
			return err
		}
		if d.OrderID == nil {
			return domain.ErrNotFound
		}
		order, err := r.Orders.GetByID(ctx, orgID, *d.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		amount, err := deliveryAmount(ctx, r, d, order)
		if err != nil {
			return err
		}

		now := uc.now()
		out = &entity.Receivable{
			ID:             uuid.New().String(),
			OrganizationID: orgID,
			ClientID:       order.ClientID,
			OrderID:        order.ID,
			DeliveryID:     d.ID,
			Amount:         amount,
			IssueDate:      now,
			DueDate:        entity.DueDateFor(now),
			Status:         entity.ReceivableStatusPendente,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		return r.Receivables.Create(ctx, out)
	})
	if errors.Is(err, domain.ErrDuplicate) {
		// otra petición la creó primero
		existing, gerr := uc.repos.Receivables.GetByDelivery(ctx, orgID, deliveryID)
		if gerr == nil && existing != nil {
			return ToReceivableResponse(existing), nil
		}
	}
	if err != nil {
		return nil, err
	}
	return ToReceivableResponse(out), nil
}

// MarkPaid registra el pago. Una conta ya paga no se vuelve a marcar.
func (uc *ReceivableUseCase) MarkPaid(ctx context.Context, orgID, id string, in dto.PayReceivableRequest) (*dto.ReceivableResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	if in.PaymentMethod == "" {
		return nil, domain.Validation("payment_method_required")
	}
	var out *entity.Receivable
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		rec, err := r.Receivables.GetForUpdate(ctx, orgID, id)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		if rec.Status == entity.ReceivableStatusPago {
			return domain.InvalidState("receivable_already_paid")
		}
		now := uc.now()
		rec.Status = entity.ReceivableStatusPago
		rec.PaidAt = &now
		rec.PaymentMethod = in.PaymentMethod
		rec.UpdatedAt = now
		out = rec
		return r.Receivables.Update(ctx, rec)
	})
	if err != nil {
		return nil, err
	}
	return ToReceivableResponse(out), nil
}

// RefreshOverdue marca como vencido todo lo pendente con vencimiento anterior a ahora.
func (uc *ReceivableUseCase) RefreshOverdue(ctx context.Context, orgID string) (*dto.RefreshOverdueResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	n, err := uc.repos.Receivables.MarkOverdue(ctx, orgID, uc.now())
	if err != nil {
		return nil, err
	}
	return &dto.RefreshOverdueResponse{Updated: n}, nil
}

// GetByID obtiene una conta a receber.
func (uc *ReceivableUseCase) GetByID(ctx context.Context, orgID, id string) (*dto.ReceivableResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	rec, err := uc.repos.Receivables.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return ToReceivableResponse(rec), nil
}

// List lista contas a receber por fecha de emisión.
func (uc *ReceivableUseCase) List(ctx context.Context, orgID string, f repository.ListFilter) (*dto.ReceivableListResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	list, err := uc.repos.Receivables.List(ctx, orgID, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReceivableResponse, 0, len(list))
	for _, rec := range list {
		out = append(out, *ToReceivableResponse(rec))
	}
	return &dto.ReceivableListResponse{Items: out, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset}}, nil
}

// ToReceivableResponse convierte una conta a receber en DTO.
func ToReceivableResponse(r *entity.Receivable) *dto.ReceivableResponse {
	return &dto.ReceivableResponse{
		ID:            r.ID,
		ClientID:      r.ClientID,
		OrderID:       r.OrderID,
		DeliveryID:    r.DeliveryID,
		Amount:        r.Amount,
		IssueDate:     r.IssueDate,
		DueDate:       r.DueDate,
		Status:        r.Status,
		PaidAt:        r.PaidAt,
		PaymentMethod: r.PaymentMethod,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
