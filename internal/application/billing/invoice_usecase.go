package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/concretera-erp/internal/application/dto"
	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/pricing"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

// InvoiceUseCase NF-e simulada: numeración secuencial e impuestos fijos, sin XML ni SEFAZ.
type InvoiceUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	now      func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(txRunner repository.TxRunner, repos repository.Repos) *InvoiceUseCase {
	return &InvoiceUseCase{txRunner: txRunner, repos: repos, now: time.Now}
}

// Issue emite la nota de una entrega concluida. Solo puede haber una nota emitida por entrega;
// el número sale de la secuencia de la organización dentro de la misma transacción.
func (uc *InvoiceUseCase) Issue(ctx context.Context, orgID, userID string, in dto.IssueInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	if in.DeliveryID == "" {
		return nil, domain.Validation("delivery_required")
	}

	var out *entity.Invoice
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		d, err := r.Deliveries.GetForUpdate(ctx, orgID, in.DeliveryID)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
		if d.Status != entity.DeliveryStatusEntregue {
			return domain.InvalidState("delivery_not_completed")
		}
		if d.OrderID == nil {
			return domain.Rule("delivery_without_order")
		}
		active, err := r.Invoices.GetActiveByDelivery(ctx, orgID, d.ID)
		if err != nil {
			return err
		}
		if active != nil {
			return domain.Conflict("invoice_already_issued")
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
		number, err := r.Invoices.NextNumber(ctx, orgID)
		if err != nil {
			return err
		}

		taxes := pricing.CalculateInvoiceTaxes(amount)
		now := uc.now()
		out = &entity.Invoice{
			ID:             uuid.New().String(),
			OrganizationID: orgID,
			Number:         number,
			DeliveryID:     d.ID,
			OrderID:        order.ID,
			ClientID:       order.ClientID,
			TotalValue:     amount,
			ICMS:           taxes.ICMS,
			PIS:            taxes.PIS,
			COFINS:         taxes.COFINS,
			ISS:            taxes.ISS,
			TotalTaxes:     taxes.Total,
			Status:         entity.InvoiceStatusEmitida,
			IssuedAt:       now,
			CreatedBy:      userID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		return r.Invoices.Create(ctx, out)
	})
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(out), nil
}

// Cancel anula una nota emitida. El número no se reutiliza.
func (uc *InvoiceUseCase) Cancel(ctx context.Context, orgID, id string, in dto.CancelInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, domain.Validation("cancel_reason_required")
	}
	var out *entity.Invoice
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		inv, err := r.Invoices.GetForUpdate(ctx, orgID, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.Status != entity.InvoiceStatusEmitida {
			return domain.InvalidState("invoice_not_active")
		}
		now := uc.now()
		inv.Status = entity.InvoiceStatusCancelada
		inv.CancelledAt = &now
		inv.CancelReason = reason
		inv.UpdatedAt = now
		out = inv
		return r.Invoices.Update(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(out), nil
}

// GetByID obtiene una nota.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, orgID, id string) (*dto.InvoiceResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	inv, err := uc.repos.Invoices.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return ToInvoiceResponse(inv), nil
}

// List lista notas por fecha de emisión, más recientes primero.
func (uc *InvoiceUseCase) List(ctx context.Context, orgID string, f repository.ListFilter) (*dto.InvoiceListResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	list, err := uc.repos.Invoices.List(ctx, orgID, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, *ToInvoiceResponse(inv))
	}
	return &dto.InvoiceListResponse{Items: out, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset}}, nil
}

// ToInvoiceResponse convierte una nota en DTO.
func ToInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:           inv.ID,
		Number:       inv.Number,
		DeliveryID:   inv.DeliveryID,
		OrderID:      inv.OrderID,
		ClientID:     inv.ClientID,
		TotalValue:   inv.TotalValue,
		ICMS:         inv.ICMS,
		PIS:          inv.PIS,
		COFINS:       inv.COFINS,
		ISS:          inv.ISS,
		TotalTaxes:   inv.TotalTaxes,
		Status:       inv.Status,
		IssuedAt:     inv.IssuedAt,
		CancelledAt:  inv.CancelledAt,
		CancelReason: inv.CancelReason,
		CreatedBy:    inv.CreatedBy,
	}
}
