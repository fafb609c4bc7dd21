// Package sales implementa el ciclo de vida de orçamentos: el legado de un solo producto (Quote)
// y el multi-ítem (Budget) con su conversión en pedido.
package sales

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

// QuoteUseCase orçamentos legados: cálculo, transiciones de estado y la entrega generada al cerrar.
type QuoteUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
}

// NewQuoteUseCase construye el caso de uso.
func NewQuoteUseCase(txRunner repository.TxRunner, repos repository.Repos) *QuoteUseCase {
	return &QuoteUseCase{txRunner: txRunner, repos: repos}
}

// Preview calcula volumen, frete, total y lucro sin persistir. Misma función que usa Create.
func (uc *QuoteUseCase) Preview(in dto.QuotePreviewRequest) (*dto.QuotePreviewResponse, error) {
	res, err := pricing.CalculateQuote(pricing.QuoteInput{
		Length:     in.Length,
		Width:      in.Width,
		Height:     in.Height,
		UnitPrice:  in.UnitPrice,
		CostM3:     in.CostM3,
		DistanceKm: in.DistanceKm,
		KmRate:     in.KmRate,
	})
	if err != nil {
		return nil, err
	}
	return &dto.QuotePreviewResponse{
		VolumeM3:        res.VolumeM3,
		FreightValue:    res.FreightValue,
		Total:           res.Total,
		EstimatedProfit: res.Profit,
	}, nil
}

// Create calcula y persiste un orçamento en estado pendente.
// El costo por m³ sale del producto; el precio unitario también, salvo que se envíe explícito.
func (uc *QuoteUseCase) Create(ctx context.Context, orgID, userID string, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	client, err := uc.repos.Clients.GetByID(ctx, orgID, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.repos.Products.GetByID(ctx, orgID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	unitPrice := product.PriceM3
	if in.UnitPrice != nil {
		unitPrice = *in.UnitPrice
	}
	res, err := pricing.CalculateQuote(pricing.QuoteInput{
		Length:     in.Length,
		Width:      in.Width,
		Height:     in.Height,
		UnitPrice:  unitPrice,
		CostM3:     product.CostM3,
		DistanceKm: in.DistanceKm,
		KmRate:     in.KmRate,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	q := &entity.Quote{
		ID:              uuid.New().String(),
		OrganizationID:  orgID,
		ClientID:        client.ID,
		ProductID:       product.ID,
		Length:          in.Length,
		Width:           in.Width,
		Height:          in.Height,
		UnitPrice:       unitPrice,
		CostM3:          product.CostM3,
		DistanceKm:      in.DistanceKm,
		KmRate:          in.KmRate,
		VolumeM3:        res.VolumeM3,
		FreightValue:    res.FreightValue,
		Total:           res.Total,
		EstimatedProfit: res.Profit,
		Status:          entity.QuoteStatusPendente,
		CreatedBy:       userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repos.Quotes.Create(ctx, q); err != nil {
		return nil, err
	}
	return toQuoteResponse(q, ""), nil
}

// UpdateStatus cambia el estado (cualquier estado a cualquier otro).
// perdido exige motivo. fechado crea, en la misma transacción, la entrega agendada del orçamento
// si todavía no existe.
func (uc *QuoteUseCase) UpdateStatus(ctx context.Context, orgID, id string, in dto.UpdateQuoteStatusRequest) (*dto.QuoteResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	if !entity.ValidQuoteStatus(in.Status) {
		return nil, domain.Validation("invalid_status")
	}
	reason := strings.TrimSpace(in.LossReason)
	if in.Status == entity.QuoteStatusPerdido && reason == "" {
		return nil, domain.Validation("loss_reason_required")
	}

	var (
		out        *entity.Quote
		deliveryID string
	)
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		q, err := r.Quotes.GetForUpdate(ctx, orgID, id)
		if err != nil {
			return err
		}
		if q == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		q.Status = in.Status
		q.LossReason = reason
		q.UpdatedAt = now
		if err := r.Quotes.Update(ctx, q); err != nil {
			return err
		}
		out = q

		if q.Status != entity.QuoteStatusFechado {
			return nil
		}
		existing, err := r.Deliveries.GetByQuote(ctx, orgID, q.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			deliveryID = existing.ID
			return nil
		}
		d := &entity.Delivery{
			ID:             uuid.New().String(),
			OrganizationID: orgID,
			QuoteID:        entity.Ref(q.ID),
			ClientID:       q.ClientID,
			VolumeM3:       q.VolumeM3,
			Status:         entity.DeliveryStatusAgendada,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := r.Deliveries.Create(ctx, d); err != nil {
			return err
		}
		deliveryID = d.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(out, deliveryID), nil
}

// GetByID obtiene un orçamento legado.
func (uc *QuoteUseCase) GetByID(ctx context.Context, orgID, id string) (*dto.QuoteResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	q, err := uc.repos.Quotes.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	deliveryID := ""
	if q.Status == entity.QuoteStatusFechado {
		d, err := uc.repos.Deliveries.GetByQuote(ctx, orgID, q.ID)
		if err != nil {
			return nil, err
		}
		if d != nil {
			deliveryID = d.ID
		}
	}
	return toQuoteResponse(q, deliveryID), nil
}

// List lista orçamentos legados, más recientes primero.
func (uc *QuoteUseCase) List(ctx context.Context, orgID string, f repository.ListFilter) (*dto.QuoteListResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	list, err := uc.repos.Quotes.List(ctx, orgID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.QuoteResponse, 0, len(list))
	for _, q := range list {
		items = append(items, *toQuoteResponse(q, ""))
	}
	return &dto.QuoteListResponse{Items: items, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset}}, nil
}

func toQuoteResponse(q *entity.Quote, deliveryID string) *dto.QuoteResponse {
	return &dto.QuoteResponse{
		ID:              q.ID,
		ClientID:        q.ClientID,
		ProductID:       q.ProductID,
		Length:          q.Length,
		Width:           q.Width,
		Height:          q.Height,
		UnitPrice:       q.UnitPrice,
		CostM3:          q.CostM3,
		DistanceKm:      q.DistanceKm,
		KmRate:          q.KmRate,
		VolumeM3:        q.VolumeM3,
		FreightValue:    q.FreightValue,
		Total:           q.Total,
		EstimatedProfit: q.EstimatedProfit,
		Status:          q.Status,
		LossReason:      q.LossReason,
		CreatedBy:       q.CreatedBy,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
		DeliveryID:      deliveryID,
	}
}
