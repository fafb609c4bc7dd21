// Package logistics implementa el ciclo de vida de las entregas.
package logistics

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/concretera-erp/internal/application/dto"
	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

// ReceivableCreator genera la conta a receber de una entrega concluida (billing.ReceivableUseCase).
type ReceivableCreator interface {
	CreateFromDelivery(ctx context.Context, orgID, deliveryID string) (*dto.ReceivableResponse, error)
}

// DeliveryUseCase casos de uso de entregas.
type DeliveryUseCase struct {
	txRunner    repository.TxRunner
	repos       repository.Repos
	receivables ReceivableCreator
	log         zerolog.Logger
}

// NewDeliveryUseCase construye el caso de uso. receivables puede ser nil (no se generan cobros).
func NewDeliveryUseCase(txRunner repository.TxRunner, repos repository.Repos, receivables ReceivableCreator, log zerolog.Logger) *DeliveryUseCase {
	return &DeliveryUseCase{txRunner: txRunner, repos: repos, receivables: receivables, log: log}
}

// Create programa la entrega de una OP finalizada. El cliente sale del pedido de la OP y el
// volumen, si no se envía, es la cantidad producida.
func (uc *DeliveryUseCase) Create(ctx context.Context, orgID string, in dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	if in.VolumeM3 != nil && !in.VolumeM3.IsPositive() {
		return nil, domain.Validation("volume_must_be_positive")
	}

	var out *entity.Delivery
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		po, err := r.ProductionOrders.GetByID(ctx, orgID, in.ProductionOrderID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status != entity.ProductionStatusFinalizado {
			return domain.InvalidState("production_not_finished")
		}
		order, err := r.Orders.GetByID(ctx, orgID, po.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if in.TruckID != "" {
			t, err := r.Trucks.GetByID(ctx, orgID, in.TruckID)
			if err != nil {
				return err
			}
			if t == nil {
				return domain.ErrNotFound
			}
		}
		if in.DriverID != "" {
			d, err := r.Drivers.GetByID(ctx, orgID, in.DriverID)
			if err != nil {
				return err
			}
			if d == nil {
				return domain.ErrNotFound
			}
		}

		volume := po.QuantityM3
		if in.VolumeM3 != nil {
			volume = *in.VolumeM3
		}
		now := time.Now()
		out = &entity.Delivery{
			ID:                uuid.New().String(),
			OrganizationID:    orgID,
			ProductionOrderID: entity.Ref(po.ID),
			OrderID:           entity.Ref(order.ID),
			ClientID:          order.ClientID,
			TruckID:           entity.Ref(in.TruckID),
			DriverID:          entity.Ref(in.DriverID),
			VolumeM3:          volume,
			Status:            entity.DeliveryStatusAgendada,
			ScheduledFor:      in.ScheduledFor,
			Notes:             strings.TrimSpace(in.Notes),
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		return r.Deliveries.Create(ctx, out)
	})
	if err != nil {
		return nil, err
	}
	return ToDeliveryResponse(out, ""), nil
}

// UpdateStatus cambia el estado de la entrega.
// em_transporte marca la salida; entregue marca la llegada, guarda comprobante y ubicación, y es
// terminal. Tras confirmar entregue se genera la conta a receber: si falla se registra en el log
// y la entrega sigue concluida.
func (uc *DeliveryUseCase) UpdateStatus(ctx context.Context, orgID, id string, in dto.UpdateDeliveryStatusRequest) (*dto.DeliveryResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	status := entity.NormalizeDeliveryStatus(strings.ToLower(strings.TrimSpace(in.Status)))
	if status == "" {
		return nil, domain.Validation("invalid_status")
	}

	var out *entity.Delivery
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		d, err := r.Deliveries.GetForUpdate(ctx, orgID, id)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
		if d.Status == entity.DeliveryStatusEntregue {
			return domain.InvalidState("delivery_already_completed")
		}
		now := time.Now()
		switch status {
		case entity.DeliveryStatusEmTransporte:
			d.DepartedAt = &now
		case entity.DeliveryStatusEntregue:
			d.DeliveredAt = &now
			d.ProofURL = in.ProofURL
			d.Latitude = in.Latitude
			d.Longitude = in.Longitude
		}
		d.Status = status
		d.UpdatedAt = now
		out = d
		return r.Deliveries.Update(ctx, d)
	})
	if err != nil {
		return nil, err
	}

	receivableID := ""
	if out.Status == entity.DeliveryStatusEntregue && uc.receivables != nil {
		rec, err := uc.receivables.CreateFromDelivery(ctx, orgID, out.ID)
		if err != nil {
			uc.log.Warn().Err(err).
				Str("organization_id", orgID).
				Str("delivery_id", out.ID).
				Msg("entrega concluida sin conta a receber")
		} else {
			receivableID = rec.ID
		}
	}
	return ToDeliveryResponse(out, receivableID), nil
}

// GetByID obtiene una entrega.
func (uc *DeliveryUseCase) GetByID(ctx context.Context, orgID, id string) (*dto.DeliveryResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	d, err := uc.repos.Deliveries.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	receivableID := ""
	if d.Status == entity.DeliveryStatusEntregue {
		rec, err := uc.repos.Receivables.GetByDelivery(ctx, orgID, d.ID)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			receivableID = rec.ID
		}
	}
	return ToDeliveryResponse(d, receivableID), nil
}

// List lista entregas, más recientes primero. El filtro de estado acepta los alias.
func (uc *DeliveryUseCase) List(ctx context.Context, orgID string, f repository.ListFilter) (*dto.DeliveryListResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	if f.Status != "" {
		if f.Status = entity.NormalizeDeliveryStatus(f.Status); f.Status == "" {
			return nil, domain.Validation("invalid_status")
		}
	}
	list, err := uc.repos.Deliveries.List(ctx, orgID, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DeliveryResponse, 0, len(list))
	for _, d := range list {
		out = append(out, *ToDeliveryResponse(d, ""))
	}
	return &dto.DeliveryListResponse{Items: out, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset}}, nil
}

// ToDeliveryResponse convierte una entrega en DTO.
func ToDeliveryResponse(d *entity.Delivery, receivableID string) *dto.DeliveryResponse {
	return &dto.DeliveryResponse{
		ID:                d.ID,
		ProductionOrderID: entity.Deref(d.ProductionOrderID),
		QuoteID:           entity.Deref(d.QuoteID),
		OrderID:           entity.Deref(d.OrderID),
		ClientID:          d.ClientID,
		TruckID:           entity.Deref(d.TruckID),
		DriverID:          entity.Deref(d.DriverID),
		VolumeM3:          d.VolumeM3,
		Status:            d.Status,
		ScheduledFor:      d.ScheduledFor,
		DepartedAt:        d.DepartedAt,
		DeliveredAt:       d.DeliveredAt,
		ProofURL:          d.ProofURL,
		Latitude:          d.Latitude,
		Longitude:         d.Longitude,
		Notes:             d.Notes,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
		ReceivableID:      receivableID,
	}
}
