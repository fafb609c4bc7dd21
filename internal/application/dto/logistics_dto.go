package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDeliveryRequest body para POST /api/deliveries.
type CreateDeliveryRequest struct {
	ProductionOrderID string           `json:"production_order_id" validate:"required"`
	TruckID           string           `json:"truck_id"`
	DriverID          string           `json:"driver_id"`
	VolumeM3          *decimal.Decimal `json:"volume_m3"` // por defecto la cantidad de la OP
	ScheduledFor      *time.Time       `json:"scheduled_for"`
	Notes             string           `json:"notes" validate:"omitempty,max=500"`
}

// UpdateDeliveryStatusRequest body para PATCH /api/deliveries/:id/status.
// ProofURL, Latitude y Longitude solo se consideran al pasar a entregue (app del motorista).
type UpdateDeliveryStatusRequest struct {
	Status    string   `json:"status" validate:"required"`
	ProofURL  string   `json:"proof_url" validate:"omitempty,url"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
}

// DeliveryResponse salida de una entrega.
type DeliveryResponse struct {
	ID                string          `json:"id"`
	ProductionOrderID string          `json:"production_order_id,omitempty"`
	QuoteID           string          `json:"quote_id,omitempty"`
	OrderID           string          `json:"order_id,omitempty"`
	ClientID          string          `json:"client_id"`
	TruckID           string          `json:"truck_id,omitempty"`
	DriverID          string          `json:"driver_id,omitempty"`
	VolumeM3          decimal.Decimal `json:"volume_m3"`
	Status            string          `json:"status"`
	ScheduledFor      *time.Time      `json:"scheduled_for,omitempty"`
	DepartedAt        *time.Time      `json:"departed_at,omitempty"`
	DeliveredAt       *time.Time      `json:"delivered_at,omitempty"`
	ProofURL          string          `json:"proof_url,omitempty"`
	Latitude          *float64        `json:"latitude,omitempty"`
	Longitude         *float64        `json:"longitude,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	// ReceivableID conta a receber generada al concluir; vacío si no se generó.
	ReceivableID string `json:"receivable_id,omitempty"`
}

// DeliveryListResponse lista paginada de entregas.
type DeliveryListResponse struct {
	Items []DeliveryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
