package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuotePreviewRequest body para POST /api/pricing/quote-preview (no persiste nada).
type QuotePreviewRequest struct {
	Length     decimal.Decimal `json:"length"`
	Width      decimal.Decimal `json:"width"`
	Height     decimal.Decimal `json:"height"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	CostM3     decimal.Decimal `json:"cost_m3"`
	DistanceKm decimal.Decimal `json:"distance_km"`
	KmRate     decimal.Decimal `json:"km_rate"`
}

// QuotePreviewResponse valores calculados sin redondeo.
type QuotePreviewResponse struct {
	VolumeM3        decimal.Decimal `json:"volume_m3"`
	FreightValue    decimal.Decimal `json:"freight_value"`
	Total           decimal.Decimal `json:"total"`
	EstimatedProfit decimal.Decimal `json:"estimated_profit"`
}

// CreateQuoteRequest body para POST /api/quotes.
// UnitPrice es opcional: si no se envía se usa el preço_m3 del producto.
type CreateQuoteRequest struct {
	ClientID   string           `json:"client_id" validate:"required"`
	ProductID  string           `json:"product_id" validate:"required"`
	Length     decimal.Decimal  `json:"length"`
	Width      decimal.Decimal  `json:"width"`
	Height     decimal.Decimal  `json:"height"`
	UnitPrice  *decimal.Decimal `json:"unit_price"`
	DistanceKm decimal.Decimal  `json:"distance_km"`
	KmRate     decimal.Decimal  `json:"km_rate"`
}

// UpdateQuoteStatusRequest body para PATCH /api/quotes/:id/status.
type UpdateQuoteStatusRequest struct {
	Status     string `json:"status" validate:"required,oneof=pendente negociacao fechado perdido"`
	LossReason string `json:"loss_reason"`
}

// QuoteResponse salida de un orçamento legado.
type QuoteResponse struct {
	ID              string          `json:"id"`
	ClientID        string          `json:"client_id"`
	ProductID       string          `json:"product_id"`
	Length          decimal.Decimal `json:"length"`
	Width           decimal.Decimal `json:"width"`
	Height          decimal.Decimal `json:"height"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	CostM3          decimal.Decimal `json:"cost_m3"`
	DistanceKm      decimal.Decimal `json:"distance_km"`
	KmRate          decimal.Decimal `json:"km_rate"`
	VolumeM3        decimal.Decimal `json:"volume_m3"`
	FreightValue    decimal.Decimal `json:"freight_value"`
	Total           decimal.Decimal `json:"total"`
	EstimatedProfit decimal.Decimal `json:"estimated_profit"`
	Status          string          `json:"status"`
	LossReason      string          `json:"loss_reason,omitempty"`
	CreatedBy       string          `json:"created_by"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	// DeliveryID entrega generada al cerrar (fechado); vacío en otros estados.
	DeliveryID string `json:"delivery_id,omitempty"`
}

// QuoteListResponse lista paginada de orçamentos legados.
type QuoteListResponse struct {
	Items []QuoteResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// BudgetItemRequest un ítem del orçamento. Precio y costo se congelan al crear.
type BudgetItemRequest struct {
	ProductID  string          `json:"product_id" validate:"required"`
	QuantityM3 decimal.Decimal `json:"quantity_m3"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
}

// CreateBudgetRequest body para POST /api/budgets.
type CreateBudgetRequest struct {
	ClientID string              `json:"client_id" validate:"required"`
	Notes    string              `json:"notes"`
	Items    []BudgetItemRequest `json:"items" validate:"required,min=1,dive"`
}

// BudgetItemResponse ítem con los valores derivados.
type BudgetItemResponse struct {
	ID           string          `json:"id"`
	Position     int             `json:"position"`
	ProductID    string          `json:"product_id"`
	QuantityM3   decimal.Decimal `json:"quantity_m3"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	CostSubtotal decimal.Decimal `json:"cost_subtotal"`
	ItemProfit   decimal.Decimal `json:"item_profit"`
}

// BudgetResponse orçamento con ítems (Items vacío en listados).
type BudgetResponse struct {
	ID          string               `json:"id"`
	ClientID    string               `json:"client_id"`
	TotalValue  decimal.Decimal      `json:"total_value"`
	TotalCost   decimal.Decimal      `json:"total_cost"`
	TotalProfit decimal.Decimal      `json:"total_profit"`
	Status      string               `json:"status"`
	Notes       string               `json:"notes,omitempty"`
	CreatedBy   string               `json:"created_by"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	Items       []BudgetItemResponse `json:"items,omitempty"`
}

// BudgetListResponse lista paginada de orçamentos.
type BudgetListResponse struct {
	Items []BudgetResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
