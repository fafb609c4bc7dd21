package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest ítem de un pedido creado directamente (sin orçamento).
type OrderItemRequest struct {
	ProductID  string          `json:"product_id" validate:"required"`
	QuantityM3 decimal.Decimal `json:"quantity_m3"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	ClientID string             `json:"client_id" validate:"required"`
	Items    []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderItemResponse ítem de pedido.
type OrderItemResponse struct {
	ID         string          `json:"id"`
	Position   int             `json:"position"`
	ProductID  string          `json:"product_id"`
	QuantityM3 decimal.Decimal `json:"quantity_m3"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// OrderResponse pedido con ítems y, tras em_producao, sus OPs.
type OrderResponse struct {
	ID               string                    `json:"id"`
	ClientID         string                    `json:"client_id"`
	BudgetID         string                    `json:"budget_id,omitempty"`
	TotalValue       decimal.Decimal           `json:"total_value"`
	Status           string                    `json:"status"`
	CreatedBy        string                    `json:"created_by"`
	CreatedAt        time.Time                 `json:"created_at"`
	UpdatedAt        time.Time                 `json:"updated_at"`
	Items            []OrderItemResponse       `json:"items,omitempty"`
	ProductionOrders []ProductionOrderResponse `json:"production_orders,omitempty"`
}

// OrderListResponse lista paginada de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
