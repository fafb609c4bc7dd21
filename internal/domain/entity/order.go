package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pedido operativo.
const (
	OrderStatusPendente   = "pendente"
	OrderStatusEmProducao = "em_producao"
	OrderStatusPronto     = "pronto"
	OrderStatusEntregue   = "entregue"
	OrderStatusCancelado  = "cancelado"
)

// ValidOrderStatus indica si s es un estado de Order conocido.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPendente, OrderStatusEmProducao, OrderStatusPronto, OrderStatusEntregue, OrderStatusCancelado:
		return true
	}
	return false
}

// Order pedido creado desde un Budget aprobado (BudgetID) o directamente (BudgetID nil).
type Order struct {
	ID             string          `db:"id"`
	OrganizationID string          `db:"organization_id"`
	ClientID       string          `db:"cliente_id"`
	BudgetID       *string         `db:"orcamento_id"`
	TotalValue     decimal.Decimal `db:"valor_total"`
	Status         string          `db:"status"`
	CreatedBy      string          `db:"created_by"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// OrderItem espejo de BudgetItem dentro del pedido.
type OrderItem struct {
	ID             string          `db:"id"`
	OrganizationID string          `db:"organization_id"`
	OrderID        string          `db:"pedido_id"`
	ProductID      string          `db:"produto_id"`
	Position       int             `db:"posicao"`
	QuantityM3     decimal.Decimal `db:"quantidade_m3"`
	UnitPrice      decimal.Decimal `db:"preco_unitario"`
	Subtotal       decimal.Decimal `db:"subtotal"`
}
