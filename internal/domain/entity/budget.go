package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del orçamento multi-ítem.
const (
	BudgetStatusRascunho  = "rascunho"
	BudgetStatusEnviado   = "enviado"
	BudgetStatusAprovado  = "aprovado"
	BudgetStatusCancelado = "cancelado"
)

// ValidBudgetStatus indica si s es un estado de Budget conocido.
func ValidBudgetStatus(s string) bool {
	switch s {
	case BudgetStatusRascunho, BudgetStatusEnviado, BudgetStatusAprovado, BudgetStatusCancelado:
		return true
	}
	return false
}

// Budget orçamento de varios ítems para un cliente. Los totales son la suma de sus ítems.
type Budget struct {
	ID             string          `db:"id"`
	OrganizationID string          `db:"organization_id"`
	ClientID       string          `db:"cliente_id"`
	TotalValue     decimal.Decimal `db:"valor_total"`
	TotalCost      decimal.Decimal `db:"custo_total"`
	TotalProfit    decimal.Decimal `db:"lucro_total"`
	Status         string          `db:"status"`
	Notes          string          `db:"observacoes"`
	CreatedBy      string          `db:"created_by"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// BudgetItem foto inmutable del precio/costo del producto al momento de crear el orçamento.
type BudgetItem struct {
	ID             string          `db:"id"`
	OrganizationID string          `db:"organization_id"`
	BudgetID       string          `db:"orcamento_id"`
	ProductID      string          `db:"produto_id"`
	Position       int             `db:"posicao"`
	QuantityM3     decimal.Decimal `db:"quantidade_m3"`
	UnitPrice      decimal.Decimal `db:"preco_unitario"`
	UnitCost       decimal.Decimal `db:"custo_unitario"`
	Subtotal       decimal.Decimal `db:"subtotal"`
	CostSubtotal   decimal.Decimal `db:"custo_subtotal"`
	ItemProfit     decimal.Decimal `db:"lucro_item"`
}
