package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la cuenta por cobrar.
const (
	ReceivableStatusPendente = "pendente"
	ReceivableStatusPago     = "pago"
	ReceivableStatusVencido  = "vencido"
)

// ReceivableDueDays plazo fijo de vencimiento (neto 30) desde la emisión.
const ReceivableDueDays = 30

// Receivable cuenta por cobrar derivada de una entrega concluida.
type Receivable struct {
	ID             string          `db:"id"`
	OrganizationID string          `db:"organization_id"`
	ClientID       string          `db:"cliente_id"`
	OrderID        string          `db:"pedido_id"`
	DeliveryID     string          `db:"entrega_id"`
	Amount         decimal.Decimal `db:"valor"`
	IssueDate      time.Time       `db:"data_emissao"`
	DueDate        time.Time       `db:"data_vencimento"`
	Status         string          `db:"status"`
	PaidAt         *time.Time      `db:"data_pagamento"`
	PaymentMethod  string          `db:"forma_pagamento"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// DueDateFor aplica la regla neto 30.
func DueDateFor(issue time.Time) time.Time {
	return issue.AddDate(0, 0, ReceivableDueDays)
}
