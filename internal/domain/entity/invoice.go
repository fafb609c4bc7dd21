package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la NF-e simulada.
const (
	InvoiceStatusEmitida   = "emitida"
	InvoiceStatusCancelada = "cancelada"
)

// Invoice NF-e simulada. Number es secuencial por organización.
type Invoice struct {
	ID             string          `db:"id"`
	OrganizationID string          `db:"organization_id"`
	Number         int64           `db:"numero_nota"`
	DeliveryID     string          `db:"entrega_id"`
	OrderID        string          `db:"pedido_id"`
	ClientID       string          `db:"cliente_id"`
	TotalValue     decimal.Decimal `db:"valor_total"`
	ICMS           decimal.Decimal `db:"valor_icms"`
	PIS            decimal.Decimal `db:"valor_pis"`
	COFINS         decimal.Decimal `db:"valor_cofins"`
	ISS            decimal.Decimal `db:"valor_iss"`
	TotalTaxes     decimal.Decimal `db:"total_impostos"`
	Status         string          `db:"status"`
	IssuedAt       time.Time       `db:"emitida_em"`
	CancelledAt    *time.Time      `db:"cancelada_em"`
	CancelReason   string          `db:"motivo_cancelamento"`
	CreatedBy      string          `db:"created_by"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}
