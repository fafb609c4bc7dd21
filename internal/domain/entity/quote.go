package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del orçamento legado (un solo producto).
const (
	QuoteStatusPendente   = "pendente"
	QuoteStatusNegociacao = "negociacao"
	QuoteStatusFechado    = "fechado"
	QuoteStatusPerdido    = "perdido"
)

// ValidQuoteStatus indica si s es un estado de Quote conocido.
func ValidQuoteStatus(s string) bool {
	switch s {
	case QuoteStatusPendente, QuoteStatusNegociacao, QuoteStatusFechado, QuoteStatusPerdido:
		return true
	}
	return false
}

// Quote orçamento legado de un solo producto con dimensiones y frete.
// VolumeM3, FreightValue, Total y EstimatedProfit se derivan con pricing.QuoteTotals al crear.
type Quote struct {
	ID              string          `db:"id"`
	OrganizationID  string          `db:"organization_id"`
	ClientID        string          `db:"cliente_id"`
	ProductID       string          `db:"produto_id"`
	Length          decimal.Decimal `db:"comprimento"`
	Width           decimal.Decimal `db:"largura"`
	Height          decimal.Decimal `db:"altura"`
	UnitPrice       decimal.Decimal `db:"preco_unitario"`
	CostM3          decimal.Decimal `db:"custo_m3"`
	DistanceKm      decimal.Decimal `db:"distancia_km"`
	KmRate          decimal.Decimal `db:"valor_km"`
	VolumeM3        decimal.Decimal `db:"volume_m3"`
	FreightValue    decimal.Decimal `db:"valor_frete"`
	Total           decimal.Decimal `db:"valor_total"`
	EstimatedProfit decimal.Decimal `db:"lucro_estimado"`
	Status          string          `db:"status"`
	LossReason      string          `db:"motivo_perda"`
	CreatedBy       string          `db:"created_by"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}
