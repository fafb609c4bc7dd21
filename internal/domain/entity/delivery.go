package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la entrega.
const (
	DeliveryStatusAgendada     = "agendada"
	DeliveryStatusEmTransporte = "em_transporte"
	DeliveryStatusEntregue     = "entregue"
	DeliveryStatusCancelada    = "cancelada"
)

// NormalizeDeliveryStatus acepta los alias usados por la app del motorista
// ("programada", "transporte") y devuelve el estado canónico, o "" si no es válido.
func NormalizeDeliveryStatus(s string) string {
	switch s {
	case DeliveryStatusAgendada, "programada":
		return DeliveryStatusAgendada
	case DeliveryStatusEmTransporte, "transporte":
		return DeliveryStatusEmTransporte
	case DeliveryStatusEntregue:
		return DeliveryStatusEntregue
	case DeliveryStatusCancelada:
		return DeliveryStatusCancelada
	}
	return ""
}

// Delivery entrega de una OP finalizada (o, en el flujo legado, de un Quote fechado).
type Delivery struct {
	ID                string          `db:"id"`
	OrganizationID    string          `db:"organization_id"`
	ProductionOrderID *string         `db:"ordem_producao_id"`
	QuoteID           *string         `db:"orcamento_legado_id"`
	OrderID           *string         `db:"pedido_id"`
	ClientID          string          `db:"cliente_id"`
	TruckID           *string         `db:"caminhao_id"`
	DriverID          *string         `db:"motorista_id"`
	VolumeM3          decimal.Decimal `db:"volume_transportado_m3"`
	Status            string          `db:"status"`
	ScheduledFor      *time.Time      `db:"data_programada"`
	DepartedAt        *time.Time      `db:"saida_em"`
	DeliveredAt       *time.Time      `db:"entregue_em"`
	ProofURL          string          `db:"comprovante_url"`
	Latitude          *float64        `db:"latitude"`
	Longitude         *float64        `db:"longitude"`
	Notes             string          `db:"observacoes"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}
