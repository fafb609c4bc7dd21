package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de estoque.
const (
	MovementTypeEntrada = "entrada"
	MovementTypeSaida   = "saida"
)

// RawMaterial materia prima (cemento, arena, piedra...). CurrentStock solo cambia vía movimientos,
// salvo el valor inicial al crearla.
type RawMaterial struct {
	ID             string          `db:"id"`
	OrganizationID string          `db:"organization_id"`
	Name           string          `db:"nome"`
	Unit           string          `db:"unidade"`
	CurrentStock   decimal.Decimal `db:"estoque_atual"`
	MinimumStock   decimal.Decimal `db:"estoque_minimo"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// BelowMinimum indica si la materia prima está en o por debajo del punto de reposición.
func (m RawMaterial) BelowMinimum() bool {
	return m.CurrentStock.LessThanOrEqual(m.MinimumStock)
}

// InventoryMovement entrada del ledger, solo append. Quantity siempre positiva; Type da el signo.
type InventoryMovement struct {
	ID             string          `db:"id"`
	OrganizationID string          `db:"organization_id"`
	RawMaterialID  string          `db:"materia_prima_id"`
	Type           string          `db:"tipo"`
	Quantity       decimal.Decimal `db:"quantidade"`
	Reference      string          `db:"referencia"` // ej: ID de la OP en una baixa
	Description    string          `db:"descricao"`
	CreatedBy      string          `db:"created_by"`
	CreatedAt      time.Time       `db:"created_at"`
}

// Signed devuelve la cantidad con signo (negativa para saída).
func (m InventoryMovement) Signed() decimal.Decimal {
	if m.Type == MovementTypeSaida {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
