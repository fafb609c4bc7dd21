package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la ordem de produção (OP).
const (
	ProductionStatusAguardando = "aguardando"
	ProductionStatusProduzindo = "produzindo"
	ProductionStatusFinalizado = "finalizado"
)

// ValidProductionStatus indica si s es un estado de ProductionOrder conocido.
func ValidProductionStatus(s string) bool {
	switch s {
	case ProductionStatusAguardando, ProductionStatusProduzindo, ProductionStatusFinalizado:
		return true
	}
	return false
}

// ProductionOrder OP de un ítem de pedido.
type ProductionOrder struct {
	ID             string          `db:"id"`
	OrganizationID string          `db:"organization_id"`
	OrderID        string          `db:"pedido_id"`
	ProductID      string          `db:"produto_id"`
	QuantityM3     decimal.Decimal `db:"quantidade_m3"`
	Status         string          `db:"status"`
	StartedAt      *time.Time      `db:"iniciado_em"`
	FinishedAt     *time.Time      `db:"finalizado_em"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// RecipeItem línea del traço: cuánto de una materia prima consume 1 m³ del producto.
// El traço completo de un producto se reemplaza entero en cada edición (sin versionado).
type RecipeItem struct {
	ID             string          `db:"id"`
	OrganizationID string          `db:"organization_id"`
	ProductID      string          `db:"produto_id"`
	RawMaterialID  string          `db:"materia_prima_id"`
	QuantityPerM3  decimal.Decimal `db:"quantidade_por_m3"`
	CreatedAt      time.Time       `db:"created_at"`
}
