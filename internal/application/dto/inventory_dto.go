package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRawMaterialRequest body para POST /api/raw-materials. InitialStock es la única escritura directa del saldo.
type CreateRawMaterialRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Unit         string          `json:"unit" validate:"required,max=10"`
	InitialStock decimal.Decimal `json:"initial_stock"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
}

// RawMaterialResponse salida de una materia prima.
type RawMaterialResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
	BelowMinimum bool            `json:"below_minimum"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// RawMaterialListResponse lista paginada de materias primas.
type RawMaterialListResponse struct {
	Items []RawMaterialResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// AddStockRequest body para POST /api/raw-materials/:id/entries.
type AddStockRequest struct {
	Quantity    decimal.Decimal `json:"quantity"`
	Reference   string          `json:"reference" validate:"omitempty,max=100"`
	Description string          `json:"description" validate:"omitempty,max=500"`
}

// MovementResponse entrada del ledger.
type MovementResponse struct {
	ID            string          `json:"id"`
	RawMaterialID string          `json:"raw_material_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	Reference     string          `json:"reference,omitempty"`
	Description   string          `json:"description,omitempty"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ReplenishmentSuggestionDTO materia prima en o bajo el mínimo con la compra sugerida.
type ReplenishmentSuggestionDTO struct {
	RawMaterialID     string          `json:"raw_material_id"`
	Name              string          `json:"name"`
	Unit              string          `json:"unit"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	MinimumStock      decimal.Decimal `json:"minimum_stock"`
	IdealStock        decimal.Decimal `json:"ideal_stock"`         // 2 × mínimo
	SuggestedOrderQty decimal.Decimal `json:"suggested_order_qty"` // IdealStock - CurrentStock
	CoveragePct       decimal.Decimal `json:"coverage_pct"`        // CurrentStock / MinimumStock × 100
	Priority          int             `json:"priority"`            // 1 = más urgente
}
