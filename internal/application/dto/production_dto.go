package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionOrderResponse salida de una OP.
type ProductionOrderResponse struct {
	ID         string          `json:"id"`
	OrderID    string          `json:"order_id"`
	ProductID  string          `json:"product_id"`
	QuantityM3 decimal.Decimal `json:"quantity_m3"`
	Status     string          `json:"status"`
	StartedAt  *time.Time      `json:"started_at,omitempty"`
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	// Deductions baixas aplicadas al finalizar.
	Deductions []MovementResponse `json:"deductions,omitempty"`
}

// ProductionOrderListResponse lista paginada de OPs.
type ProductionOrderListResponse struct {
	Items []ProductionOrderResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}

// RecipeItemRequest línea del traço.
type RecipeItemRequest struct {
	RawMaterialID string          `json:"raw_material_id" validate:"required"`
	QuantityPerM3 decimal.Decimal `json:"quantity_per_m3"`
}

// ReplaceRecipeRequest body para PUT /api/products/:id/recipe. Reemplaza el traço completo.
type ReplaceRecipeRequest struct {
	Items []RecipeItemRequest `json:"items" validate:"dive"`
}

// RecipeItemResponse línea del traço con datos de la materia prima.
type RecipeItemResponse struct {
	RawMaterialID   string          `json:"raw_material_id"`
	RawMaterialName string          `json:"raw_material_name"`
	Unit            string          `json:"unit"`
	QuantityPerM3   decimal.Decimal `json:"quantity_per_m3"`
}

// RecipeResponse traço de un producto.
type RecipeResponse struct {
	ProductID string               `json:"product_id"`
	Items     []RecipeItemResponse `json:"items"`
}
