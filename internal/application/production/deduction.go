// Package production implementa el ciclo de vida de las OPs y la baixa de estoque por traço.
package production

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/concretera-erp/internal/application/inventory"
	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/pricing"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

// Deduction una baixa calculada para un ingrediente.
type Deduction struct {
	Material *entity.RawMaterial
	Required decimal.Decimal
}

// PlanDeductions es la fase de verificación: bloquea cada materia prima del traço (en orden de id),
// calcula lo requerido y falla con InsufficientStockError en el primer ingrediente sin saldo.
// No escribe nada.
func PlanDeductions(ctx context.Context, r repository.Repos, po *entity.ProductionOrder) ([]Deduction, error) {
	recipe, err := r.Recipes.ListByProduct(ctx, po.OrganizationID, po.ProductID)
	if err != nil {
		return nil, err
	}
	if len(recipe) == 0 {
		return nil, domain.Rule("recipe_not_defined")
	}

	plan := make([]Deduction, 0, len(recipe))
	for _, item := range recipe {
		m, err := r.RawMaterials.GetForUpdate(ctx, po.OrganizationID, item.RawMaterialID)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, fmt.Errorf("materia prima %s del traço: %w", item.RawMaterialID, domain.ErrNotFound)
		}
		required := pricing.RequiredQuantity(item.QuantityPerM3, po.QuantityM3)
		if m.CurrentStock.LessThan(required) {
			return nil, &domain.InsufficientStockError{
				Material:  m.Name,
				Required:  required,
				Available: m.CurrentStock,
			}
		}
		plan = append(plan, Deduction{Material: m, Required: required})
	}
	return plan, nil
}

// ApplyDeductions es la fase de aplicación: una saída por ingrediente con referencia a la OP.
// Solo se llama con un plan ya verificado y dentro de la misma transacción.
func ApplyDeductions(ctx context.Context, r repository.Repos, po *entity.ProductionOrder, plan []Deduction, userID string, at time.Time) ([]*entity.InventoryMovement, error) {
	movements := make([]*entity.InventoryMovement, 0, len(plan))
	for _, d := range plan {
		mov, err := inventory.Record(ctx, r, inventory.MovementInput{
			OrganizationID: po.OrganizationID,
			RawMaterialID:  d.Material.ID,
			Type:           entity.MovementTypeSaida,
			Quantity:       d.Required,
			Reference:      po.ID,
			Description:    "baixa por produção",
			UserID:         userID,
			At:             at,
		})
		if err != nil {
			return nil, err
		}
		movements = append(movements, mov)
	}
	return movements, nil
}
