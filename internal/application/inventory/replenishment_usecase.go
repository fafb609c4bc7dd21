package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/concretera-erp/internal/application/dto"
	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de compra de materias primas en o bajo el mínimo.
type ReplenishmentUseCase struct {
	materials repository.RawMaterialRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(materials repository.RawMaterialRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{materials: materials}
}

// GenerateReplenishmentList devuelve las materias bajo el punto de reposición con la cantidad
// sugerida (llevar el saldo a 2 × mínimo), ordenadas por cobertura ascendente.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, orgID string) ([]dto.ReplenishmentSuggestionDTO, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	items, err := uc.materials.ListBelowMinimum(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	two := decimal.NewFromInt(2)
	hundred := decimal.NewFromInt(100)

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(items))
	for _, m := range items {
		ideal := m.MinimumStock.Mul(two)
		suggested := ideal.Sub(m.CurrentStock)
		if suggested.IsNegative() {
			suggested = decimal.Zero
		}
		coverage := decimal.Zero
		if m.MinimumStock.IsPositive() {
			coverage = m.CurrentStock.Div(m.MinimumStock).Mul(hundred).Round(2)
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			RawMaterialID:     m.ID,
			Name:              m.Name,
			Unit:              m.Unit,
			CurrentStock:      m.CurrentStock,
			MinimumStock:      m.MinimumStock,
			IdealStock:        ideal,
			SuggestedOrderQty: suggested,
			CoveragePct:       coverage,
		})
	}

	// Menor cobertura primero; a igual cobertura, mayor déficit absoluto.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.CoveragePct.Equal(b.CoveragePct) {
			return a.CoveragePct.LessThan(b.CoveragePct)
		}
		return a.SuggestedOrderQty.GreaterThan(b.SuggestedOrderQty)
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
