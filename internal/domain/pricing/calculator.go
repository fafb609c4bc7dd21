// Package pricing concentra las fórmulas de volumen, frete, costo y lucro.
// Es la única implementación: el backend y la vista previa de formularios llaman las mismas funciones.
// No redondea; la presentación decide cuántos decimales mostrar.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/concretera-erp/internal/domain"
)

// QuoteInput dimensiones (m), precio por m³, costo por m³ del producto y datos de frete.
type QuoteInput struct {
	Length     decimal.Decimal
	Width      decimal.Decimal
	Height     decimal.Decimal
	UnitPrice  decimal.Decimal
	CostM3     decimal.Decimal
	DistanceKm decimal.Decimal
	KmRate     decimal.Decimal
}

// QuoteResult valores derivados de un orçamento legado.
type QuoteResult struct {
	VolumeM3     decimal.Decimal
	FreightValue decimal.Decimal
	Total        decimal.Decimal
	Profit       decimal.Decimal
}

// Volume = largo × ancho × alto.
func Volume(length, width, height decimal.Decimal) decimal.Decimal {
	return length.Mul(width).Mul(height)
}

// Freight = km × valor por km.
func Freight(km, kmRate decimal.Decimal) decimal.Decimal {
	return km.Mul(kmRate)
}

// CalculateQuote aplica las cuatro fórmulas del orçamento legado.
// Rechaza entradas negativas con ValidationError("negative_<campo>").
func CalculateQuote(in QuoteInput) (QuoteResult, error) {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"length", in.Length},
		{"width", in.Width},
		{"height", in.Height},
		{"unit_price", in.UnitPrice},
		{"cost_m3", in.CostM3},
		{"distance_km", in.DistanceKm},
		{"km_rate", in.KmRate},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return QuoteResult{}, domain.Validation("negative_" + f.name)
		}
	}

	volume := Volume(in.Length, in.Width, in.Height)
	freight := Freight(in.DistanceKm, in.KmRate)
	return QuoteResult{
		VolumeM3:     volume,
		FreightValue: freight,
		Total:        volume.Mul(in.UnitPrice).Add(freight),
		Profit:       volume.Mul(in.UnitPrice.Sub(in.CostM3)),
	}, nil
}

// LineInput un ítem de orçamento: cantidad en m³ y precio/costo unitarios congelados.
type LineInput struct {
	QuantityM3 decimal.Decimal
	UnitPrice  decimal.Decimal
	UnitCost   decimal.Decimal
}

// LineResult subtotal, custo_subtotal y lucro_item.
type LineResult struct {
	Subtotal     decimal.Decimal
	CostSubtotal decimal.Decimal
	Profit       decimal.Decimal
}

// BudgetResult totales agregados y el detalle por línea en el mismo orden de entrada.
type BudgetResult struct {
	Lines       []LineResult
	TotalValue  decimal.Decimal
	TotalCost   decimal.Decimal
	TotalProfit decimal.Decimal
}

// CalculateLine calcula un ítem. La cantidad debe ser > 0; precio y costo >= 0.
func CalculateLine(in LineInput) (LineResult, error) {
	if !in.QuantityM3.IsPositive() {
		return LineResult{}, domain.Validation("quantity_must_be_positive")
	}
	if in.UnitPrice.IsNegative() {
		return LineResult{}, domain.Validation("negative_unit_price")
	}
	if in.UnitCost.IsNegative() {
		return LineResult{}, domain.Validation("negative_unit_cost")
	}
	subtotal := in.QuantityM3.Mul(in.UnitPrice)
	cost := in.QuantityM3.Mul(in.UnitCost)
	return LineResult{Subtotal: subtotal, CostSubtotal: cost, Profit: subtotal.Sub(cost)}, nil
}

// CalculateBudget suma los ítems: valor_total = Σ subtotal, custo_total = Σ custo_subtotal,
// lucro_total = valor_total − custo_total.
func CalculateBudget(lines []LineInput) (BudgetResult, error) {
	if len(lines) == 0 {
		return BudgetResult{}, domain.Validation("items_required")
	}
	res := BudgetResult{
		Lines:      make([]LineResult, 0, len(lines)),
		TotalValue: decimal.Zero,
		TotalCost:  decimal.Zero,
	}
	for _, in := range lines {
		line, err := CalculateLine(in)
		if err != nil {
			return BudgetResult{}, err
		}
		res.Lines = append(res.Lines, line)
		res.TotalValue = res.TotalValue.Add(line.Subtotal)
		res.TotalCost = res.TotalCost.Add(line.CostSubtotal)
	}
	res.TotalProfit = res.TotalValue.Sub(res.TotalCost)
	return res, nil
}

// RequiredQuantity cantidad de materia prima que consume una OP: quantidade_por_m3 × quantidade_m3.
func RequiredQuantity(perM3, quantityM3 decimal.Decimal) decimal.Decimal {
	return perM3.Mul(quantityM3)
}
