package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/pricing"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestVolume_SinRedondeo(t *testing.T) {
	cases := []struct{ l, w, h, want string }{
		{"0", "5", "3", "0"},
		{"2", "3", "0.15", "0.9"},
		{"1.333", "0.7", "0.125", "0.116637500"},
		{"10", "10", "10", "1000"},
	}
	for _, c := range cases {
		got := pricing.Volume(d(c.l), d(c.w), d(c.h))
		assert.True(t, got.Equal(d(c.want)), "%s×%s×%s = %s, se obtuvo %s", c.l, c.w, c.h, c.want, got)
	}
}

func TestCalculateQuote(t *testing.T) {
	res, err := pricing.CalculateQuote(pricing.QuoteInput{
		Length:     d("10"),
		Width:      d("5"),
		Height:     d("0.1"),
		UnitPrice:  d("400"),
		CostM3:     d("280"),
		DistanceKm: d("25"),
		KmRate:     d("3.5"),
	})
	require.NoError(t, err)

	assert.True(t, res.VolumeM3.Equal(d("5")))
	assert.True(t, res.FreightValue.Equal(d("87.5")))
	assert.True(t, res.Total.Equal(d("2087.5")), "total = 5×400 + 87.5")
	assert.True(t, res.Profit.Equal(d("600")), "lucro = 5×(400−280)")
}

func TestCalculateQuote_RechazaNegativos(t *testing.T) {
	base := pricing.QuoteInput{Length: d("1"), Width: d("1"), Height: d("1"), UnitPrice: d("1"), KmRate: d("1")}

	neg := base
	neg.Height = d("-0.5")
	_, err := pricing.CalculateQuote(neg)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "negative_height", domain.Reason(err))

	neg = base
	neg.DistanceKm = d("-1")
	_, err = pricing.CalculateQuote(neg)
	assert.Equal(t, "negative_distance_km", domain.Reason(err))
}

// Escenario: A 2 m³ @ 400 (costo 280) + B 1 m³ @ 600 (costo 400).
func TestCalculateBudget_DosItems(t *testing.T) {
	res, err := pricing.CalculateBudget([]pricing.LineInput{
		{QuantityM3: d("2"), UnitPrice: d("400"), UnitCost: d("280")},
		{QuantityM3: d("1"), UnitPrice: d("600"), UnitCost: d("400")},
	})
	require.NoError(t, err)

	assert.True(t, res.TotalValue.Equal(d("1400")))
	assert.True(t, res.TotalCost.Equal(d("960")))
	assert.True(t, res.TotalProfit.Equal(d("440")))
	require.Len(t, res.Lines, 2)
	assert.True(t, res.Lines[0].Profit.Equal(d("240")))
	assert.True(t, res.Lines[1].Subtotal.Equal(d("600")))
}

func TestCalculateBudget_LucroEsValorMenosCosto(t *testing.T) {
	lines := []pricing.LineInput{
		{QuantityM3: d("0.33"), UnitPrice: d("415.27"), UnitCost: d("301.9")},
		{QuantityM3: d("7.125"), UnitPrice: d("389.99"), UnitCost: d("390.01")},
		{QuantityM3: d("12"), UnitPrice: d("0"), UnitCost: d("10")},
	}
	res, err := pricing.CalculateBudget(lines)
	require.NoError(t, err)

	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.QuantityM3.Mul(l.UnitPrice))
	}
	assert.True(t, res.TotalValue.Equal(sum))
	assert.True(t, res.TotalProfit.Equal(res.TotalValue.Sub(res.TotalCost)))
}

func TestCalculateBudget_Validaciones(t *testing.T) {
	_, err := pricing.CalculateBudget(nil)
	assert.Equal(t, "items_required", domain.Reason(err))

	_, err = pricing.CalculateBudget([]pricing.LineInput{{QuantityM3: d("0"), UnitPrice: d("1")}})
	assert.Equal(t, "quantity_must_be_positive", domain.Reason(err))

	_, err = pricing.CalculateBudget([]pricing.LineInput{{QuantityM3: d("1"), UnitPrice: d("-1")}})
	assert.Equal(t, "negative_unit_price", domain.Reason(err))
}

func TestCalculateInvoiceTaxes(t *testing.T) {
	taxes := pricing.CalculateInvoiceTaxes(d("1000"))
	assert.True(t, taxes.ICMS.Equal(d("180")))
	assert.True(t, taxes.PIS.Equal(d("16.5")))
	assert.True(t, taxes.COFINS.Equal(d("76")))
	assert.True(t, taxes.ISS.Equal(d("50")))
	assert.True(t, taxes.Total.Equal(d("322.5")))

	odd := pricing.CalculateInvoiceTaxes(d("123.45"))
	assert.Equal(t, "2.04", odd.PIS.StringFixed(2), "123.45 × 1.65% = 2.036925 → 2.04")
}
