package pricing

import "github.com/shopspring/decimal"

// Alícuotas fijas de la NF-e simulada, aplicadas sobre el valor total.
var (
	ICMSRate   = decimal.RequireFromString("0.18")
	PISRate    = decimal.RequireFromString("0.0165")
	COFINSRate = decimal.RequireFromString("0.076")
	ISSRate    = decimal.RequireFromString("0.05")
)

// InvoiceTaxes impuestos calculados de una nota, redondeados a centavos.
type InvoiceTaxes struct {
	ICMS   decimal.Decimal
	PIS    decimal.Decimal
	COFINS decimal.Decimal
	ISS    decimal.Decimal
	Total  decimal.Decimal
}

// CalculateInvoiceTaxes calcula cada impuesto sobre total y los redondea a 2 decimales.
// Total es la suma de los valores ya redondeados, para que cuadre con lo impreso en la nota.
func CalculateInvoiceTaxes(total decimal.Decimal) InvoiceTaxes {
	t := InvoiceTaxes{
		ICMS:   total.Mul(ICMSRate).Round(2),
		PIS:    total.Mul(PISRate).Round(2),
		COFINS: total.Mul(COFINSRate).Round(2),
		ISS:    total.Mul(ISSRate).Round(2),
	}
	t.Total = t.ICMS.Add(t.PIS).Add(t.COFINS).Add(t.ISS)
	return t
}
