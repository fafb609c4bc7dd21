package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Todos los totales son cero cuando no hay datos en el período.
type DashboardSummaryDTO struct {
	From string `json:"from"` // YYYY-MM-DD
	To   string `json:"to"`   // YYYY-MM-DD, inclusivo

	Sales      SalesMetricsDTO      `json:"sales"`
	Operations OperationsMetricsDTO `json:"operations"`
	Finance    FinanceMetricsDTO    `json:"finance"`

	// LowStockCount materias primas en o bajo el mínimo (no depende del período).
	LowStockCount int `json:"low_stock_count"`

	// Series diarias con clave ISO, una entrada por día del período aunque sea cero.
	Series []DailyPointDTO `json:"series"`
}

// SalesMetricsDTO embudo comercial.
type SalesMetricsDTO struct {
	QuotesByStatus    map[string]int  `json:"quotes_by_status"`
	QuotesClosedValue decimal.Decimal `json:"quotes_closed_value"`
	BudgetsByStatus   map[string]int  `json:"budgets_by_status"`
	BudgetsApproved   decimal.Decimal `json:"budgets_approved_value"`
	BudgetsProfit     decimal.Decimal `json:"budgets_approved_profit"`
	ConversionRatePct decimal.Decimal `json:"conversion_rate_pct"` // aprovados / total × 100
}

// OperationsMetricsDTO pedidos, producción y logística.
type OperationsMetricsDTO struct {
	OrdersByStatus     map[string]int  `json:"orders_by_status"`
	OrdersValue        decimal.Decimal `json:"orders_value"`
	ProductionByStatus map[string]int  `json:"production_by_status"`
	ProducedVolumeM3   decimal.Decimal `json:"produced_volume_m3"`
	DeliveriesByStatus map[string]int  `json:"deliveries_by_status"`
	DeliveredVolumeM3  decimal.Decimal `json:"delivered_volume_m3"`
}

// FinanceMetricsDTO contas a receber y facturación.
type FinanceMetricsDTO struct {
	ReceivablePending decimal.Decimal `json:"receivable_pending"`
	ReceivablePaid    decimal.Decimal `json:"receivable_paid"`
	ReceivableOverdue decimal.Decimal `json:"receivable_overdue"`
	InvoicesIssued    int             `json:"invoices_issued"`
	InvoicedValue     decimal.Decimal `json:"invoiced_value"`
	TaxesTotal        decimal.Decimal `json:"taxes_total"`
}

// DailyPointDTO punto de la serie diaria.
type DailyPointDTO struct {
	Date            string          `json:"date"` // YYYY-MM-DD
	InvoicedValue   decimal.Decimal `json:"invoiced_value"`
	DeliveredVolume decimal.Decimal `json:"delivered_volume_m3"`
	OrdersCreated   int             `json:"orders_created"`
}
