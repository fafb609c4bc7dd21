package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceivableResponse salida de una conta a receber.
type ReceivableResponse struct {
	ID            string          `json:"id"`
	ClientID      string          `json:"client_id"`
	OrderID       string          `json:"order_id"`
	DeliveryID    string          `json:"delivery_id"`
	Amount        decimal.Decimal `json:"amount"`
	IssueDate     time.Time       `json:"issue_date"`
	DueDate       time.Time       `json:"due_date"`
	Status        string          `json:"status"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ReceivableListResponse lista paginada de contas a receber.
type ReceivableListResponse struct {
	Items []ReceivableResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// PayReceivableRequest body para POST /api/receivables/:id/pay.
type PayReceivableRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=pix dinheiro boleto cartao transferencia fiado"`
}

// RefreshOverdueResponse resultado de POST /api/receivables/refresh-overdue.
type RefreshOverdueResponse struct {
	Updated int64 `json:"updated"`
}

// IssueInvoiceRequest body para POST /api/invoices.
type IssueInvoiceRequest struct {
	DeliveryID string `json:"delivery_id" validate:"required"`
}

// CancelInvoiceRequest body para POST /api/invoices/:id/cancel.
type CancelInvoiceRequest struct {
	Reason string `json:"reason" validate:"required,min=15,max=255"`
}

// InvoiceResponse NF-e simulada.
type InvoiceResponse struct {
	ID           string          `json:"id"`
	Number       int64           `json:"number"`
	DeliveryID   string          `json:"delivery_id"`
	OrderID      string          `json:"order_id"`
	ClientID     string          `json:"client_id"`
	TotalValue   decimal.Decimal `json:"total_value"`
	ICMS         decimal.Decimal `json:"icms"`
	PIS          decimal.Decimal `json:"pis"`
	COFINS       decimal.Decimal `json:"cofins"`
	ISS          decimal.Decimal `json:"iss"`
	TotalTaxes   decimal.Decimal `json:"total_taxes"`
	Status       string          `json:"status"`
	IssuedAt     time.Time       `json:"issued_at"`
	CancelledAt  *time.Time      `json:"cancelled_at,omitempty"`
	CancelReason string          `json:"cancel_reason,omitempty"`
	CreatedBy    string          `json:"created_by"`
}

// InvoiceListResponse lista paginada de notas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
