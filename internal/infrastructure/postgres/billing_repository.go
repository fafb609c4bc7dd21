package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

var (
	_ repository.ReceivableRepository = (*ReceivableRepo)(nil)
	_ repository.InvoiceRepository    = (*InvoiceRepo)(nil)
)

var (
	receivableCols = []string{"id", "organization_id", "cliente_id", "pedido_id", "entrega_id", "valor",
		"data_emissao", "data_vencimento", "status", "data_pagamento", "forma_pagamento", "created_at", "updated_at"}
	invoiceCols = []string{"id", "organization_id", "numero_nota", "entrega_id", "pedido_id", "cliente_id",
		"valor_total", "valor_icms", "valor_pis", "valor_cofins", "valor_iss", "total_impostos", "status",
		"emitida_em", "cancelada_em", "motivo_cancelamento", "created_by", "created_at", "updated_at"}
)

// ReceivableRepo contas a receber (tabla accounts_receivable). entrega_id es único.
type ReceivableRepo struct {
	q Querier
}

// NewReceivableRepository construye el repo. Pasar pool o tx.
func NewReceivableRepository(q Querier) *ReceivableRepo {
	return &ReceivableRepo{q: q}
}

func (r *ReceivableRepo) Create(ctx context.Context, rec *entity.Receivable) error {
	return insert(ctx, r.q, "insert receivable", "accounts_receivable", receivableCols,
		rec.ID, rec.OrganizationID, rec.ClientID, rec.OrderID, rec.DeliveryID, rec.Amount,
		rec.IssueDate, rec.DueDate, rec.Status, rec.PaidAt, rec.PaymentMethod, rec.CreatedAt, rec.UpdatedAt)
}

func (r *ReceivableRepo) Update(ctx context.Context, rec *entity.Receivable) error {
	return update(ctx, r.q, "update receivable", "accounts_receivable", rec.OrganizationID, rec.ID, map[string]any{
		"status":          rec.Status,
		"data_pagamento":  rec.PaidAt,
		"forma_pagamento": rec.PaymentMethod,
		"updated_at":      rec.UpdatedAt,
	})
}

func (r *ReceivableRepo) GetByID(ctx context.Context, orgID, id string) (*entity.Receivable, error) {
	return getOne[entity.Receivable](ctx, r.q, "get receivable", r.byID(orgID, id))
}

func (r *ReceivableRepo) GetForUpdate(ctx context.Context, orgID, id string) (*entity.Receivable, error) {
	return getOne[entity.Receivable](ctx, r.q, "lock receivable", r.byID(orgID, id).Suffix("FOR UPDATE"))
}

func (r *ReceivableRepo) GetByDelivery(ctx context.Context, orgID, deliveryID string) (*entity.Receivable, error) {
	return getOne[entity.Receivable](ctx, r.q, "get receivable by delivery",
		psql.Select(receivableCols...).From("accounts_receivable").
			Where(sq.Eq{"entrega_id": deliveryID, "organization_id": orgID}))
}

func (r *ReceivableRepo) List(ctx context.Context, orgID string, f repository.ListFilter) ([]*entity.Receivable, error) {
	return getMany[entity.Receivable](ctx, r.q, "list receivables",
		scopedList(psql.Select(receivableCols...).From("accounts_receivable"), orgID, f, "status", "data_emissao"))
}

// markOverdueQuery solo toca filas pendente de la organización; pago nunca vuelve a vencido.
func markOverdueQuery(orgID string, asOf time.Time) sq.UpdateBuilder {
	return psql.Update("accounts_receivable").
		Set("status", entity.ReceivableStatusVencido).
		Set("updated_at", asOf).
		Where(sq.Eq{"organization_id": orgID, "status": entity.ReceivableStatusPendente}).
		Where(sq.Lt{"data_vencimento": asOf})
}

// MarkOverdue pasa a vencido todo lo pendente con vencimiento anterior a asOf.
func (r *ReceivableRepo) MarkOverdue(ctx context.Context, orgID string, asOf time.Time) (int64, error) {
	sql, args, err := markOverdueQuery(orgID, asOf).ToSql()
	if err != nil {
		return 0, fmt.Errorf("mark overdue: build query: %w", err)
	}
	tag, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("mark overdue: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *ReceivableRepo) byID(orgID, id string) sq.SelectBuilder {
	return psql.Select(receivableCols...).From("accounts_receivable").Where(sq.Eq{"id": id, "organization_id": orgID})
}

// InvoiceRepo NF-e simuladas. Índice único parcial sobre entrega_id WHERE status = 'emitida'.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el repo. Pasar pool o tx.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	return insert(ctx, r.q, "insert invoice", "invoices", invoiceCols,
		inv.ID, inv.OrganizationID, inv.Number, inv.DeliveryID, inv.OrderID, inv.ClientID,
		inv.TotalValue, inv.ICMS, inv.PIS, inv.COFINS, inv.ISS, inv.TotalTaxes, inv.Status,
		inv.IssuedAt, inv.CancelledAt, inv.CancelReason, inv.CreatedBy, inv.CreatedAt, inv.UpdatedAt)
}

func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	return update(ctx, r.q, "update invoice", "invoices", inv.OrganizationID, inv.ID, map[string]any{
		"status":              inv.Status,
		"cancelada_em":        inv.CancelledAt,
		"motivo_cancelamento": inv.CancelReason,
		"updated_at":          inv.UpdatedAt,
	})
}

func (r *InvoiceRepo) GetByID(ctx context.Context, orgID, id string) (*entity.Invoice, error) {
	return getOne[entity.Invoice](ctx, r.q, "get invoice", r.byID(orgID, id))
}

func (r *InvoiceRepo) GetForUpdate(ctx context.Context, orgID, id string) (*entity.Invoice, error) {
	return getOne[entity.Invoice](ctx, r.q, "lock invoice", r.byID(orgID, id).Suffix("FOR UPDATE"))
}

func (r *InvoiceRepo) GetActiveByDelivery(ctx context.Context, orgID, deliveryID string) (*entity.Invoice, error) {
	return getOne[entity.Invoice](ctx, r.q, "get active invoice",
		psql.Select(invoiceCols...).From("invoices").
			Where(sq.Eq{"entrega_id": deliveryID, "organization_id": orgID, "status": entity.InvoiceStatusEmitida}))
}

const nextInvoiceNumberSQL = `INSERT INTO invoice_sequences (organization_id, last_number)
	VALUES ($1, 1)
	ON CONFLICT (organization_id) DO UPDATE SET last_number = invoice_sequences.last_number + 1
	RETURNING last_number`

// NextNumber reserva el siguiente número de la organización. La fila de invoice_sequences queda
// bloqueada hasta el fin de la transacción, así que los números salen estrictamente en orden.
func (r *InvoiceRepo) NextNumber(ctx context.Context, orgID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, nextInvoiceNumberSQL, orgID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next invoice number: %w", err)
	}
	return n, nil
}

func (r *InvoiceRepo) List(ctx context.Context, orgID string, f repository.ListFilter) ([]*entity.Invoice, error) {
	return getMany[entity.Invoice](ctx, r.q, "list invoices",
		scopedList(psql.Select(invoiceCols...).From("invoices"), orgID, f, "status", "emitida_em"))
}

func (r *InvoiceRepo) byID(orgID, id string) sq.SelectBuilder {
	return psql.Select(invoiceCols...).From("invoices").Where(sq.Eq{"id": id, "organization_id": orgID})
}
