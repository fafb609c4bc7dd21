package memory

import (
	"context"
	"time"

	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

var (
	_ repository.ReceivableRepository = (*receivableRepo)(nil)
	_ repository.InvoiceRepository    = (*invoiceRepo)(nil)
)

func orgOfReceivable(r *entity.Receivable) string { return r.OrganizationID }
func orgOfInvoice(i *entity.Invoice) string       { return i.OrganizationID }

type receivableRepo struct{ db access }

func (r *receivableRepo) Create(_ context.Context, rec *entity.Receivable) error {
	return r.db.with(func(st *state) error {
		for _, existing := range st.receivables {
			if existing.OrganizationID == rec.OrganizationID && existing.DeliveryID == rec.DeliveryID {
				return errUnique("contas_receber.entrega_id")
			}
		}
		return insert(st.receivables, rec.ID, *rec)
	})
}

func (r *receivableRepo) Update(_ context.Context, rec *entity.Receivable) error {
	return r.db.with(func(st *state) error {
		return replace(st.receivables, rec.OrganizationID, rec.ID, *rec, orgOfReceivable)
	})
}

func (r *receivableRepo) GetByID(_ context.Context, orgID, id string) (*entity.Receivable, error) {
	var out *entity.Receivable
	err := r.db.with(func(st *state) error {
		out = scoped(st.receivables, orgID, id, orgOfReceivable)
		return nil
	})
	return out, err
}

func (r *receivableRepo) GetForUpdate(ctx context.Context, orgID, id string) (*entity.Receivable, error) {
	return r.GetByID(ctx, orgID, id)
}

func (r *receivableRepo) GetByDelivery(_ context.Context, orgID, deliveryID string) (*entity.Receivable, error) {
	var out *entity.Receivable
	err := r.db.with(func(st *state) error {
		for _, rec := range st.receivables {
			if rec.OrganizationID == orgID && rec.DeliveryID == deliveryID {
				out = &rec
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *receivableRepo) List(_ context.Context, orgID string, f repository.ListFilter) ([]*entity.Receivable, error) {
	var out []*entity.Receivable
	err := r.db.with(func(st *state) error {
		out = collect(st.receivables,
			func(rec *entity.Receivable) bool {
				return rec.OrganizationID == orgID && statusMatches(rec.Status, f) && inWindow(rec.IssueDate, f)
			},
			func(a, b *entity.Receivable) bool { return newestFirst(a.IssueDate, b.IssueDate, a.ID, b.ID) },
			f.Limit, f.Offset)
		return nil
	})
	return out, err
}

func (r *receivableRepo) MarkOverdue(_ context.Context, orgID string, asOf time.Time) (int64, error) {
	var n int64
	err := r.db.with(func(st *state) error {
		for id, rec := range st.receivables {
			if rec.OrganizationID == orgID && rec.Status == entity.ReceivableStatusPendente && rec.DueDate.Before(asOf) {
				rec.Status = entity.ReceivableStatusVencido
				rec.UpdatedAt = asOf
				st.receivables[id] = rec
				n++
			}
		}
		return nil
	})
	return n, err
}

type invoiceRepo struct{ db access }

func (r *invoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	return r.db.with(func(st *state) error {
		for _, existing := range st.invoices {
			if existing.OrganizationID != inv.OrganizationID {
				continue
			}
			if existing.Number == inv.Number {
				return errUnique("notas_fiscais.numero_nota")
			}
			if inv.Status == entity.InvoiceStatusEmitida && existing.Status == entity.InvoiceStatusEmitida &&
				existing.DeliveryID == inv.DeliveryID {
				return errUnique("notas_fiscais.entrega_emitida")
			}
		}
		return insert(st.invoices, inv.ID, *inv)
	})
}

func (r *invoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	return r.db.with(func(st *state) error {
		return replace(st.invoices, inv.OrganizationID, inv.ID, *inv, orgOfInvoice)
	})
}

func (r *invoiceRepo) GetByID(_ context.Context, orgID, id string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.db.with(func(st *state) error {
		out = scoped(st.invoices, orgID, id, orgOfInvoice)
		return nil
	})
	return out, err
}

func (r *invoiceRepo) GetForUpdate(ctx context.Context, orgID, id string) (*entity.Invoice, error) {
	return r.GetByID(ctx, orgID, id)
}

func (r *invoiceRepo) GetActiveByDelivery(_ context.Context, orgID, deliveryID string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.db.with(func(st *state) error {
		for _, inv := range st.invoices {
			if inv.OrganizationID == orgID && inv.DeliveryID == deliveryID && inv.Status == entity.InvoiceStatusEmitida {
				out = &inv
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *invoiceRepo) NextNumber(_ context.Context, orgID string) (int64, error) {
	var n int64
	err := r.db.with(func(st *state) error {
		st.invoiceSeq[orgID]++
		n = st.invoiceSeq[orgID]
		return nil
	})
	return n, err
}

func (r *invoiceRepo) List(_ context.Context, orgID string, f repository.ListFilter) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	err := r.db.with(func(st *state) error {
		out = collect(st.invoices,
			func(inv *entity.Invoice) bool {
				return inv.OrganizationID == orgID && statusMatches(inv.Status, f) && inWindow(inv.IssuedAt, f)
			},
			func(a, b *entity.Invoice) bool { return a.Number > b.Number },
			f.Limit, f.Offset)
		return nil
	})
	return out, err
}
