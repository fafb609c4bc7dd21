package memory

import (
	"context"

	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*deliveryRepo)(nil)

func orgOfDelivery(d *entity.Delivery) string { return d.OrganizationID }

type deliveryRepo struct{ db access }

func (r *deliveryRepo) Create(_ context.Context, d *entity.Delivery) error {
	return r.db.with(func(st *state) error {
		if d.QuoteID != nil {
			for _, existing := range st.deliveries {
				if existing.QuoteID != nil && *existing.QuoteID == *d.QuoteID {
					return errUnique("entregas.orcamento_legado_id")
				}
			}
		}
		return insert(st.deliveries, d.ID, *d)
	})
}

func (r *deliveryRepo) Update(_ context.Context, d *entity.Delivery) error {
	return r.db.with(func(st *state) error {
		return replace(st.deliveries, d.OrganizationID, d.ID, *d, orgOfDelivery)
	})
}

func (r *deliveryRepo) GetByID(_ context.Context, orgID, id string) (*entity.Delivery, error) {
	var out *entity.Delivery
	err := r.db.with(func(st *state) error {
		out = scoped(st.deliveries, orgID, id, orgOfDelivery)
		return nil
	})
	return out, err
}

func (r *deliveryRepo) GetForUpdate(ctx context.Context, orgID, id string) (*entity.Delivery, error) {
	return r.GetByID(ctx, orgID, id)
}

func (r *deliveryRepo) GetByQuote(_ context.Context, orgID, quoteID string) (*entity.Delivery, error) {
	var out *entity.Delivery
	err := r.db.with(func(st *state) error {
		for _, d := range st.deliveries {
			if d.OrganizationID == orgID && d.QuoteID != nil && *d.QuoteID == quoteID {
				out = &d
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *deliveryRepo) List(_ context.Context, orgID string, f repository.ListFilter) ([]*entity.Delivery, error) {
	var out []*entity.Delivery
	err := r.db.with(func(st *state) error {
		out = collect(st.deliveries,
			func(d *entity.Delivery) bool {
				return d.OrganizationID == orgID && statusMatches(d.Status, f) && inWindow(d.CreatedAt, f)
			},
			func(a, b *entity.Delivery) bool { return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID) },
			f.Limit, f.Offset)
		return nil
	})
	return out, err
}
