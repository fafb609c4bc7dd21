package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

var deliveryCols = []string{"id", "organization_id", "ordem_producao_id", "orcamento_legado_id", "pedido_id",
	"cliente_id", "caminhao_id", "motorista_id", "volume_transportado_m3", "status", "data_programada",
	"saida_em", "entregue_em", "comprovante_url", "latitude", "longitude", "observacoes", "created_at", "updated_at"}

// DeliveryRepo entregas. orcamento_legado_id tiene índice único parcial: una entrega por orçamento cerrado.
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el repo. Pasar pool o tx.
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

func (r *DeliveryRepo) Create(ctx context.Context, d *entity.Delivery) error {
	return insert(ctx, r.q, "insert delivery", "deliveries", deliveryCols,
		d.ID, d.OrganizationID, d.ProductionOrderID, d.QuoteID, d.OrderID,
		d.ClientID, d.TruckID, d.DriverID, d.VolumeM3, d.Status, d.ScheduledFor,
		d.DepartedAt, d.DeliveredAt, d.ProofURL, d.Latitude, d.Longitude, d.Notes, d.CreatedAt, d.UpdatedAt)
}

func (r *DeliveryRepo) Update(ctx context.Context, d *entity.Delivery) error {
	return update(ctx, r.q, "update delivery", "deliveries", d.OrganizationID, d.ID, map[string]any{
		"caminhao_id":     d.TruckID,
		"motorista_id":    d.DriverID,
		"status":          d.Status,
		"data_programada": d.ScheduledFor,
		"saida_em":        d.DepartedAt,
		"entregue_em":     d.DeliveredAt,
		"comprovante_url": d.ProofURL,
		"latitude":        d.Latitude,
		"longitude":       d.Longitude,
		"observacoes":     d.Notes,
		"updated_at":      d.UpdatedAt,
	})
}

func (r *DeliveryRepo) GetByID(ctx context.Context, orgID, id string) (*entity.Delivery, error) {
	return getOne[entity.Delivery](ctx, r.q, "get delivery", r.byID(orgID, id))
}

func (r *DeliveryRepo) GetForUpdate(ctx context.Context, orgID, id string) (*entity.Delivery, error) {
	return getOne[entity.Delivery](ctx, r.q, "lock delivery", r.byID(orgID, id).Suffix("FOR UPDATE"))
}

func (r *DeliveryRepo) GetByQuote(ctx context.Context, orgID, quoteID string) (*entity.Delivery, error) {
	return getOne[entity.Delivery](ctx, r.q, "get delivery by quote",
		psql.Select(deliveryCols...).From("deliveries").
			Where(sq.Eq{"orcamento_legado_id": quoteID, "organization_id": orgID}))
}

func (r *DeliveryRepo) List(ctx context.Context, orgID string, f repository.ListFilter) ([]*entity.Delivery, error) {
	return getMany[entity.Delivery](ctx, r.q, "list deliveries",
		scopedList(psql.Select(deliveryCols...).From("deliveries"), orgID, f, "status", "created_at"))
}

func (r *DeliveryRepo) byID(orgID, id string) sq.SelectBuilder {
	return psql.Select(deliveryCols...).From("deliveries").Where(sq.Eq{"id": id, "organization_id": orgID})
}
