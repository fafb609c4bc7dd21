package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

var (
	_ repository.ClientRepository  = (*ClientRepo)(nil)
	_ repository.ProductRepository = (*ProductRepo)(nil)
	_ repository.TruckRepository   = (*TruckRepo)(nil)
	_ repository.DriverRepository  = (*DriverRepo)(nil)
)

var (
	clientCols = []string{"id", "organization_id", "nome", "tipo", "documento", "email", "telefone",
		"endereco", "cidade", "estado", "created_at", "updated_at"}
	productCols = []string{"id", "organization_id", "nome", "categoria", "preco_m3", "custo_m3",
		"unidade", "ativo", "created_at", "updated_at"}
	truckCols  = []string{"id", "organization_id", "placa", "modelo", "capacidade_m3", "ativo", "created_at"}
	driverCols = []string{"id", "organization_id", "nome", "cnh", "telefone", "ativo", "created_at"}
)

// ClientRepo clientes.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el repo. Pasar pool o tx.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	return insert(ctx, r.q, "insert client", "clients", clientCols,
		c.ID, c.OrganizationID, c.Name, c.Kind, c.Document, c.Email, c.Phone,
		c.Address, c.City, c.State, c.CreatedAt, c.UpdatedAt)
}

func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	return update(ctx, r.q, "update client", "clients", c.OrganizationID, c.ID, map[string]any{
		"nome":       c.Name,
		"tipo":       c.Kind,
		"documento":  c.Document,
		"email":      c.Email,
		"telefone":   c.Phone,
		"endereco":   c.Address,
		"cidade":     c.City,
		"estado":     c.State,
		"updated_at": c.UpdatedAt,
	})
}

func (r *ClientRepo) GetByID(ctx context.Context, orgID, id string) (*entity.Client, error) {
	return getOne[entity.Client](ctx, r.q, "get client",
		psql.Select(clientCols...).From("clients").Where(sq.Eq{"id": id, "organization_id": orgID}))
}

// List Status filtra por tipo (interno/externo).
func (r *ClientRepo) List(ctx context.Context, orgID string, f repository.ListFilter) ([]*entity.Client, error) {
	return getMany[entity.Client](ctx, r.q, "list clients",
		scopedList(psql.Select(clientCols...).From("clients"), orgID, f, "tipo", "created_at"))
}

// ProductRepo productos (concreto, manilhas, pré-moldados).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el repo. Pasar pool o tx.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return insert(ctx, r.q, "insert product", "products", productCols,
		p.ID, p.OrganizationID, p.Name, p.Category, p.PriceM3, p.CostM3, p.Unit, p.Active, p.CreatedAt, p.UpdatedAt)
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return update(ctx, r.q, "update product", "products", p.OrganizationID, p.ID, map[string]any{
		"nome":       p.Name,
		"categoria":  p.Category,
		"preco_m3":   p.PriceM3,
		"custo_m3":   p.CostM3,
		"unidade":    p.Unit,
		"ativo":      p.Active,
		"updated_at": p.UpdatedAt,
	})
}

func (r *ProductRepo) GetByID(ctx context.Context, orgID, id string) (*entity.Product, error) {
	return getOne[entity.Product](ctx, r.q, "get product",
		psql.Select(productCols...).From("products").Where(sq.Eq{"id": id, "organization_id": orgID}))
}

// List Status filtra por categoría.
func (r *ProductRepo) List(ctx context.Context, orgID string, f repository.ListFilter) ([]*entity.Product, error) {
	return getMany[entity.Product](ctx, r.q, "list products",
		scopedList(psql.Select(productCols...).From("products"), orgID, f, "categoria", "created_at"))
}

// TruckRepo caminhões.
type TruckRepo struct {
	q Querier
}

// NewTruckRepository construye el repo. Pasar pool o tx.
func NewTruckRepository(q Querier) *TruckRepo {
	return &TruckRepo{q: q}
}

func (r *TruckRepo) Create(ctx context.Context, t *entity.Truck) error {
	return insert(ctx, r.q, "insert truck", "trucks", truckCols,
		t.ID, t.OrganizationID, t.Plate, t.Model, t.CapacityM3, t.Active, t.CreatedAt)
}

func (r *TruckRepo) GetByID(ctx context.Context, orgID, id string) (*entity.Truck, error) {
	return getOne[entity.Truck](ctx, r.q, "get truck",
		psql.Select(truckCols...).From("trucks").Where(sq.Eq{"id": id, "organization_id": orgID}))
}

func (r *TruckRepo) List(ctx context.Context, orgID string, f repository.ListFilter) ([]*entity.Truck, error) {
	return getMany[entity.Truck](ctx, r.q, "list trucks",
		scopedList(psql.Select(truckCols...).From("trucks"), orgID, f, "", "created_at"))
}

// DriverRepo motoristas.
type DriverRepo struct {
	q Querier
}

// NewDriverRepository construye el repo. Pasar pool o tx.
func NewDriverRepository(q Querier) *DriverRepo {
	return &DriverRepo{q: q}
}

func (r *DriverRepo) Create(ctx context.Context, d *entity.Driver) error {
	return insert(ctx, r.q, "insert driver", "drivers", driverCols,
		d.ID, d.OrganizationID, d.Name, d.License, d.Phone, d.Active, d.CreatedAt)
}

func (r *DriverRepo) GetByID(ctx context.Context, orgID, id string) (*entity.Driver, error) {
	return getOne[entity.Driver](ctx, r.q, "get driver",
		psql.Select(driverCols...).From("drivers").Where(sq.Eq{"id": id, "organization_id": orgID}))
}

func (r *DriverRepo) List(ctx context.Context, orgID string, f repository.ListFilter) ([]*entity.Driver, error) {
	return getMany[entity.Driver](ctx, r.q, "list drivers",
		scopedList(psql.Select(driverCols...).From("drivers"), orgID, f, "", "created_at"))
}
