package repository

import (
	"context"

	"github.com/jhoicas/concretera-erp/internal/domain/entity"
)

// ClientRepository puerto de persistencia para clientes. Status del filtro = tipo (interno/externo).
type ClientRepository interface {
	Create(ctx context.Context, c *entity.Client) error
	Update(ctx context.Context, c *entity.Client) error
	GetByID(ctx context.Context, orgID, id string) (*entity.Client, error)
	List(ctx context.Context, orgID string, f ListFilter) ([]*entity.Client, error)
}

// ProductRepository puerto de persistencia para productos. Status del filtro = categoría.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, orgID, id string) (*entity.Product, error)
	List(ctx context.Context, orgID string, f ListFilter) ([]*entity.Product, error)
}

// TruckRepository puerto de persistencia para caminhões.
type TruckRepository interface {
	Create(ctx context.Context, t *entity.Truck) error
	GetByID(ctx context.Context, orgID, id string) (*entity.Truck, error)
	List(ctx context.Context, orgID string, f ListFilter) ([]*entity.Truck, error)
}

// DriverRepository puerto de persistencia para motoristas.
type DriverRepository interface {
	Create(ctx context.Context, d *entity.Driver) error
	GetByID(ctx context.Context, orgID, id string) (*entity.Driver, error)
	List(ctx context.Context, orgID string, f ListFilter) ([]*entity.Driver, error)
}
