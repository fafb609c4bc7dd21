package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

var (
	_ repository.OrganizationRepository = (*organizationRepo)(nil)
	_ repository.UserRepository         = (*userRepo)(nil)
	_ repository.ClientRepository       = (*clientRepo)(nil)
	_ repository.ProductRepository      = (*productRepo)(nil)
	_ repository.TruckRepository        = (*truckRepo)(nil)
	_ repository.DriverRepository       = (*driverRepo)(nil)
)

func orgOfClient(c *entity.Client) string   { return c.OrganizationID }
func orgOfProduct(p *entity.Product) string { return p.OrganizationID }
func orgOfTruck(t *entity.Truck) string     { return t.OrganizationID }
func orgOfDriver(d *entity.Driver) string   { return d.OrganizationID }

type organizationRepo struct{ db access }

func (r *organizationRepo) Create(_ context.Context, org *entity.Organization) error {
	return r.db.with(func(st *state) error { return insert(st.organizations, org.ID, *org) })
}

func (r *organizationRepo) GetByID(_ context.Context, id string) (*entity.Organization, error) {
	var out *entity.Organization
	err := r.db.with(func(st *state) error {
		if v, ok := st.organizations[id]; ok {
			out = &v
		}
		return nil
	})
	return out, err
}

func (r *organizationRepo) List(_ context.Context, limit, offset int) ([]*entity.Organization, error) {
	var out []*entity.Organization
	err := r.db.with(func(st *state) error {
		out = collect(st.organizations,
			func(*entity.Organization) bool { return true },
			func(a, b *entity.Organization) bool { return a.Name < b.Name },
			limit, offset)
		return nil
	})
	return out, err
}

type userRepo struct{ db access }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	return r.db.with(func(st *state) error {
		for _, existing := range st.users {
			if strings.EqualFold(existing.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		return insert(st.users, u.ID, *u)
	})
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.db.with(func(st *state) error {
		if v, ok := st.users[id]; ok {
			out = &v
		}
		return nil
	})
	return out, err
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.db.with(func(st *state) error {
		for _, v := range st.users {
			if strings.EqualFold(v.Email, email) {
				out = &v
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *userRepo) ListByOrganization(_ context.Context, orgID string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	err := r.db.with(func(st *state) error {
		out = collect(st.users,
			func(u *entity.User) bool { return u.OrganizationID == orgID },
			func(a, b *entity.User) bool { return a.Email < b.Email },
			limit, offset)
		return nil
	})
	return out, err
}

type clientRepo struct{ db access }

func (r *clientRepo) Create(_ context.Context, c *entity.Client) error {
	return r.db.with(func(st *state) error { return insert(st.clients, c.ID, *c) })
}

func (r *clientRepo) Update(_ context.Context, c *entity.Client) error {
	return r.db.with(func(st *state) error {
		return replace(st.clients, c.OrganizationID, c.ID, *c, orgOfClient)
	})
}

func (r *clientRepo) GetByID(_ context.Context, orgID, id string) (*entity.Client, error) {
	var out *entity.Client
	err := r.db.with(func(st *state) error {
		out = scoped(st.clients, orgID, id, orgOfClient)
		return nil
	})
	return out, err
}

func (r *clientRepo) List(_ context.Context, orgID string, f repository.ListFilter) ([]*entity.Client, error) {
	var out []*entity.Client
	err := r.db.with(func(st *state) error {
		out = collect(st.clients,
			func(c *entity.Client) bool {
				return c.OrganizationID == orgID && statusMatches(c.Kind, f) && inWindow(c.CreatedAt, f)
			},
			func(a, b *entity.Client) bool { return a.Name < b.Name },
			f.Limit, f.Offset)
		return nil
	})
	return out, err
}

type productRepo struct{ db access }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	return r.db.with(func(st *state) error { return insert(st.products, p.ID, *p) })
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	return r.db.with(func(st *state) error {
		return replace(st.products, p.OrganizationID, p.ID, *p, orgOfProduct)
	})
}

func (r *productRepo) GetByID(_ context.Context, orgID, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.db.with(func(st *state) error {
		out = scoped(st.products, orgID, id, orgOfProduct)
		return nil
	})
	return out, err
}

func (r *productRepo) List(_ context.Context, orgID string, f repository.ListFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.db.with(func(st *state) error {
		out = collect(st.products,
			func(p *entity.Product) bool {
				return p.OrganizationID == orgID && statusMatches(p.Category, f) && inWindow(p.CreatedAt, f)
			},
			func(a, b *entity.Product) bool { return a.Name < b.Name },
			f.Limit, f.Offset)
		return nil
	})
	return out, err
}

type truckRepo struct{ db access }

func (r *truckRepo) Create(_ context.Context, t *entity.Truck) error {
	return r.db.with(func(st *state) error { return insert(st.trucks, t.ID, *t) })
}

func (r *truckRepo) GetByID(_ context.Context, orgID, id string) (*entity.Truck, error) {
	var out *entity.Truck
	err := r.db.with(func(st *state) error {
		out = scoped(st.trucks, orgID, id, orgOfTruck)
		return nil
	})
	return out, err
}

func (r *truckRepo) List(_ context.Context, orgID string, f repository.ListFilter) ([]*entity.Truck, error) {
	var out []*entity.Truck
	err := r.db.with(func(st *state) error {
		out = collect(st.trucks,
			func(t *entity.Truck) bool { return t.OrganizationID == orgID && inWindow(t.CreatedAt, f) },
			func(a, b *entity.Truck) bool { return a.Plate < b.Plate },
			f.Limit, f.Offset)
		return nil
	})
	return out, err
}

type driverRepo struct{ db access }

func (r *driverRepo) Create(_ context.Context, d *entity.Driver) error {
	return r.db.with(func(st *state) error { return insert(st.drivers, d.ID, *d) })
}

func (r *driverRepo) GetByID(_ context.Context, orgID, id string) (*entity.Driver, error) {
	var out *entity.Driver
	err := r.db.with(func(st *state) error {
		out = scoped(st.drivers, orgID, id, orgOfDriver)
		return nil
	})
	return out, err
}

func (r *driverRepo) List(_ context.Context, orgID string, f repository.ListFilter) ([]*entity.Driver, error) {
	var out []*entity.Driver
	err := r.db.with(func(st *state) error {
		out = collect(st.drivers,
			func(d *entity.Driver) bool { return d.OrganizationID == orgID && inWindow(d.CreatedAt, f) },
			func(a, b *entity.Driver) bool { return a.Name < b.Name },
			f.Limit, f.Offset)
		return nil
	})
	return out, err
}
