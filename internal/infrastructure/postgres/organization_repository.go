package postgres

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

var (
	_ repository.OrganizationRepository = (*OrganizationRepo)(nil)
	_ repository.UserRepository         = (*UserRepo)(nil)
)

var (
	organizationCols = []string{"id", "name", "document", "email", "phone", "status", "created_at", "updated_at"}
	userCols         = []string{"id", "organization_id", "email", "password_hash", "name", "role", "status", "created_at", "updated_at"}
)

// OrganizationRepo organizaciones (tenants). Única tabla sin organization_id.
type OrganizationRepo struct {
	q Querier
}

// NewOrganizationRepository construye el repo. Pasar pool o tx.
func NewOrganizationRepository(q Querier) *OrganizationRepo {
	return &OrganizationRepo{q: q}
}

func (r *OrganizationRepo) Create(ctx context.Context, o *entity.Organization) error {
	return insert(ctx, r.q, "insert organization", "organizations", organizationCols,
		o.ID, o.Name, o.Document, o.Email, o.Phone, o.Status, o.CreatedAt, o.UpdatedAt)
}

func (r *OrganizationRepo) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	return getOne[entity.Organization](ctx, r.q, "get organization",
		psql.Select(organizationCols...).From("organizations").Where(sq.Eq{"id": id}))
}

func (r *OrganizationRepo) List(ctx context.Context, limit, offset int) ([]*entity.Organization, error) {
	b := psql.Select(organizationCols...).From("organizations").OrderBy("created_at DESC", "id")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	if offset > 0 {
		b = b.Offset(uint64(offset))
	}
	return getMany[entity.Organization](ctx, r.q, "list organizations", b)
}

// UserRepo usuarios. El email es único global: el login no conoce la organización.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el repo. Pasar pool o tx.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	return insert(ctx, r.q, "insert user", "users", userCols,
		u.ID, u.OrganizationID, strings.ToLower(u.Email), u.PasswordHash, u.Name, u.Role, u.Status, u.CreatedAt, u.UpdatedAt)
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return getOne[entity.User](ctx, r.q, "get user",
		psql.Select(userCols...).From("users").Where(sq.Eq{"id": id}))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return getOne[entity.User](ctx, r.q, "get user by email",
		psql.Select(userCols...).From("users").Where(sq.Eq{"email": strings.ToLower(email)}))
}

func (r *UserRepo) ListByOrganization(ctx context.Context, orgID string, limit, offset int) ([]*entity.User, error) {
	return getMany[entity.User](ctx, r.q, "list users",
		scopedList(psql.Select(userCols...).From("users"), orgID,
			repository.ListFilter{Limit: limit, Offset: offset}, "", "created_at"))
}
