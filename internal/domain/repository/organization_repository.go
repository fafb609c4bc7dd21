package repository

import (
	"context"

	"github.com/jhoicas/concretera-erp/internal/domain/entity"
)

// OrganizationRepository define el puerto de persistencia para Organization (DIP).
// Es la única colección que no se filtra por organization_id.
type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	GetByID(ctx context.Context, id string) (*entity.Organization, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Organization, error)
}

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail busca en todas las organizaciones (el email es único globalmente).
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListByOrganization(ctx context.Context, orgID string, limit, offset int) ([]*entity.User, error)
}
