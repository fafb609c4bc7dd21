package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/concretera-erp/internal/application/dto"
	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

// ClientUseCase CRUD de clientes. No hay borrado: quotes y orçamentos los referencian.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un cliente. Kind por defecto: externo.
func (uc *ClientUseCase) Create(ctx context.Context, orgID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Validation("name_required")
	}
	kind := in.Kind
	if kind == "" {
		kind = entity.ClientKindExternal
	}
	if kind != entity.ClientKindExternal && kind != entity.ClientKindInternal {
		return nil, domain.Validation("invalid_client_kind")
	}
	now := time.Now()
	c := &entity.Client{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Name:           strings.TrimSpace(in.Name),
		Kind:           kind,
		Document:       in.Document,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
		City:           in.City,
		State:          strings.ToUpper(in.State),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// GetByID obtiene un cliente de la organización.
func (uc *ClientUseCase) GetByID(ctx context.Context, orgID, id string) (*dto.ClientResponse, error) {
	c, err := uc.get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// Update aplica solo los campos enviados.
func (uc *ClientUseCase) Update(ctx context.Context, orgID, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	c, err := uc.get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.Validation("name_required")
		}
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Kind != nil {
		if *in.Kind != entity.ClientKindExternal && *in.Kind != entity.ClientKindInternal {
			return nil, domain.Validation("invalid_client_kind")
		}
		c.Kind = *in.Kind
	}
	if in.Document != nil {
		c.Document = *in.Document
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Address != nil {
		c.Address = *in.Address
	}
	if in.City != nil {
		c.City = *in.City
	}
	if in.State != nil {
		c.State = strings.ToUpper(*in.State)
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// List lista clientes; Status del filtro = tipo.
func (uc *ClientUseCase) List(ctx context.Context, orgID string, f repository.ListFilter) (*dto.ClientListResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, orgID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return &dto.ClientListResponse{Items: items, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset}}, nil
}

func (uc *ClientUseCase) get(ctx context.Context, orgID, id string) (*entity.Client, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:             c.ID,
		OrganizationID: c.OrganizationID,
		Name:           c.Name,
		Kind:           c.Kind,
		Document:       c.Document,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		City:           c.City,
		State:          c.State,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
