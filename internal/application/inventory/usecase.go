package inventory

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

// InventoryUseCase materias primas y entradas manuales de estoque.
type InventoryUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(txRunner repository.TxRunner, repos repository.Repos) *InventoryUseCase {
	return &InventoryUseCase{txRunner: txRunner, repos: repos}
}

// CreateRawMaterial da de alta una materia prima. Es la única escritura directa de estoque_atual.
func (uc *InventoryUseCase) CreateRawMaterial(ctx context.Context, orgID string, in dto.CreateRawMaterialRequest) (*dto.RawMaterialResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Unit) == "" {
		return nil, domain.Validation("name_and_unit_required")
	}
	if in.InitialStock.IsNegative() || in.MinimumStock.IsNegative() {
		return nil, domain.Validation("negative_stock")
	}
	now := time.Now()
	m := &entity.RawMaterial{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Name:           strings.TrimSpace(in.Name),
		Unit:           strings.TrimSpace(in.Unit),
		CurrentStock:   in.InitialStock,
		MinimumStock:   in.MinimumStock,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repos.RawMaterials.Create(ctx, m); err != nil {
		return nil, err
	}
	return ToRawMaterialResponse(m), nil
}

// GetRawMaterial obtiene una materia prima.
func (uc *InventoryUseCase) GetRawMaterial(ctx context.Context, orgID, id string) (*dto.RawMaterialResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	m, err := uc.repos.RawMaterials.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return ToRawMaterialResponse(m), nil
}

// ListRawMaterials lista materias primas por nombre.
func (uc *InventoryUseCase) ListRawMaterials(ctx context.Context, orgID string, f repository.ListFilter) (*dto.RawMaterialListResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	list, err := uc.repos.RawMaterials.List(ctx, orgID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RawMaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *ToRawMaterialResponse(m))
	}
	return &dto.RawMaterialListResponse{Items: items, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset}}, nil
}

// AddStock registra una entrada manual (quantity > 0) y devuelve el saldo resultante.
func (uc *InventoryUseCase) AddStock(ctx context.Context, orgID, userID, materialID string, in dto.AddStockRequest) (*dto.RawMaterialResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.Validation("quantity_must_be_positive")
	}
	var out *entity.RawMaterial
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		if _, err := Record(ctx, r, MovementInput{
			OrganizationID: orgID,
			RawMaterialID:  materialID,
			Type:           entity.MovementTypeEntrada,
			Quantity:       in.Quantity,
			Reference:      in.Reference,
			Description:    in.Description,
			UserID:         userID,
		}); err != nil {
			return err
		}
		m, err := r.RawMaterials.GetByID(ctx, orgID, materialID)
		if err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToRawMaterialResponse(out), nil
}

// ListMovements lista el ledger de una materia prima. Status del filtro = tipo (entrada/saida).
func (uc *InventoryUseCase) ListMovements(ctx context.Context, orgID, materialID string, f repository.ListFilter) (*dto.MovementListResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	m, err := uc.repos.RawMaterials.GetByID(ctx, orgID, materialID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repos.Movements.ListByMaterial(ctx, orgID, materialID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, mov := range list {
		items = append(items, ToMovementResponse(mov))
	}
	return &dto.MovementListResponse{Items: items, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset}}, nil
}
