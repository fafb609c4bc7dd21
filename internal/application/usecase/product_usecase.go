package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/concretera-erp/internal/application/dto"
	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

// ProductUseCase CRUD de productos. costo_m3 > preço_m3 se permite (venta a pérdida).
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto activo. Unit por defecto: m3.
func (uc *ProductUseCase) Create(ctx context.Context, orgID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Validation("name_required")
	}
	if !entity.ValidProductCategory(in.Category) {
		return nil, domain.Validation("invalid_category")
	}
	if err := validPrices(in.PriceM3, in.CostM3); err != nil {
		return nil, err
	}
	unit := in.Unit
	if unit == "" {
		unit = "m3"
	}
	now := time.Now()
	p := &entity.Product{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Name:           strings.TrimSpace(in.Name),
		Category:       in.Category,
		PriceM3:        in.PriceM3,
		CostM3:         in.CostM3,
		Unit:           unit,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return ToProductResponse(p), nil
}

// GetByID obtiene un producto de la organización.
func (uc *ProductUseCase) GetByID(ctx context.Context, orgID, id string) (*dto.ProductResponse, error) {
	p, err := uc.get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(p), nil
}

// Update actualiza un producto. Los orçamentos ya creados no cambian: guardan su propio snapshot.
func (uc *ProductUseCase) Update(ctx context.Context, orgID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.Validation("name_required")
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		if !entity.ValidProductCategory(*in.Category) {
			return nil, domain.Validation("invalid_category")
		}
		p.Category = *in.Category
	}
	if in.PriceM3 != nil {
		p.PriceM3 = *in.PriceM3
	}
	if in.CostM3 != nil {
		p.CostM3 = *in.CostM3
	}
	if err := validPrices(p.PriceM3, p.CostM3); err != nil {
		return nil, err
	}
	if in.Unit != nil {
		p.Unit = *in.Unit
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return ToProductResponse(p), nil
}

// List lista productos; Status del filtro = categoría.
func (uc *ProductUseCase) List(ctx context.Context, orgID string, f repository.ListFilter) (*dto.ProductListResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, orgID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset}}, nil
}

func (uc *ProductUseCase) get(ctx context.Context, orgID, id string) (*entity.Product, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func validPrices(price, cost decimal.Decimal) error {
	if price.IsNegative() {
		return domain.Validation("negative_price_m3")
	}
	if cost.IsNegative() {
		return domain.Validation("negative_cost_m3")
	}
	return nil
}

// ToProductResponse convierte la entidad en DTO.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:             p.ID,
		OrganizationID: p.OrganizationID,
		Name:           p.Name,
		Category:       p.Category,
		PriceM3:        p.PriceM3,
		CostM3:         p.CostM3,
		Unit:           p.Unit,
		Active:         p.Active,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
