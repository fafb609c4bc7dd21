package production

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/concretera-erp/internal/application/dto"
	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

// RecipeUseCase mantenimiento del traço de cada producto. Sin versionado: cada edición lo reemplaza.
type RecipeUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(txRunner repository.TxRunner, repos repository.Repos) *RecipeUseCase {
	return &RecipeUseCase{txRunner: txRunner, repos: repos}
}

// Get devuelve el traço del producto (vacío si no está definido).
func (uc *RecipeUseCase) Get(ctx context.Context, orgID, productID string) (*dto.RecipeResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	p, err := uc.repos.Products.GetByID(ctx, orgID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.repos.Recipes.ListByProduct(ctx, orgID, productID)
	if err != nil {
		return nil, err
	}
	return uc.toRecipeResponse(ctx, orgID, productID, items, uc.repos.RawMaterials)
}

// Replace borra el traço actual e inserta el nuevo en una transacción.
// Cada línea exige cantidad > 0 y una materia prima existente; no se repiten materias.
func (uc *RecipeUseCase) Replace(ctx context.Context, orgID, productID string, in dto.ReplaceRecipeRequest) (*dto.RecipeResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(in.Items))
	for _, it := range in.Items {
		if it.RawMaterialID == "" {
			return nil, domain.Validation("raw_material_required")
		}
		if !it.QuantityPerM3.IsPositive() {
			return nil, domain.Validation("quantity_must_be_positive")
		}
		if seen[it.RawMaterialID] {
			return nil, domain.Validation("duplicated_raw_material")
		}
		seen[it.RawMaterialID] = true
	}

	var res *dto.RecipeResponse
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		p, err := r.Products.GetByID(ctx, orgID, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if err := r.Recipes.DeleteByProduct(ctx, orgID, productID); err != nil {
			return err
		}
		now := time.Now()
		for _, it := range in.Items {
			m, err := r.RawMaterials.GetByID(ctx, orgID, it.RawMaterialID)
			if err != nil {
				return err
			}
			if m == nil {
				return domain.ErrNotFound
			}
			if err := r.Recipes.Create(ctx, &entity.RecipeItem{
				ID:             uuid.New().String(),
				OrganizationID: orgID,
				ProductID:      productID,
				RawMaterialID:  it.RawMaterialID,
				QuantityPerM3:  it.QuantityPerM3,
				CreatedAt:      now,
			}); err != nil {
				return err
			}
		}
		items, err := r.Recipes.ListByProduct(ctx, orgID, productID)
		if err != nil {
			return err
		}
		res, err = uc.toRecipeResponse(ctx, orgID, productID, items, r.RawMaterials)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (uc *RecipeUseCase) toRecipeResponse(ctx context.Context, orgID, productID string, items []*entity.RecipeItem, materials repository.RawMaterialRepository) (*dto.RecipeResponse, error) {
	res := &dto.RecipeResponse{ProductID: productID, Items: make([]dto.RecipeItemResponse, 0, len(items))}
	for _, it := range items {
		line := dto.RecipeItemResponse{RawMaterialID: it.RawMaterialID, QuantityPerM3: it.QuantityPerM3}
		m, err := materials.GetByID(ctx, orgID, it.RawMaterialID)
		if err != nil {
			return nil, err
		}
		if m != nil {
			line.RawMaterialName = m.Name
			line.Unit = m.Unit
		}
		res.Items = append(res.Items, line)
	}
	return res, nil
}
