package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

var (
	_ repository.RawMaterialRepository       = (*rawMaterialRepo)(nil)
	_ repository.InventoryMovementRepository = (*movementRepo)(nil)
)

func orgOfRawMaterial(m *entity.RawMaterial) string { return m.OrganizationID }

type rawMaterialRepo struct{ db access }

func (r *rawMaterialRepo) Create(_ context.Context, m *entity.RawMaterial) error {
	return r.db.with(func(st *state) error { return insert(st.rawMaterials, m.ID, *m) })
}

func (r *rawMaterialRepo) GetByID(_ context.Context, orgID, id string) (*entity.RawMaterial, error) {
	var out *entity.RawMaterial
	err := r.db.with(func(st *state) error {
		out = scoped(st.rawMaterials, orgID, id, orgOfRawMaterial)
		return nil
	})
	return out, err
}

func (r *rawMaterialRepo) GetForUpdate(ctx context.Context, orgID, id string) (*entity.RawMaterial, error) {
	return r.GetByID(ctx, orgID, id)
}

func (r *rawMaterialRepo) List(_ context.Context, orgID string, f repository.ListFilter) ([]*entity.RawMaterial, error) {
	var out []*entity.RawMaterial
	err := r.db.with(func(st *state) error {
		out = collect(st.rawMaterials,
			func(m *entity.RawMaterial) bool { return m.OrganizationID == orgID && inWindow(m.CreatedAt, f) },
			func(a, b *entity.RawMaterial) bool { return a.Name < b.Name },
			f.Limit, f.Offset)
		return nil
	})
	return out, err
}

func (r *rawMaterialRepo) ListBelowMinimum(_ context.Context, orgID string) ([]*entity.RawMaterial, error) {
	var out []*entity.RawMaterial
	err := r.db.with(func(st *state) error {
		out = collect(st.rawMaterials,
			func(m *entity.RawMaterial) bool { return m.OrganizationID == orgID && m.BelowMinimum() },
			func(a, b *entity.RawMaterial) bool { return a.Name < b.Name },
			0, 0)
		return nil
	})
	return out, err
}

// AdjustStock aplica delta bajo el lock del store: equivalente al UPDATE condicional de Postgres.
func (r *rawMaterialRepo) AdjustStock(_ context.Context, orgID, id string, delta decimal.Decimal) (*entity.RawMaterial, error) {
	var out *entity.RawMaterial
	err := r.db.with(func(st *state) error {
		m := scoped(st.rawMaterials, orgID, id, orgOfRawMaterial)
		if m == nil {
			return domain.ErrNotFound
		}
		next := m.CurrentStock.Add(delta)
		if next.IsNegative() {
			return &domain.InsufficientStockError{Material: m.Name, Required: delta.Neg(), Available: m.CurrentStock}
		}
		m.CurrentStock = next
		st.rawMaterials[id] = *m
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type movementRepo struct{ db access }

func (r *movementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	return r.db.with(func(st *state) error {
		if scoped(st.rawMaterials, m.OrganizationID, m.RawMaterialID, orgOfRawMaterial) == nil {
			return errParentMissing("materia_prima", m.RawMaterialID)
		}
		return insert(st.movements, m.ID, *m)
	})
}

func (r *movementRepo) ListByMaterial(_ context.Context, orgID, materialID string, f repository.ListFilter) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	err := r.db.with(func(st *state) error {
		out = collect(st.movements,
			func(m *entity.InventoryMovement) bool {
				return m.OrganizationID == orgID && m.RawMaterialID == materialID &&
					statusMatches(m.Type, f) && inWindow(m.CreatedAt, f)
			},
			func(a, b *entity.InventoryMovement) bool { return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID) },
			f.Limit, f.Offset)
		return nil
	})
	return out, err
}

func (r *movementRepo) ListByReference(_ context.Context, orgID, reference string) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	err := r.db.with(func(st *state) error {
		out = collect(st.movements,
			func(m *entity.InventoryMovement) bool { return m.OrganizationID == orgID && m.Reference == reference },
			func(a, b *entity.InventoryMovement) bool { return a.RawMaterialID < b.RawMaterialID },
			0, 0)
		return nil
	})
	return out, err
}
