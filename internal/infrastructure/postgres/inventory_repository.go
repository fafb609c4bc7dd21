package postgres

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

var (
	_ repository.RawMaterialRepository       = (*RawMaterialRepo)(nil)
	_ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)
)

var (
	rawMaterialCols = []string{"id", "organization_id", "nome", "unidade", "estoque_atual", "estoque_minimo",
		"created_at", "updated_at"}
	movementCols = []string{"id", "organization_id", "materia_prima_id", "tipo", "quantidade", "referencia",
		"descricao", "created_by", "created_at"}
)

// adjustStockSQL suma delta solo si el saldo resultante no queda negativo. Una sola sentencia:
// dos finalizaciones concurrentes sobre la misma materia no pierden actualizaciones.
var adjustStockSQL = `
	UPDATE raw_materials
	SET estoque_atual = estoque_atual + $3, updated_at = now()
	WHERE id = $1 AND organization_id = $2 AND estoque_atual + $3 >= 0
	RETURNING ` + strings.Join(rawMaterialCols, ", ")

// RawMaterialRepo materias primas.
type RawMaterialRepo struct {
	q Querier
}

// NewRawMaterialRepository construye el repo. Pasar pool o tx.
func NewRawMaterialRepository(q Querier) *RawMaterialRepo {
	return &RawMaterialRepo{q: q}
}

func (r *RawMaterialRepo) Create(ctx context.Context, m *entity.RawMaterial) error {
	return insert(ctx, r.q, "insert raw material", "raw_materials", rawMaterialCols,
		m.ID, m.OrganizationID, m.Name, m.Unit, m.CurrentStock, m.MinimumStock, m.CreatedAt, m.UpdatedAt)
}

func (r *RawMaterialRepo) GetByID(ctx context.Context, orgID, id string) (*entity.RawMaterial, error) {
	return getOne[entity.RawMaterial](ctx, r.q, "get raw material", r.byID(orgID, id))
}

func (r *RawMaterialRepo) GetForUpdate(ctx context.Context, orgID, id string) (*entity.RawMaterial, error) {
	return getOne[entity.RawMaterial](ctx, r.q, "lock raw material", r.byID(orgID, id).Suffix("FOR UPDATE"))
}

func (r *RawMaterialRepo) List(ctx context.Context, orgID string, f repository.ListFilter) ([]*entity.RawMaterial, error) {
	b := psql.Select(rawMaterialCols...).From("raw_materials").Where(sq.Eq{"organization_id": orgID})
	if f.From != nil {
		b = b.Where(sq.GtOrEq{"created_at": *f.From})
	}
	if f.To != nil {
		b = b.Where(sq.Lt{"created_at": *f.To})
	}
	b = b.OrderBy("nome", "id")
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}
	return getMany[entity.RawMaterial](ctx, r.q, "list raw materials", b)
}

func (r *RawMaterialRepo) ListBelowMinimum(ctx context.Context, orgID string) ([]*entity.RawMaterial, error) {
	return getMany[entity.RawMaterial](ctx, r.q, "list raw materials below minimum",
		psql.Select(rawMaterialCols...).From("raw_materials").
			Where(sq.Eq{"organization_id": orgID}).
			Where("estoque_atual <= estoque_minimo").
			OrderBy("nome"))
}

// AdjustStock aplica delta con el UPDATE condicional. Sin fila afectada distingue entre
// materia inexistente (ErrNotFound) y saldo insuficiente (InsufficientStockError).
func (r *RawMaterialRepo) AdjustStock(ctx context.Context, orgID, id string, delta decimal.Decimal) (*entity.RawMaterial, error) {
	var m entity.RawMaterial
	err := pgxscan.Get(ctx, r.q, &m, adjustStockSQL, id, orgID, delta)
	if err == nil {
		return &m, nil
	}
	if !pgxscan.NotFound(err) {
		return nil, fmt.Errorf("adjust stock: %w", err)
	}
	cur, gerr := r.GetByID(ctx, orgID, id)
	if gerr != nil {
		return nil, gerr
	}
	if cur == nil {
		return nil, fmt.Errorf("adjust stock %s: %w", id, domain.ErrNotFound)
	}
	return nil, &domain.InsufficientStockError{
		Material:  cur.Name,
		Required:  delta.Neg(),
		Available: cur.CurrentStock,
	}
}

func (r *RawMaterialRepo) byID(orgID, id string) sq.SelectBuilder {
	return psql.Select(rawMaterialCols...).From("raw_materials").Where(sq.Eq{"id": id, "organization_id": orgID})
}

// InventoryMovementRepo ledger de estoque. Solo inserciones.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el repo. Pasar pool o tx.
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	return insert(ctx, r.q, "insert inventory movement", "inventory_movements", movementCols,
		m.ID, m.OrganizationID, m.RawMaterialID, m.Type, m.Quantity, m.Reference, m.Description, m.CreatedBy, m.CreatedAt)
}

// ListByMaterial Status filtra por tipo (entrada/saida).
func (r *InventoryMovementRepo) ListByMaterial(ctx context.Context, orgID, materialID string, f repository.ListFilter) ([]*entity.InventoryMovement, error) {
	b := psql.Select(movementCols...).From("inventory_movements").Where(sq.Eq{"materia_prima_id": materialID})
	return getMany[entity.InventoryMovement](ctx, r.q, "list movements",
		scopedList(b, orgID, f, "tipo", "created_at"))
}

func (r *InventoryMovementRepo) ListByReference(ctx context.Context, orgID, reference string) ([]*entity.InventoryMovement, error) {
	return getMany[entity.InventoryMovement](ctx, r.q, "list movements by reference",
		psql.Select(movementCols...).From("inventory_movements").
			Where(sq.Eq{"referencia": reference, "organization_id": orgID}).
			OrderBy("materia_prima_id", "created_at"))
}
