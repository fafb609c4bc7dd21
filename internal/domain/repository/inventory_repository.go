package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/concretera-erp/internal/domain/entity"
)

// RawMaterialRepository puerto para materias primas.
// El saldo solo cambia con AdjustStock (salvo el valor inicial de Create).
type RawMaterialRepository interface {
	Create(ctx context.Context, m *entity.RawMaterial) error
	GetByID(ctx context.Context, orgID, id string) (*entity.RawMaterial, error)
	// GetForUpdate bloquea la fila. Con varias materias, llamar en orden ascendente de id.
	GetForUpdate(ctx context.Context, orgID, id string) (*entity.RawMaterial, error)
	List(ctx context.Context, orgID string, f ListFilter) ([]*entity.RawMaterial, error)
	// ListBelowMinimum materias con estoque_atual <= estoque_minimo.
	ListBelowMinimum(ctx context.Context, orgID string) ([]*entity.RawMaterial, error)
	// AdjustStock suma delta (con signo) en una única actualización condicional.
	// Devuelve ErrNotFound si la materia no existe y ErrInsufficientStock si el saldo quedaría negativo.
	AdjustStock(ctx context.Context, orgID, id string, delta decimal.Decimal) (*entity.RawMaterial, error)
}

// InventoryMovementRepository ledger de movimientos, solo append.
type InventoryMovementRepository interface {
	Create(ctx context.Context, m *entity.InventoryMovement) error
	ListByMaterial(ctx context.Context, orgID, materialID string, f ListFilter) ([]*entity.InventoryMovement, error)
	ListByReference(ctx context.Context, orgID, reference string) ([]*entity.InventoryMovement, error)
}
