// Package inventory implementa el ledger de materias primas: alta, entradas manuales,
// baixas por producción y la lista de reposición.
package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/concretera-erp/internal/application/dto"
	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

// MovementInput un cambio de saldo. Quantity siempre positiva; Type decide el signo.
type MovementInput struct {
	OrganizationID string
	RawMaterialID  string
	Type           string
	Quantity       decimal.Decimal
	Reference      string
	Description    string
	UserID         string
	At             time.Time
}

// Record registra el movimiento en el ledger y ajusta el saldo con la actualización condicional
// del repositorio. Debe llamarse con los repos de una transacción: ambos cambios confirman juntos.
func Record(ctx context.Context, r repository.Repos, in MovementInput) (*entity.InventoryMovement, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.Validation("quantity_must_be_positive")
	}
	var delta decimal.Decimal
	switch in.Type {
	case entity.MovementTypeEntrada:
		delta = in.Quantity
	case entity.MovementTypeSaida:
		delta = in.Quantity.Neg()
	default:
		return nil, domain.Validation("invalid_movement_type")
	}
	if in.At.IsZero() {
		in.At = time.Now()
	}

	if _, err := r.RawMaterials.AdjustStock(ctx, in.OrganizationID, in.RawMaterialID, delta); err != nil {
		return nil, err
	}
	mov := &entity.InventoryMovement{
		ID:             uuid.New().String(),
		OrganizationID: in.OrganizationID,
		RawMaterialID:  in.RawMaterialID,
		Type:           in.Type,
		Quantity:       in.Quantity,
		Reference:      in.Reference,
		Description:    in.Description,
		CreatedBy:      in.UserID,
		CreatedAt:      in.At,
	}
	if err := r.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// ToMovementResponse convierte un movimiento en DTO.
func ToMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		RawMaterialID: m.RawMaterialID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		Reference:     m.Reference,
		Description:   m.Description,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}

// ToRawMaterialResponse convierte una materia prima en DTO.
func ToRawMaterialResponse(m *entity.RawMaterial) *dto.RawMaterialResponse {
	return &dto.RawMaterialResponse{
		ID:           m.ID,
		Name:         m.Name,
		Unit:         m.Unit,
		CurrentStock: m.CurrentStock,
		MinimumStock: m.MinimumStock,
		BelowMinimum: m.BelowMinimum(),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
