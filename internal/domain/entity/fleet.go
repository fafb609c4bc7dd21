package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Truck caminhão betoneira o de carga.
type Truck struct {
	ID             string          `db:"id"`
	OrganizationID string          `db:"organization_id"`
	Plate          string          `db:"placa"`
	Model          string          `db:"modelo"`
	CapacityM3     decimal.Decimal `db:"capacidade_m3"`
	Active         bool            `db:"ativo"`
	CreatedAt      time.Time       `db:"created_at"`
}

// Driver motorista.
type Driver struct {
	ID             string    `db:"id"`
	OrganizationID string    `db:"organization_id"`
	Name           string    `db:"nome"`
	License        string    `db:"cnh"`
	Phone          string    `db:"telefone"`
	Active         bool      `db:"ativo"`
	CreatedAt      time.Time `db:"created_at"`
}
