package entity

import "time"

// Tipos de cliente.
const (
	ClientKindInternal = "interno"
	ClientKindExternal = "externo"
)

// Client comprador de la organización. Nunca se borra: lo referencian orçamentos y pedidos.
type Client struct {
	ID             string    `db:"id"`
	OrganizationID string    `db:"organization_id"`
	Name           string    `db:"nome"`
	Kind           string    `db:"tipo"`
	Document       string    `db:"documento"` // CPF/CNPJ
	Email          string    `db:"email"`
	Phone          string    `db:"telefone"`
	Address        string    `db:"endereco"`
	City           string    `db:"cidade"`
	State          string    `db:"estado"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
