package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Kind     string `json:"kind" validate:"omitempty,oneof=interno externo"`
	Document string `json:"document"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state" validate:"omitempty,max=2"`
}

// UpdateClientRequest body para PUT /api/clients/:id (campos opcionales).
type UpdateClientRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Kind     *string `json:"kind" validate:"omitempty,oneof=interno externo"`
	Document *string `json:"document"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	State    *string `json:"state" validate:"omitempty,max=2"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Kind           string    `json:"kind"`
	Document       string    `json:"document"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ClientListResponse lista paginada de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Category string          `json:"category" validate:"required,oneof=concreto manilha pre-moldado"`
	PriceM3  decimal.Decimal `json:"price_m3"`
	CostM3   decimal.Decimal `json:"cost_m3"`
	Unit     string          `json:"unit" validate:"omitempty,max=10"`
}

// UpdateProductRequest body para PUT /api/products/:id.
type UpdateProductRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category *string          `json:"category" validate:"omitempty,oneof=concreto manilha pre-moldado"`
	PriceM3  *decimal.Decimal `json:"price_m3"`
	CostM3   *decimal.Decimal `json:"cost_m3"`
	Unit     *string          `json:"unit" validate:"omitempty,max=10"`
	Active   *bool            `json:"active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	PriceM3        decimal.Decimal `json:"price_m3"`
	CostM3         decimal.Decimal `json:"cost_m3"`
	Unit           string          `json:"unit"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateTruckRequest body para POST /api/trucks.
type CreateTruckRequest struct {
	Plate      string          `json:"plate" validate:"required,min=7,max=8"`
	Model      string          `json:"model"`
	CapacityM3 decimal.Decimal `json:"capacity_m3"`
}

// TruckResponse salida de un caminhão.
type TruckResponse struct {
	ID         string          `json:"id"`
	Plate      string          `json:"plate"`
	Model      string          `json:"model"`
	CapacityM3 decimal.Decimal `json:"capacity_m3"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
}

// CreateDriverRequest body para POST /api/drivers.
type CreateDriverRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	License string `json:"license"`
	Phone   string `json:"phone"`
}

// DriverResponse salida de un motorista.
type DriverResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	License   string    `json:"license"`
	Phone     string    `json:"phone"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
