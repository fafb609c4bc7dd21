package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto.
const (
	ProductCategoryConcreto   = "concreto"
	ProductCategoryManilha    = "manilha"
	ProductCategoryPreMoldado = "pre-moldado"
)

// ValidProductCategory indica si c es una categoría conocida.
func ValidProductCategory(c string) bool {
	switch c {
	case ProductCategoryConcreto, ProductCategoryManilha, ProductCategoryPreMoldado:
		return true
	}
	return false
}

// Product mezcla o pieza vendible. CostM3 alimenta el cálculo de lucro; no se exige CostM3 <= PriceM3.
type Product struct {
	ID             string          `db:"id"`
	OrganizationID string          `db:"organization_id"`
	Name           string          `db:"nome"`
	Category       string          `db:"categoria"`
	PriceM3        decimal.Decimal `db:"preco_m3"`
	CostM3         decimal.Decimal `db:"custo_m3"`
	Unit           string          `db:"unidade"`
	Active         bool            `db:"ativo"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}
