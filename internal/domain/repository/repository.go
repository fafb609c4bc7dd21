package repository

import (
	"context"
	"time"
)

// ListFilter filtros comunes de listado. Status vacío = todos; Limit 0 = sin límite.
// From es inclusivo y To exclusivo. Filtran por created_at, salvo facturas (emitida_em)
// y contas a receber (data_emissao).
type ListFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// Repos agrupa todos los puertos de persistencia. El TxRunner entrega una instancia atada a la transacción.
type Repos struct {
	Organizations    OrganizationRepository
	Users            UserRepository
	Clients          ClientRepository
	Products         ProductRepository
	Quotes           QuoteRepository
	Budgets          BudgetRepository
	Orders           OrderRepository
	ProductionOrders ProductionOrderRepository
	Recipes          RecipeRepository
	RawMaterials     RawMaterialRepository
	Movements        InventoryMovementRepository
	Trucks           TruckRepository
	Drivers          DriverRepository
	Deliveries       DeliveryRepository
	Receivables      ReceivableRepository
	Invoices         InvoiceRepository
}

// TxRunner ejecuta fn dentro de una transacción, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil; Rollback en cualquier otro caso.
// Dentro de fn solo deben usarse los repos recibidos.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
