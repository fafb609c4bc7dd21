// Package memory implementa todos los puertos de repository en memoria.
// Sirve para STORAGE_DRIVER=memory (demos, desarrollo sin Postgres) y para los tests de casos de uso.
//
// Run toma un único lock de escritura, trabaja sobre una copia del estado y la publica solo si fn
// no devuelve error: misma semántica de commit/rollback que la transacción SQL.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

type state struct {
	organizations    map[string]entity.Organization
	users            map[string]entity.User
	clients          map[string]entity.Client
	products         map[string]entity.Product
	quotes           map[string]entity.Quote
	budgets          map[string]entity.Budget
	budgetItems      map[string]entity.BudgetItem
	orders           map[string]entity.Order
	orderItems       map[string]entity.OrderItem
	productionOrders map[string]entity.ProductionOrder
	recipes          map[string]entity.RecipeItem
	rawMaterials     map[string]entity.RawMaterial
	movements        map[string]entity.InventoryMovement
	trucks           map[string]entity.Truck
	drivers          map[string]entity.Driver
	deliveries       map[string]entity.Delivery
	receivables      map[string]entity.Receivable
	invoices         map[string]entity.Invoice
	invoiceSeq       map[string]int64
}

func newState() *state {
	return &state{
		organizations:    map[string]entity.Organization{},
		users:            map[string]entity.User{},
		clients:          map[string]entity.Client{},
		products:         map[string]entity.Product{},
		quotes:           map[string]entity.Quote{},
		budgets:          map[string]entity.Budget{},
		budgetItems:      map[string]entity.BudgetItem{},
		orders:           map[string]entity.Order{},
		orderItems:       map[string]entity.OrderItem{},
		productionOrders: map[string]entity.ProductionOrder{},
		recipes:          map[string]entity.RecipeItem{},
		rawMaterials:     map[string]entity.RawMaterial{},
		movements:        map[string]entity.InventoryMovement{},
		trucks:           map[string]entity.Truck{},
		drivers:          map[string]entity.Driver{},
		deliveries:       map[string]entity.Delivery{},
		receivables:      map[string]entity.Receivable{},
		invoices:         map[string]entity.Invoice{},
		invoiceSeq:       map[string]int64{},
	}
}

// clone copia los mapas. Las entidades se guardan por valor y nunca se mutan a través de sus punteros,
// así que una copia superficial basta.
func (s *state) clone() *state {
	return &state{
		organizations:    maps.Clone(s.organizations),
		users:            maps.Clone(s.users),
		clients:          maps.Clone(s.clients),
		products:         maps.Clone(s.products),
		quotes:           maps.Clone(s.quotes),
		budgets:          maps.Clone(s.budgets),
		budgetItems:      maps.Clone(s.budgetItems),
		orders:           maps.Clone(s.orders),
		orderItems:       maps.Clone(s.orderItems),
		productionOrders: maps.Clone(s.productionOrders),
		recipes:          maps.Clone(s.recipes),
		rawMaterials:     maps.Clone(s.rawMaterials),
		movements:        maps.Clone(s.movements),
		trucks:           maps.Clone(s.trucks),
		drivers:          maps.Clone(s.drivers),
		deliveries:       maps.Clone(s.deliveries),
		receivables:      maps.Clone(s.receivables),
		invoices:         maps.Clone(s.invoices),
		invoiceSeq:       maps.Clone(s.invoiceSeq),
	}
}

// Store almacenamiento en memoria. Seguro para uso concurrente.
type Store struct {
	mu sync.Mutex
	st *state
}

// New crea un store vacío.
func New() *Store {
	return &Store{st: newState()}
}

// Repos devuelve repositorios fuera de transacción: cada operación es atómica por sí sola.
// No usarlos dentro de Run (el lock no es reentrante).
func (s *Store) Repos() repository.Repos {
	return reposFor(locked{s: s})
}

// Run ejecuta fn sobre una copia del estado y la publica si fn termina sin error.
func (s *Store) Run(ctx context.Context, fn func(r repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(reposFor(direct{st: work})); err != nil {
		return err
	}
	s.st = work
	return nil
}

// access abstrae cómo un repo llega al estado: con lock propio o dentro de Run.
type access interface {
	with(fn func(st *state) error) error
}

type locked struct{ s *Store }

func (l locked) with(fn func(st *state) error) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return fn(l.s.st)
}

type direct struct{ st *state }

func (d direct) with(fn func(st *state) error) error { return fn(d.st) }

func reposFor(db access) repository.Repos {
	return repository.Repos{
		Organizations:    &organizationRepo{db: db},
		Users:            &userRepo{db: db},
		Clients:          &clientRepo{db: db},
		Products:         &productRepo{db: db},
		Quotes:           &quoteRepo{db: db},
		Budgets:          &budgetRepo{db: db},
		Orders:           &orderRepo{db: db},
		ProductionOrders: &productionOrderRepo{db: db},
		Recipes:          &recipeRepo{db: db},
		RawMaterials:     &rawMaterialRepo{db: db},
		Movements:        &movementRepo{db: db},
		Trucks:           &truckRepo{db: db},
		Drivers:          &driverRepo{db: db},
		Deliveries:       &deliveryRepo{db: db},
		Receivables:      &receivableRepo{db: db},
		Invoices:         &invoiceRepo{db: db},
	}
}

// ── helpers genéricos ────────────────────────────────────────────────────────

// scoped devuelve una copia de la fila si existe y pertenece a orgID; nil en otro caso.
func scoped[T any](m map[string]T, orgID, id string, orgOf func(*T) string) *T {
	v, ok := m[id]
	if !ok || orgOf(&v) != orgID {
		return nil
	}
	return &v
}

// collect filtra, ordena y pagina.
func collect[T any](m map[string]T, keep func(*T) bool, less func(a, b *T) bool, limit, offset int) []*T {
	out := make([]*T, 0)
	for _, v := range m {
		if keep(&v) {
			out = append(out, &v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return page(out, limit, offset)
}

func page[T any](items []*T, limit, offset int) []*T {
	if offset > 0 {
		if offset >= len(items) {
			return []*T{}
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// newestFirst ordena por fecha descendente y, a igual fecha, por id.
func newestFirst(ta, tb time.Time, ida, idb string) bool {
	if !ta.Equal(tb) {
		return ta.After(tb)
	}
	return ida < idb
}

func inWindow(t time.Time, f repository.ListFilter) bool {
	if f.From != nil && t.Before(*f.From) {
		return false
	}
	if f.To != nil && !t.Before(*f.To) {
		return false
	}
	return true
}

func statusMatches(status string, f repository.ListFilter) bool {
	return f.Status == "" || f.Status == status
}

func insert[T any](m map[string]T, id string, v T) error {
	if _, ok := m[id]; ok {
		return domain.ErrDuplicate
	}
	m[id] = v
	return nil
}

func replace[T any](m map[string]T, orgID, id string, v T, orgOf func(*T) string) error {
	cur, ok := m[id]
	if !ok || orgOf(&cur) != orgID {
		return domain.ErrNotFound
	}
	m[id] = v
	return nil
}

// errParentMissing imita la violación de FK de Postgres.
func errParentMissing(table, id string) error {
	return fmt.Errorf("%s %s: %w", table, id, domain.ErrNotFound)
}

// errUnique imita la violación de índice único de Postgres.
func errUnique(index string) error {
	return fmt.Errorf("%s: %w", index, domain.ErrDuplicate)
}
