// Package analytics agrega métricas de solo lectura para el dashboard.
package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/concretera-erp/internal/application/dto"
	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

const (
	defaultWindowDays = 30
	maxWindowDays     = 366
)

var hundred = decimal.NewFromInt(100)

// DashboardUseCase resumen comercial, operativo y financiero de una organización.
// No escribe nada; sin datos en el período devuelve ceros.
type DashboardUseCase struct {
	repos repository.Repos
	loc   *time.Location
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso. loc define el día calendario de los buckets.
func NewDashboardUseCase(repos repository.Repos, loc *time.Location) *DashboardUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardUseCase{repos: repos, loc: loc, now: time.Now}
}

type snapshot struct {
	quotes      []*entity.Quote
	budgets     []*entity.Budget
	orders      []*entity.Order
	production  []*entity.ProductionOrder
	deliveries  []*entity.Delivery
	receivables []*entity.Receivable
	invoices    []*entity.Invoice
	lowStock    []*entity.RawMaterial
}

// Summary calcula el resumen para [from, to] (YYYY-MM-DD, ambos inclusivos).
// Sin fechas se usan los últimos 30 días.
func (uc *DashboardUseCase) Summary(ctx context.Context, orgID, from, to string) (*dto.DashboardSummaryDTO, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	start, end, err := uc.window(from, to)
	if err != nil {
		return nil, err
	}

	snap, err := uc.load(ctx, orgID, start, end)
	if err != nil {
		return nil, err
	}

	out := &dto.DashboardSummaryDTO{
		From:          start.Format(dto.DateLayout),
		To:            end.AddDate(0, 0, -1).Format(dto.DateLayout),
		LowStockCount: len(snap.lowStock),
	}
	series, index := uc.buckets(start, end)

	// comercial
	out.Sales.QuotesByStatus = map[string]int{}
	for _, q := range snap.quotes {
		out.Sales.QuotesByStatus[q.Status]++
		if q.Status == entity.QuoteStatusFechado {
			out.Sales.QuotesClosedValue = out.Sales.QuotesClosedValue.Add(q.Total)
		}
	}
	out.Sales.BudgetsByStatus = map[string]int{}
	approved := 0
	for _, b := range snap.budgets {
		out.Sales.BudgetsByStatus[b.Status]++
		if b.Status == entity.BudgetStatusAprovado {
			approved++
			out.Sales.BudgetsApproved = out.Sales.BudgetsApproved.Add(b.TotalValue)
			out.Sales.BudgetsProfit = out.Sales.BudgetsProfit.Add(b.TotalProfit)
		}
	}
	if len(snap.budgets) > 0 {
		out.Sales.ConversionRatePct = decimal.NewFromInt(int64(approved)).
			Div(decimal.NewFromInt(int64(len(snap.budgets)))).Mul(hundred).Round(2)
	}

	// operación
	out.Operations.OrdersByStatus = map[string]int{}
	for _, o := range snap.orders {
		out.Operations.OrdersByStatus[o.Status]++
		if o.Status != entity.OrderStatusCancelado {
			out.Operations.OrdersValue = out.Operations.OrdersValue.Add(o.TotalValue)
		}
		if i, ok := index[uc.day(o.CreatedAt)]; ok {
			series[i].OrdersCreated++
		}
	}
	out.Operations.ProductionByStatus = map[string]int{}
	for _, po := range snap.production {
		if inRange(po.CreatedAt, start, end) {
			out.Operations.ProductionByStatus[po.Status]++
		}
		if po.Status == entity.ProductionStatusFinalizado && po.FinishedAt != nil && inRange(*po.FinishedAt, start, end) {
			out.Operations.ProducedVolumeM3 = out.Operations.ProducedVolumeM3.Add(po.QuantityM3)
		}
	}
	out.Operations.DeliveriesByStatus = map[string]int{}
	for _, d := range snap.deliveries {
		if inRange(d.CreatedAt, start, end) {
			out.Operations.DeliveriesByStatus[d.Status]++
		}
		if d.Status != entity.DeliveryStatusEntregue || d.DeliveredAt == nil {
			continue
		}
		if i, ok := index[uc.day(*d.DeliveredAt)]; ok {
			out.Operations.DeliveredVolumeM3 = out.Operations.DeliveredVolumeM3.Add(d.VolumeM3)
			series[i].DeliveredVolume = series[i].DeliveredVolume.Add(d.VolumeM3)
		}
	}

	// financiero
	for _, r := range snap.receivables {
		switch r.Status {
		case entity.ReceivableStatusPendente:
			out.Finance.ReceivablePending = out.Finance.ReceivablePending.Add(r.Amount)
		case entity.ReceivableStatusPago:
			out.Finance.ReceivablePaid = out.Finance.ReceivablePaid.Add(r.Amount)
		case entity.ReceivableStatusVencido:
			out.Finance.ReceivableOverdue = out.Finance.ReceivableOverdue.Add(r.Amount)
		}
	}
	for _, inv := range snap.invoices {
		if inv.Status != entity.InvoiceStatusEmitida {
			continue
		}
		out.Finance.InvoicesIssued++
		out.Finance.InvoicedValue = out.Finance.InvoicedValue.Add(inv.TotalValue)
		out.Finance.TaxesTotal = out.Finance.TaxesTotal.Add(inv.TotalTaxes)
		if i, ok := index[uc.day(inv.IssuedAt)]; ok {
			series[i].InvoicedValue = series[i].InvoicedValue.Add(inv.TotalValue)
		}
	}

	out.Series = series
	return out, nil
}

// window resuelve el período en uc.loc. end es exclusivo.
func (uc *DashboardUseCase) window(from, to string) (time.Time, time.Time, error) {
	fromT, toT, err := dto.ParseDateRange(from, to, uc.loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	var start, end time.Time
	if toT != nil {
		end = *toT
	} else {
		n := uc.now().In(uc.loc)
		end = time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, uc.loc).AddDate(0, 0, 1)
	}
	if fromT != nil {
		start = *fromT
	} else {
		start = end.AddDate(0, 0, -defaultWindowDays)
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, domain.Validation("invalid_date_range")
	}
	if start.AddDate(0, 0, maxWindowDays).Before(end) {
		return time.Time{}, time.Time{}, domain.Validation("date_range_too_long")
	}
	return start, end, nil
}

// load consulta todas las colecciones en paralelo. Producción y entregas se leen hasta end sin
// límite inferior: una OP creada antes del período puede finalizar dentro de él.
func (uc *DashboardUseCase) load(ctx context.Context, orgID string, start, end time.Time) (*snapshot, error) {
	inWindow := repository.ListFilter{From: &start, To: &end}
	untilEnd := repository.ListFilter{To: &end}
	snap := &snapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.quotes, err = uc.repos.Quotes.List(gctx, orgID, inWindow)
		return err
	})
	g.Go(func() (err error) {
		snap.budgets, err = uc.repos.Budgets.List(gctx, orgID, inWindow)
		return err
	})
	g.Go(func() (err error) {
		snap.orders, err = uc.repos.Orders.List(gctx, orgID, inWindow)
		return err
	})
	g.Go(func() (err error) {
		snap.production, err = uc.repos.ProductionOrders.List(gctx, orgID, untilEnd)
		return err
	})
	g.Go(func() (err error) {
		snap.deliveries, err = uc.repos.Deliveries.List(gctx, orgID, untilEnd)
		return err
	})
	g.Go(func() (err error) {
		snap.receivables, err = uc.repos.Receivables.List(gctx, orgID, inWindow)
		return err
	})
	g.Go(func() (err error) {
		snap.invoices, err = uc.repos.Invoices.List(gctx, orgID, inWindow)
		return err
	})
	g.Go(func() (err error) {
		snap.lowStock, err = uc.repos.RawMaterials.ListBelowMinimum(gctx, orgID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// buckets un punto por día del período, con su índice por clave ISO.
func (uc *DashboardUseCase) buckets(start, end time.Time) ([]dto.DailyPointDTO, map[string]int) {
	var series []dto.DailyPointDTO
	index := map[string]int{}
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dto.DateLayout)
		index[key] = len(series)
		series = append(series, dto.DailyPointDTO{Date: key})
	}
	return series, index
}

func (uc *DashboardUseCase) day(t time.Time) string {
	return t.In(uc.loc).Format(dto.DateLayout)
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
