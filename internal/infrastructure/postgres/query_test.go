package postgres

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

// call registro de una sentencia enviada al Querier.
type call struct {
	sql  string
	args []any
}

// fakeQuerier graba cada sentencia y responde con lo configurado.
type fakeQuerier struct {
	calls   []call
	tag     pgconn.CommandTag
	execErr error
	row     []any
	rows    []*fakeRows
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, call{sql, args})
	return f.tag, f.execErr
}

func (f *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.calls = append(f.calls, call{sql, args})
	if len(f.rows) == 0 {
		return &fakeRows{}, nil
	}
	r := f.rows[0]
	f.rows = f.rows[1:]
	return r, nil
}

func (f *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.calls = append(f.calls, call{sql, args})
	return fakeRow(f.row)
}

type fakeRow []any

func (r fakeRow) Scan(dest ...any) error {
	if len(r) == 0 {
		return pgx.ErrNoRows
	}
	return assign(dest, r)
}

// fakeRows filas en memoria con nombres de columna, suficiente para pgxscan.
type fakeRows struct {
	cols []string
	data [][]any
	pos  int
}

func (r *fakeRows) Close()                        {}
func (r *fakeRows) Err() error                    { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) RawValues() [][]byte           { return nil }
func (r *fakeRows) Conn() *pgx.Conn               { return nil }

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	out := make([]pgconn.FieldDescription, len(r.cols))
	for i, c := range r.cols {
		out[i] = pgconn.FieldDescription{Name: c}
	}
	return out
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error { return assign(dest, r.data[r.pos-1]) }

func (r *fakeRows) Values() ([]any, error) { return r.data[r.pos-1], nil }

func assign(dest, vals []any) error {
	if len(dest) != len(vals) {
		return errors.New("cantidad de columnas distinta")
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(vals[i]))
	}
	return nil
}

func TestAdjustStockSQL_CondicionalYAcotado(t *testing.T) {
	sql := strings.Join(strings.Fields(adjustStockSQL), " ")
	assert.Contains(t, sql, "SET estoque_atual = estoque_atual + $3")
	assert.Contains(t, sql, "WHERE id = $1 AND organization_id = $2 AND estoque_atual + $3 >= 0")
	assert.Contains(t, sql, "RETURNING "+strings.Join(rawMaterialCols, ", "))
}

func TestAdjustStock_SinFilaDistingueInexistenteDeInsuficiente(t *testing.T) {
	ctx := context.Background()
	delta := decimal.NewFromInt(-300)

	q := &fakeQuerier{}
	_, err := NewRawMaterialRepository(q).AdjustStock(ctx, "org-1", "mp-x", delta)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.Len(t, q.calls, 2)
	assert.Equal(t, adjustStockSQL, q.calls[0].sql)
	assert.Equal(t, []any{"mp-x", "org-1", delta}, q.calls[0].args)

	now := time.Now()
	q = &fakeQuerier{rows: []*fakeRows{
		{},
		{cols: rawMaterialCols, data: [][]any{{
			"mp-1", "org-1", "cimento", "kg", decimal.NewFromInt(250), decimal.NewFromInt(100), now, now,
		}}},
	}}
	_, err = NewRawMaterialRepository(q).AdjustStock(ctx, "org-1", "mp-1", delta)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "cimento", stockErr.Material)
	assert.True(t, stockErr.Required.Equal(decimal.NewFromInt(300)))
	assert.True(t, stockErr.Available.Equal(decimal.NewFromInt(250)))
}

func TestNextNumber_UpsertPorOrganizacion(t *testing.T) {
	q := &fakeQuerier{row: []any{int64(7)}}
	n, err := NewInvoiceRepository(q).NextNumber(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	require.Len(t, q.calls, 1)
	assert.Equal(t, []any{"org-1"}, q.calls[0].args)
	sql := strings.Join(strings.Fields(q.calls[0].sql), " ")
	assert.Equal(t, "INSERT INTO invoice_sequences (organization_id, last_number) VALUES ($1, 1) "+
		"ON CONFLICT (organization_id) DO UPDATE SET last_number = invoice_sequences.last_number + 1 "+
		"RETURNING last_number", sql)
}

func TestMarkOverdue_SoloPendentesDeLaOrganizacion(t *testing.T) {
	asOf := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	q := &fakeQuerier{tag: pgconn.NewCommandTag("UPDATE 2")}

	n, err := NewReceivableRepository(q).MarkOverdue(context.Background(), "org-1", asOf)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.Len(t, q.calls, 1)
	assert.Equal(t, "UPDATE accounts_receivable SET status = $1, updated_at = $2 "+
		"WHERE organization_id = $3 AND status = $4 AND data_vencimento < $5", q.calls[0].sql)
	assert.Equal(t, []any{"vencido", asOf, "org-1", "pendente", asOf}, q.calls[0].args)
}

func TestScopedList_FiltrosYPaginacion(t *testing.T) {
	from := time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	sql, args, err := scopedList(psql.Select("id").From("invoices"), "org-1", repository.ListFilter{
		Status: "emitida", From: &from, To: &to, Limit: 10, Offset: 20,
	}, "status", "emitida_em").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM invoices WHERE organization_id = $1 AND status = $2 "+
		"AND emitida_em >= $3 AND emitida_em < $4 ORDER BY emitida_em DESC, id LIMIT 10 OFFSET 20", sql)
	assert.Equal(t, []any{"org-1", "emitida", from, to}, args)

	// Sin columna de estado el filtro se ignora.
	sql, args, err = scopedList(psql.Select("id").From("raw_materials"), "org-1",
		repository.ListFilter{Status: "x"}, "", "created_at").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM raw_materials WHERE organization_id = $1 ORDER BY created_at DESC, id", sql)
	assert.Equal(t, []any{"org-1"}, args)
}

func TestUpdate_AcotadoPorOrganizacion(t *testing.T) {
	ctx := context.Background()

	q := &fakeQuerier{tag: pgconn.NewCommandTag("UPDATE 0")}
	err := update(ctx, q, "update client", "clients", "org-1", "cli-1", map[string]any{"nome": "Alfa"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.Len(t, q.calls, 1)
	assert.Equal(t, "UPDATE clients SET nome = $1 WHERE id = $2 AND organization_id = $3", q.calls[0].sql)
	assert.Equal(t, []any{"Alfa", "cli-1", "org-1"}, q.calls[0].args)

	q = &fakeQuerier{tag: pgconn.NewCommandTag("UPDATE 1")}
	assert.NoError(t, update(ctx, q, "update client", "clients", "org-1", "cli-1", map[string]any{"nome": "Alfa"}))
}

func TestMapWriteErr_TraduceConstraints(t *testing.T) {
	ctx := context.Background()
	cols := []string{"id", "organization_id"}

	q := &fakeQuerier{execErr: &pgconn.PgError{Code: "23505"}}
	assert.ErrorIs(t, insert(ctx, q, "create client", "clients", cols, "cli-1", "org-1"), domain.ErrDuplicate)

	q = &fakeQuerier{execErr: &pgconn.PgError{Code: "23503"}}
	assert.ErrorIs(t, insert(ctx, q, "create client", "clients", cols, "cli-1", "org-1"), domain.ErrNotFound)

	q = &fakeQuerier{execErr: errors.New("conexión cerrada")}
	err := insert(ctx, q, "create client", "clients", cols, "cli-1", "org-1")
	assert.ErrorContains(t, err, "create client: conexión cerrada")
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "INSERT INTO clients (id,organization_id) VALUES ($1,$2)", q.calls[0].sql)
}
