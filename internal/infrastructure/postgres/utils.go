package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

// Querier lo que comparten *pgxpool.Pool y pgx.Tx. Los repos funcionan igual dentro o fuera de una tx.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// psql builder de squirrel con placeholders $n.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation 23503: la fila referenciada no existe.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// mapWriteErr traduce violaciones de constraints a errores de dominio.
func mapWriteErr(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// insert ejecuta un INSERT con columnas y valores en el mismo orden.
func insert(ctx context.Context, q Querier, op, table string, cols []string, vals ...any) error {
	sql, args, err := psql.Insert(table).Columns(cols...).Values(vals...).ToSql()
	if err != nil {
		return fmt.Errorf("%s: build query: %w", op, err)
	}
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return mapWriteErr(op, err)
	}
	return nil
}

// update ejecuta un UPDATE acotado por id y organización. Sin filas afectadas devuelve ErrNotFound.
func update(ctx context.Context, q Querier, op, table, orgID, id string, set map[string]any) error {
	sql, args, err := psql.Update(table).SetMap(set).
		Where(sq.Eq{"id": id, "organization_id": orgID}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: build query: %w", op, err)
	}
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return mapWriteErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

// getOne escanea una fila; sin filas devuelve (nil, nil).
func getOne[T any](ctx context.Context, q Querier, op string, b sq.SelectBuilder) (*T, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}
	var out T
	if err := pgxscan.Get(ctx, q, &out, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &out, nil
}

// getMany escanea todas las filas.
func getMany[T any](ctx context.Context, q Querier, op string, b sq.SelectBuilder) ([]*T, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}
	out := make([]*T, 0)
	if err := pgxscan.Select(ctx, q, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// scopedList aplica organización, estado, ventana de fechas sobre dateCol y paginación.
// Orden: dateCol descendente, id como desempate.
func scopedList(b sq.SelectBuilder, orgID string, f repository.ListFilter, statusCol, dateCol string) sq.SelectBuilder {
	b = b.Where(sq.Eq{"organization_id": orgID})
	if f.Status != "" && statusCol != "" {
		b = b.Where(sq.Eq{statusCol: f.Status})
	}
	if f.From != nil {
		b = b.Where(sq.GtOrEq{dateCol: *f.From})
	}
	if f.To != nil {
		b = b.Where(sq.Lt{dateCol: *f.To})
	}
	b = b.OrderBy(dateCol+" DESC", "id")
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}
	return b
}
