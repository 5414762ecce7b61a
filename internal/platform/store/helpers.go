package store

import (
	"context"

	perr "animefinder/internal/platform/errors"
)

// Querier is the read surface shared by postgres and clickhouse seams
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// ExecOne runs a write and asserts exactly 1 row affected
func ExecOne(ctx context.Context, q RowQuerier, sql string, args ...any) error {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if n := tag.RowsAffected(); n != 1 {
		return perr.Newf(perr.ErrorCodeDB, "expected exactly one row affected, got %d", n)
	}
	return nil
}

// Many maps every row through scan
// no rows yields an empty, non nil slice
func Many[T any](ctx context.Context, q Querier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
