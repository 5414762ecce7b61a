package store

import (
	"context"

	"animefinder/internal/platform/store/ch"
)

// chClient is the surface of *ch.CH the store uses
type chClient interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Query(ctx context.Context, sql string, args ...any) (ch.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) error
	Ping(ctx context.Context) error
	Close() error
}

// chAdapter narrows ch.Rows to store.Rows; every other call passes straight through
type chAdapter struct{ chClient }

func newCHAdapter(c chClient) Clickhouse { return chAdapter{c} }

func (a chAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := a.chClient.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{r}, nil
}

// chRows drops the Close error; Err reports anything that matters after iteration
type chRows struct{ ch.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }
