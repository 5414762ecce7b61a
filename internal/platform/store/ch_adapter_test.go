package store

import (
	"context"
	"errors"
	"testing"

	"animefinder/internal/platform/store/ch"
)

type fakeCHClient struct {
	table   string
	rows    [][]any
	result  ch.Rows
	execSQL string
	pingErr error
	closed  bool
}

func (f *fakeCHClient) Insert(_ context.Context, table string, rows [][]any) error {
	f.table, f.rows = table, rows
	return nil
}
func (f *fakeCHClient) Query(context.Context, string, ...any) (ch.Rows, error) {
	if f.result == nil {
		return nil, errors.New("no result")
	}
	return f.result, nil
}
func (f *fakeCHClient) Exec(_ context.Context, sql string, _ ...any) error {
	f.execSQL = sql
	return nil
}
func (f *fakeCHClient) Ping(context.Context) error { return f.pingErr }
func (f *fakeCHClient) Close() error               { f.closed = true; return nil }

// fakeCHRows adapts fakeRows to the ch.Rows contract (Close returns error)
type fakeCHRows struct{ *fakeRows }

func (r fakeCHRows) Close() error { r.fakeRows.Close(); return nil }

func TestCHAdapter_Insert(t *testing.T) {
	t.Parallel()

	f := &fakeCHClient{}
	if err := newCHAdapter(f).Insert(context.Background(), "identification_matches", [][]any{{"x"}}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if f.table != "identification_matches" || len(f.rows) != 1 {
		t.Fatalf("insert not delegated: %+v", f)
	}
}

func TestCHAdapter_QueryWrapsRows(t *testing.T) {
	t.Parallel()

	fr := newRows([]string{"title", "hits"}, [][]any{{"Naruto", uint64(3)}})
	a := newCHAdapter(&fakeCHClient{result: fakeCHRows{fr}})

	rows, err := a.Query(context.Background(), "SELECT title, hits")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if cols := rows.Columns(); len(cols) != 2 || cols[0] != "title" {
		t.Fatalf("columns = %v", cols)
	}
	if !rows.Next() {
		t.Fatalf("expected a row")
	}
	var title string
	var hits uint64
	if err := rows.Scan(&title, &hits); err != nil || title != "Naruto" || hits != 3 {
		t.Fatalf("scan %q %d %v", title, hits, err)
	}
	rows.Close()
	if !fr.closed {
		t.Fatalf("close not delegated")
	}

	if _, err := newCHAdapter(&fakeCHClient{}).Query(context.Background(), "q"); err == nil {
		t.Fatalf("query error should surface")
	}
}

func TestCHAdapter_PingClose(t *testing.T) {
	t.Parallel()

	f := &fakeCHClient{pingErr: errors.New("down")}
	a := newCHAdapter(f)
	if err := a.(Pinger).Ping(context.Background()); err == nil {
		t.Fatalf("ping error should surface")
	}
	if err := a.Close(); err != nil || !f.closed {
		t.Fatalf("close: %v", err)
	}
}

func TestCHAdapter_Exec(t *testing.T) {
	t.Parallel()

	f := &fakeCHClient{}
	if err := newCHAdapter(f).Exec(context.Background(), "CREATE TABLE x"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if f.execSQL != "CREATE TABLE x" {
		t.Fatalf("exec not delegated: %q", f.execSQL)
	}
}
