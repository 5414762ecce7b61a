// Package ch provides a clickhouse client
package ch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Config configures clickhouse client
type Config struct {
	URL string

	// Role and Tag are reported to the server as client info
	Role string
	Tag  string

	DialTimeout time.Duration // default 5s
}

// Rows is the minimal result set iteration for ch
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
	Columns() []string
}

// batch is the subset of driver.Batch Insert needs
type batch interface {
	Append(v ...any) error
	Abort() error
	Send() error
}

// conn is the subset of driver.Conn the client needs
type conn interface {
	prepare(ctx context.Context, query string) (batch, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	Exec(ctx context.Context, query string, args ...any) error
	Ping(ctx context.Context) error
	Close() error
}

// CH is a thin clickhouse client over the native protocol
type CH struct {
	conn conn
}

// ErrBadTable is returned when a table name is not a plain identifier
var ErrBadTable = errors.New("ch: invalid table name")

// Open parses the DSN and opens a pooled native connection
// The pool dials lazily so Open does not touch the network
func Open(_ context.Context, cfg Config) (*CH, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("ch: empty url")
	}
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("ch: parse dsn: %w", err)
	}
	opts.ClientInfo = clientInfo(cfg.Role, cfg.Tag)
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	} else if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}

	c, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("ch: open: %w", err)
	}
	return &CH{conn: driverConn{c}}, nil
}

// Insert appends rows to table in a single batch
// Each row must list values in the table's column order
func (c *CH) Insert(ctx context.Context, table string, rows [][]any) error {
	if !validTable(table) {
		return fmt.Errorf("%w: %q", ErrBadTable, table)
	}
	if len(rows) == 0 {
		return nil
	}
	b, err := c.conn.prepare(ctx, "INSERT INTO "+table)
	if err != nil {
		return fmt.Errorf("ch: prepare %s: %w", table, err)
	}
	for i, r := range rows {
		if err := b.Append(r...); err != nil {
			_ = b.Abort()
			return fmt.Errorf("ch: append %s row %d: %w", table, i, err)
		}
	}
	if err := b.Send(); err != nil {
		return fmt.Errorf("ch: send %s: %w", table, err)
	}
	return nil
}

// Query runs a query and returns ch.Rows
func (c *CH) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return c.conn.Query(ctx, query, args...)
}

// Exec runs a statement that returns no rows, DDL included
func (c *CH) Exec(ctx context.Context, query string, args ...any) error {
	return c.conn.Exec(ctx, query, args...)
}

// Ping checks server reachability
func (c *CH) Ping(ctx context.Context) error { return c.conn.Ping(ctx) }

// Close closes resources
func (c *CH) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// validTable accepts name or db.name made of letters, digits and '_'
func validTable(s string) bool {
	if s == "" || strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".") {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.':
		default:
			return false
		}
	}
	return strings.Count(s, ".") <= 1
}

// driverConn narrows driver.Conn to conn
type driverConn struct{ c driver.Conn }

func (d driverConn) prepare(ctx context.Context, query string) (batch, error) {
	return d.c.PrepareBatch(ctx, query)
}

func (d driverConn) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return d.c.Query(ctx, query, args...)
}

func (d driverConn) Exec(ctx context.Context, query string, args ...any) error {
	return d.c.Exec(ctx, query, args...)
}

func (d driverConn) Ping(ctx context.Context) error { return d.c.Ping(ctx) }
func (d driverConn) Close() error                   { return d.c.Close() }
