// Package store opens the optional audit and cache backends behind small seams
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"animefinder/internal/platform/logger"
)

// Store holds the optional backends; a nil field means that backend is disabled
// the zero value is a store with everything off
type Store struct {
	Log   logger.Logger
	PG    TxRunner
	CH    Clickhouse
	Cache Cache
}

// Row exposes the minimal scan contract a single row needs
type Row interface {
	Scan(dest ...any) error
}

// Rows exposes the minimal iteration and scan for a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag is a tiny interface to inspect command results
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the read and write surface repos use for sql
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner wraps transaction execution around a function
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar seam; Insert rows list values in table column order
type Clickhouse interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Exec(ctx context.Context, sql string, args ...any) error
	Close() error
}

// Cache is a byte cache with per key expiry
// Get reports a miss as ok=false with a nil error
type Cache interface {
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Close() error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Option mutates Store during Open
type Option func(*Store)

// WithLogger sets the logger backends report through
func WithLogger(log logger.Logger) Option {
	return func(s *Store) { s.Log = log }
}

// Open connects every backend cfg enables; the rest stay nil
// a failing backend closes the ones already opened
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: *logger.Named("store")}
	for _, o := range opts {
		o(s)
	}

	var err error
	if cfg.PG.Enabled {
		if s.PG, err = openPG(ctx, cfg, s); err != nil {
			return nil, err
		}
	}
	if cfg.CH.Enabled {
		if s.CH, err = openCH(ctx, cfg, s); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
	}
	if cfg.RDS.Enabled {
		if s.Cache, err = openRDS(ctx, cfg, s); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
	}
	return s, nil
}

// backends lists the seams in open order; nil entries are disabled
func (s *Store) backends() []struct {
	name string
	seam any
} {
	return []struct {
		name string
		seam any
	}{{"pg", s.PG}, {"ch", s.CH}, {"redis", s.Cache}}
}

// Guard pings every enabled backend that can report readiness
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	for _, b := range s.backends() {
		if p, ok := b.seam.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", b.name, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Close closes enabled backends in reverse open order
func (s *Store) Close(context.Context) error {
	var errs []error
	bs := s.backends()
	for i := len(bs) - 1; i >= 0; i-- {
		if c, ok := bs[i].seam.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", bs[i].name, err))
			}
		}
	}
	return errors.Join(errs...)
}
