package store

import (
	"context"
	"fmt"
	"time"

	chx "animefinder/internal/platform/store/ch"
	"animefinder/internal/platform/store/pg"
	"animefinder/internal/platform/store/rds"

	"github.com/cenkalti/backoff/v4"
)

// pgBackoff is the ping schedule while postgres comes up; tests shorten it
var pgBackoff = func() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 150 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = 0
	return b
}

// openPG opens the pool and publishes the traced adapter once a ping succeeds
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}
	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
		AppName:  cfg.AppName,
	}, tracer)
	if err != nil {
		return nil, err
	}

	attempts := cfg.PG.ConnectRetries
	if attempts <= 0 {
		attempts = 20
	}
	timeout := cfg.PG.PingTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	try := 0
	ping := func() error {
		try++
		pctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return p.Pool.Ping(pctx)
	}
	notify := func(err error, wait time.Duration) {
		s.Log.Warn().Err(err).Int("attempt", try).Int("max", attempts).Dur("retry_in", wait).Msg("postgres not ready")
	}
	sched := backoff.WithContext(backoff.WithMaxRetries(pgBackoff(), uint64(attempts-1)), ctx)
	if err := backoff.RetryNotify(ping, sched, notify); err != nil {
		p.Close()
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", try, err)
	}
	return newPGAdapter(p), nil
}

func openCH(ctx context.Context, cfg Config, s *Store) (Clickhouse, error) {
	role := cfg.CH.Role
	if role == "" {
		role = "api"
	}
	c, err := chx.Open(ctx, chx.Config{URL: cfg.CH.URL, Role: role, Tag: cfg.AppName})
	if err != nil {
		return nil, err
	}
	s.Log.Debug().Str("role", role).Msg("clickhouse client opened")
	return newCHAdapter(c), nil
}

func openRDS(ctx context.Context, cfg Config, _ *Store) (Cache, error) {
	c, err := rds.Open(ctx, rds.Config{
		Addr:     cfg.RDS.Addr,
		Password: cfg.RDS.Password,
		DB:       cfg.RDS.DB,
		Prefix:   cfg.RDS.Prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	return c, nil
}
