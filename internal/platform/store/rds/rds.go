// Package rds provides a small redis backed key value cache
package rds

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config configures the redis client
type Config struct {
	Addr     string
	Password string
	DB       int

	// Prefix is prepended to every key, default "animefinder:"
	Prefix string

	PingTimeout time.Duration // default 5s
}

// Client is a prefixed byte cache over a single redis connection pool
type Client struct {
	rdb    *redis.Client
	prefix string
}

// Open connects and verifies the server answers PING
func Open(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, errors.New("rds: empty addr")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	to := cfg.PingTimeout
	if to <= 0 {
		to = 5 * time.Second
	}
	pctx, cancel := context.WithTimeout(ctx, to)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("rds: connect %s: %w", cfg.Addr, err)
	}
	return newClient(rdb, cfg.Prefix), nil
}

func newClient(rdb *redis.Client, prefix string) *Client {
	if prefix == "" {
		prefix = "animefinder:"
	}
	return &Client{rdb: rdb, prefix: prefix}
}

// Get returns the cached value and whether it was present
// A miss is not an error
func (c *Client) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("rds: get %s: %w", key, err)
	}
	return b, true, nil
}

// Set stores val under key, ttl <= 0 keeps it forever
func (c *Client) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := c.rdb.Set(ctx, c.key(key), val, ttl).Err(); err != nil {
		return fmt.Errorf("rds: set %s: %w", key, err)
	}
	return nil
}

// Ping checks the server answers
func (c *Client) Ping(ctx context.Context) error { return c.rdb.Ping(ctx).Err() }

// Close releases the pool
func (c *Client) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func (c *Client) key(k string) string { return c.prefix + k }
