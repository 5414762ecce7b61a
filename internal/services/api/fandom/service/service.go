// Package service contains the fandom lookup workflow with an optional cache in front
package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"animefinder/internal/core/normalize"
	perr "animefinder/internal/platform/errors"
	"animefinder/internal/platform/logger"
	"animefinder/internal/platform/store"
	"animefinder/internal/services/api/fandom/domain"
)

const keyPrefix = "fandom:"

// Service defines the fandom service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the fandom service
type Svc struct {
	looker domain.Looker
	cache  store.Cache
	ttl    time.Duration
	log    logger.Logger
}

// New constructs a fandom service; cache may be nil
func New(l domain.Looker, cache store.Cache, ttl time.Duration) *Svc {
	if l == nil {
		panic("fandom.Service requires a non nil Looker")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Svc{looker: l, cache: cache, ttl: ttl, log: *logger.Named("fandom.service")}
}

// CacheKey is the cache key for a title; case and accent variants share a key
func CacheKey(title string) string { return keyPrefix + normalize.Fold(title) }

// Lookup returns a cached result when present, otherwise walks the wikis
// only results that found a page are cached so the search fallback is retried next time
func (s *Svc) Lookup(ctx context.Context, in domain.LookupInput) (domain.LookupResult, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.LookupResult{}, perr.WithField(perr.Validationf("Title parameter is required"), "title")
	}

	key := CacheKey(title)
	if res, ok := s.cached(ctx, key); ok {
		return res, nil
	}

	res, err := s.looker.Lookup(ctx, title)
	if err != nil {
		return domain.LookupResult{}, err
	}
	if res.PageTitle != "" {
		s.store(ctx, key, res)
	}
	return res, nil
}

func (s *Svc) cached(ctx context.Context, key string) (domain.LookupResult, bool) {
	var res domain.LookupResult
	if s.cache == nil {
		return res, false
	}
	b, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("fandom cache get failed")
		return res, false
	}
	if !ok {
		return res, false
	}
	if err := json.Unmarshal(b, &res); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("fandom cache entry unreadable")
		return res, false
	}
	return res, true
}

func (s *Svc) store(ctx context.Context, key string, res domain.LookupResult) {
	if s.cache == nil {
		return
	}
	b, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, b, s.ttl); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("fandom cache set failed")
	}
}
