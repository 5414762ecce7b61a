package module

import (
	"time"

	"animefinder/internal/platform/config"
)

// Options controls the wiki client and its cache
type Options struct {
	UserAgent string
	Timeout   time.Duration
	CacheTTL  time.Duration
}

// FromConfig reads SERVICE_FANDOM_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	fc := cfg.Prefix("SERVICE_FANDOM_")
	return Options{
		UserAgent: fc.MayString("USER_AGENT", "AnimeFinderBot/1.0"),
		Timeout:   fc.MayDuration("TIMEOUT", 8*time.Second),
		CacheTTL:  fc.MayDuration("CACHE_TTL", 24*time.Hour),
	}
}
