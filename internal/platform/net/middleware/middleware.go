// Package middleware adapts chi middleware and adds the in-house access log and panic guard
package middleware

import (
	"net/http"
	"time"

	pstrings "animefinder/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Func is the net/http middleware shape shared by every constructor here
type Func = func(http.Handler) http.Handler

// RequestID propagates X-Request-ID or mints one, storing it on the context
func RequestID() Func { return chimw.RequestID }

// RealIP trusts X-Forwarded-For / X-Real-IP for RemoteAddr
func RealIP() Func { return chimw.RealIP }

// Timeout cancels the request context after d
func Timeout(d time.Duration) Func { return chimw.Timeout(d) }

// NoCache disables client and proxy caching
func NoCache() Func { return chimw.NoCache }

// StripSlashes drops a trailing slash before routing
func StripSlashes() Func { return chimw.StripSlashes }

// Heartbeat answers GET path with 200 before any routing
func Heartbeat(path string) Func { return chimw.Heartbeat(path) }

// Compress negotiates gzip/deflate at the given flate level
func Compress(level int) Func {
	c := chimw.NewCompressor(level)
	return c.Handler
}

// CORSOptions is the subset of go-chi/cors the API exposes
type CORSOptions struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

// CORS applies o, filling methods and headers the browser client needs
func CORS(o CORSOptions) Func {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: o.AllowedOrigins,
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{"GET", "POST", "OPTIONS"}),
		AllowedHeaders: pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Content-Type", "X-Request-ID"}),
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         o.MaxAge,
	})
}
