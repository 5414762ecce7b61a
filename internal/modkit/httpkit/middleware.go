package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"animefinder/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack, zero values pick defaults
type StackOptions struct {
	CORSOrigins []string      // default any origin
	Slow        time.Duration // access log warn threshold, default 2s
	Timeout     time.Duration // default 45s, above the LLM client timeout
}

// CommonStack returns a baseline per module middleware slice
func CommonStack(opts ...StackOptions) []func(http.Handler) http.Handler {
	var o StackOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Slow <= 0 {
		o.Slow = 2 * time.Second
	}
	if o.Timeout <= 0 {
		o.Timeout = 45 * time.Second
	}
	origins := o.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLog(o.Slow),

		middleware.CORS(middleware.CORSOptions{AllowedOrigins: origins}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}
