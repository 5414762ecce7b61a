// Package logger wraps zerolog with process-wide defaults and
// request-scoped children
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the project-wide logging type
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level       string
	Format      string // console or json
	Service     string
	Writer      io.Writer
	WithCaller  bool
	SampleEvery int
}

// envOptions reads LOG_* directly; config depends on logger, not the other way round
func envOptions() Options {
	opt := Options{
		Level:   strings.ToLower(envOr("LOG_LEVEL", "info")),
		Format:  strings.ToLower(envOr("LOG_FORMAT", "console")),
		Service: os.Getenv("LOG_SERVICE"),
	}
	opt.WithCaller, _ = strconv.ParseBool(os.Getenv("LOG_CALLER"))
	opt.SampleEvery, _ = strconv.Atoi(os.Getenv("LOG_SAMPLE_EVERY"))
	return opt
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

var (
	once sync.Once
	root atomic.Pointer[zerolog.Logger]
)

// Get returns the root logger, building it from the environment on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(envOptions())
	return root.Load()
}

// Init builds the root logger; only the first call has effect
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		var w io.Writer = os.Stderr
		if opt.Writer != nil {
			w = opt.Writer
		}
		if opt.Format != "json" {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
		}

		lvl, err := zerolog.ParseLevel(strings.TrimSpace(opt.Level))
		if err != nil || lvl == zerolog.NoLevel {
			lvl = zerolog.InfoLevel
		}

		zc := zerolog.New(w).Level(lvl).With().Timestamp()
		if bi, ok := debug.ReadBuildInfo(); ok {
			zc = zc.Str("go_version", bi.GoVersion)
		}
		if opt.Service != "" {
			zc = zc.Str("service", opt.Service)
		}
		if opt.WithCaller {
			zc = zc.Caller()
		}

		log := zc.Logger()
		if opt.SampleEvery > 1 {
			log = log.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
		}
		root.Store(&log)
	})
}

// C returns a child logger carrying the request id stored on ctx, if any
func C(ctx context.Context) *Logger {
	id := chimw.GetReqID(ctx)
	if id == "" {
		return Get()
	}
	l := Get().With().Str("request_id", id).Logger()
	return &l
}

// Named returns a child logger with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
