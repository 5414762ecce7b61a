package pg

import (
	"context"
	"strings"

	"animefinder/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent describes one statement sent to postgres
type QueryEvent struct {
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives an event per statement
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs every statement through root, pinned at debug so SERVICE_PGSQL_LOG_SQL
// works regardless of the process level
func Tracer(root logger.Logger) QueryTracer {
	return &zlTracer{log: root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()}
}

type zlTracer struct{ log logger.Logger }

// OnQuery logs at info, or warn when the statement crossed the slow threshold
func (z *zlTracer) OnQuery(_ context.Context, ev QueryEvent) {
	evt := z.log.Info()
	if ev.Slow {
		evt = z.log.Warn()
	}
	evt.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg("pg query")
}

// compact folds the multi line SQL literals used by repos onto one line
func compact(s string) string { return strings.Join(strings.Fields(s), " ") }
