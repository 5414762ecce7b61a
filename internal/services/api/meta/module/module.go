// Package module wires meta endpoints into the API
package module

import (
	"time"

	modkit "animefinder/internal/modkit"
	"animefinder/internal/modkit/httpkit"
	metahttp "animefinder/internal/services/api/meta/http"
)

// ServiceName is reported by health and service probes
const ServiceName = "animefinder-api"

// Module implements the meta module
type Module struct {
	modkit.Base
	startedAt time.Time
}

// New constructs the meta module; readiness probes whatever backends deps carries
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)...)

	m := &Module{startedAt: time.Now()}
	m.Base = b.Base(func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: ServiceName,
			StartedAt:   m.startedAt,
			PG:          deps.PG,
			CH:          deps.CH,
			Cache:       deps.Cache,
			LLM:         deps.LLM,
		})
	})
	return m
}
