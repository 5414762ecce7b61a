// Package module wires identify into the API using modkit
package module

import (
	modkit "animefinder/internal/modkit"
	"animefinder/internal/modkit/httpkit"
	identifyhttp "animefinder/internal/services/api/identify/http"
	identifyrepo "animefinder/internal/services/api/identify/repo"
	identifysvc "animefinder/internal/services/api/identify/service"
)

// Module implements the identify module
type Module struct {
	modkit.Base
	svc identifysvc.Service
}

// New constructs the identify module
// recording follows whichever of PG and CH are wired in deps
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("identify"), modkit.WithPrefix("/identify")}, opts...)...)

	rec := identifyrepo.NewRecorder(deps.PG, identifyrepo.NewHybrid(deps.CH))
	m := &Module{svc: identifysvc.New(deps.LLM, rec, identifysvc.ConfigFrom(deps.Cfg))}
	m.Base = b.Base(func(r httpkit.Router) { identifyhttp.Register(r, m.svc) })
	return m
}
