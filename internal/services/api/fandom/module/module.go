// Package module wires fandom lookups into the API using modkit
package module

import (
	"animefinder/internal/adapters/fandom"
	modkit "animefinder/internal/modkit"
	"animefinder/internal/modkit/httpkit"
	"animefinder/internal/services/api/fandom/domain"
	fandomhttp "animefinder/internal/services/api/fandom/http"
	fandomsvc "animefinder/internal/services/api/fandom/service"
)

// Module implements the fandom module
type Module struct {
	modkit.Base
	svc fandomsvc.Service
}

// Ports optionally injects the wiki walker; tests use it to stay offline
type Ports struct {
	Looker domain.Looker
}

// New constructs the fandom module; deps.Cache fronts the lookups when redis is enabled
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("fandom"), modkit.WithPrefix("/fandom")}, opts...)...)

	cfg := FromConfig(deps.Cfg)
	p, _ := b.Ports.(Ports)
	if p.Looker == nil {
		p.Looker = fandom.NewClient(fandom.Options{UserAgent: cfg.UserAgent, Timeout: cfg.Timeout})
	}

	m := &Module{svc: fandomsvc.New(p.Looker, deps.Cache, cfg.CacheTTL)}
	m.Base = b.Base(func(r httpkit.Router) { fandomhttp.Register(r, m.svc) })
	return m
}
