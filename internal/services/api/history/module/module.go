// Package module wires identification history into the API using modkit
package module

import (
	modkit "animefinder/internal/modkit"
	"animefinder/internal/modkit/httpkit"
	historyhttp "animefinder/internal/services/api/history/http"
	historyrepo "animefinder/internal/services/api/history/repo"
	historysvc "animefinder/internal/services/api/history/service"
)

// Module implements the history module
type Module struct {
	modkit.Base
	svc historysvc.Service
}

// New constructs the history module
// each endpoint answers 503 while its backend is disabled
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("history"), modkit.WithPrefix("/history")}, opts...)...)

	m := &Module{svc: historysvc.New(deps.PG, historyrepo.NewHybrid(deps.CH))}
	m.Base = b.Base(func(r httpkit.Router) { historyhttp.Register(r, m.svc) })
	return m
}
