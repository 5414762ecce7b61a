// Package module wires recommendations into the API using modkit
package module

import (
	modkit "animefinder/internal/modkit"
	"animefinder/internal/modkit/httpkit"
	recommendhttp "animefinder/internal/services/api/recommend/http"
	recommendsvc "animefinder/internal/services/api/recommend/service"
)

// Module implements the recommendations module
type Module struct {
	modkit.Base
	svc recommendsvc.Service
}

// New constructs the recommendations module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("recommend"), modkit.WithPrefix("/recommendations")}, opts...)...)

	m := &Module{svc: recommendsvc.New(deps.LLM, recommendsvc.ConfigFrom(deps.Cfg))}
	m.Base = b.Base(func(r httpkit.Router) { recommendhttp.Register(r, m.svc) })
	return m
}
