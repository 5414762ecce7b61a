// Package module wires streaming links into the API using modkit
package module

import (
	modkit "animefinder/internal/modkit"
	"animefinder/internal/modkit/httpkit"
	streaminghttp "animefinder/internal/services/api/streaming/http"
	streamingsvc "animefinder/internal/services/api/streaming/service"
)

// Module implements the streaming module
type Module struct {
	modkit.Base
	svc streamingsvc.Service
}

// New constructs the streaming module over the embedded provider catalog
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("streaming"), modkit.WithPrefix("/streaming")}, opts...)...)

	m := &Module{svc: streamingsvc.New(nil)}
	m.Base = b.Base(func(r httpkit.Router) { streaminghttp.Register(r, m.svc) })
	return m
}
