package modkit

import (
	"net/http"

	phttp "animefinder/internal/platform/net/http"
	str "animefinder/internal/platform/strings"
)

// Built is the resolved option set; later options win
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
}

// Build applies opts in order
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	return Built{
		Name:   c.name,
		Prefix: c.prefix,
		Mw:     append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:  c.ports,
	}
}

// Base returns the routing half of a module; register attaches its endpoints
func (b Built) Base(register func(phttp.Router)) Base {
	return Base{name: b.Name, prefix: b.Prefix, mw: b.Mw, register: register}
}

// Base implements Module for feature modules that embed it
type Base struct {
	name     string
	prefix   string
	mw       []func(http.Handler) http.Handler
	register func(phttp.Router)
}

// MountRoutes mounts the module's middleware and endpoints under its prefix
func (m Base) MountRoutes(r phttp.Router) {
	r.Route(m.Prefix(), func(rr phttp.Router) {
		for _, mw := range m.mw {
			rr.Use(mw)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name panics when the module was built without WithName
func (m Base) Name() string { return str.MustString(m.name, "module name") }

// Prefix is the normalized mount path; an empty prefix panics
func (m Base) Prefix() string { return str.MustPrefix(m.prefix) }
