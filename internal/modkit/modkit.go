// Package modkit assembles feature modules from shared deps and options
package modkit

import (
	phttp "animefinder/internal/platform/net/http"
)

// Module is what the API composes: a named set of routes under one prefix
type Module interface {
	MountRoutes(r phttp.Router)
	Name() string
}
