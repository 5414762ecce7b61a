// Package http provides http transport for fandom lookups
package http

import (
	stdhttp "net/http"

	"animefinder/internal/modkit/httpkit"
	"animefinder/internal/platform/net/http/bind"
	"animefinder/internal/services/api/fandom/domain"
	svc "animefinder/internal/services/api/fandom/service"
)

// Register mounts fandom endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.lookup)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /fandom Fandom fandomLookup
// @Summary Representative wiki image and page for a title
// @Tags Fandom
// @Produce json
// @Param title query string true "Anime title"
// @Success 200 {object} domain.LookupResult "ok"
// @Failure 400 {object} httpkit.Envelope "missing title"
// @Router /fandom [get]
func (h *handlers) lookup(r *stdhttp.Request) (any, error) {
	in := domain.LookupInput{Title: r.URL.Query().Get("title")}
	if err := bind.Struct(in); err != nil {
		return nil, err
	}
	return h.svc.Lookup(r.Context(), in)
}
