// Package http provides http transport for streaming links
package http

import (
	stdhttp "net/http"
	"strconv"

	"animefinder/internal/modkit/httpkit"
	perr "animefinder/internal/platform/errors"
	"animefinder/internal/platform/net/http/bind"
	"animefinder/internal/services/api/streaming/domain"
	svc "animefinder/internal/services/api/streaming/service"
)

// Register mounts streaming endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.links)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /streaming Streaming streamingLinks
// @Summary Streaming provider search links for a title
// @Tags Streaming
// @Produce json
// @Param title query string true "Anime title"
// @Param region query string false "ISO 3166 alpha-2 region"
// @Param all query bool false "Return every provider"
// @Success 200 {object} domain.LinksResult "ok"
// @Failure 400 {object} httpkit.Envelope "missing title"
// @Router /streaming [get]
func (h *handlers) links(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	in := domain.LinksInput{Title: q.Get("title"), Region: q.Get("region")}
	if v := q.Get("all"); v != "" {
		all, err := strconv.ParseBool(v)
		if err != nil {
			return nil, perr.WithField(perr.Validationf("all must be true or false"), "all")
		}
		in.All = all
	}
	if err := bind.Struct(in); err != nil {
		return nil, err
	}
	return h.svc.Links(r.Context(), in)
}
