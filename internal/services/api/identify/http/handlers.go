// Package http provides http transport for identify
package http

import (
	stdhttp "net/http"

	"animefinder/internal/modkit/httpkit"
	"animefinder/internal/services/api/identify/domain"
	svc "animefinder/internal/services/api/identify/service"
)

// Register mounts identify endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.Request](r, "/", h.identify)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /identify Identify identifyScene
// @Summary Identify an anime from a scene description
// @Description Model failures return 200 with success false and an error message
// @Tags Identify
// @Accept json
// @Produce json
// @Param payload body domain.Request true "Scene description and hints"
// @Success 200 {object} domain.Result "ok"
// @Failure 400 {object} httpkit.Envelope "invalid description"
// @Router /identify [post]
func (h *handlers) identify(r *stdhttp.Request, in domain.Request) (any, error) {
	return h.svc.Identify(r.Context(), in)
}
