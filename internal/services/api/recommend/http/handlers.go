// Package http provides http transport for recommendations
package http

import (
	stdhttp "net/http"

	"animefinder/internal/modkit/httpkit"
	"animefinder/internal/services/api/recommend/domain"
	svc "animefinder/internal/services/api/recommend/service"
)

// Register mounts recommendation endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.Request](r, "/", h.recommend)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /recommendations Recommendations recommendSimilar
// @Summary Recommend anime similar to a title
// @Description Model failures return 200 with success false and an error message
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param payload body domain.Request true "Seed title and taste hints"
// @Success 200 {object} domain.Result "ok"
// @Failure 400 {object} httpkit.Envelope "missing title"
// @Router /recommendations [post]
func (h *handlers) recommend(r *stdhttp.Request, in domain.Request) (any, error) {
	return h.svc.Recommend(r.Context(), in)
}
