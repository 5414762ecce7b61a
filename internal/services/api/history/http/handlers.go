// Package http provides http transport for history
package http

import (
	stdhttp "net/http"
	"net/url"
	"strconv"

	"animefinder/internal/modkit/httpkit"
	perr "animefinder/internal/platform/errors"
	"animefinder/internal/platform/net/http/bind"
	"animefinder/internal/services/api/history/domain"
	svc "animefinder/internal/services/api/history/service"
)

// Register mounts history endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// latest stored requests
	httpkit.Get(r, "/recent", h.recent)

	// most matched titles in window
	httpkit.Get(r, "/titles", h.titles)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /history/recent History historyRecent
// @Summary Latest identification requests
// @Tags History
// @Produce json
// @Param limit query int false "Rows to return (1..100)" default(20)
// @Success 200 {array} domain.RecentEntry "ok"
// @Failure 400 {object} httpkit.Envelope "bad limit"
// @Failure 503 {object} httpkit.Envelope "postgres disabled"
// @Router /history/recent [get]
func (h *handlers) recent(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	limit, err := queryInt(q, "limit", domain.DefaultRecentLimit)
	if err != nil {
		return nil, err
	}
	in := domain.RecentInput{Limit: limit}
	if err := bind.Struct(in); err != nil {
		return nil, err
	}
	return h.svc.Recent(r.Context(), in)
}

// swagger:route GET /history/titles History historyTitles
// @Summary Most frequently matched titles
// @Tags History
// @Produce json
// @Param days query int false "Window in days (1..365)" default(30)
// @Param limit query int false "Titles to return (1..100)" default(10)
// @Success 200 {array} domain.TitleCount "ok"
// @Failure 400 {object} httpkit.Envelope "bad window"
// @Failure 503 {object} httpkit.Envelope "clickhouse disabled"
// @Router /history/titles [get]
func (h *handlers) titles(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	days, err := queryInt(q, "days", domain.DefaultTitlesDays)
	if err != nil {
		return nil, err
	}
	limit, err := queryInt(q, "limit", domain.DefaultTitlesLimit)
	if err != nil {
		return nil, err
	}
	in := domain.TitlesInput{Days: days, Limit: limit}
	if err := bind.Struct(in); err != nil {
		return nil, err
	}
	return h.svc.Titles(r.Context(), in)
}

func queryInt(q url.Values, key string, def int) (int, error) {
	v := q.Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, perr.WithField(perr.Validationf("%s must be an integer", key), key)
	}
	return n, nil
}
