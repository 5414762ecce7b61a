// Package http serves liveness, readiness and build metadata
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"animefinder/internal/adapters/llm"
	"animefinder/internal/core/version"
	"animefinder/internal/core/vocab"
	"animefinder/internal/modkit/httpkit"
)

// probeTimeout bounds the whole readiness pass
const probeTimeout = 2 * time.Second

// Deps are the handler dependencies
// PG, CH and Cache are probed when they can Ping; nil means the backend is disabled
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any
	CH          any
	Cache       any
	LLM         llm.Completer
	Vocab       *vocab.List
}

type handlers struct {
	deps Deps
	now  func() time.Time
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.Vocab == nil {
		d.Vocab = vocab.Default()
	}
	h := &handlers{deps: d, now: time.Now}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/vocabulary", h.vocabulary)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"animefinder-api"`
	Started string `json:"started" example:"2026-10-17T09:00:00Z"`
	Now     string `json:"now"     example:"2026-10-17T09:05:00Z"`
}

// ReadyCheck is one backend's probe result
// Status is ok, fail or skipped (backend disabled)
type ReadyCheck struct {
	Name      string `json:"name"   example:"redis"`
	Status    string `json:"status" example:"ok"`
	LatencyMs int64  `json:"latency_ms" example:"3"`
	Error     string `json:"error,omitempty" example:"dial tcp 127.0.0.1:6379: connect: connection refused"`
}

// ReadyResponse is fail when a storage backend is down and degraded when only the model is missing
type ReadyResponse struct {
	Status string       `json:"status" example:"degraded"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-17T09:05:00Z"`
}

// ServiceResponse describes the running process
type ServiceResponse struct {
	Name    string `json:"name"    example:"animefinder-api"`
	Started string `json:"started" example:"2026-10-17T09:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// VocabularyCategory is one keyword list and its size
type VocabularyCategory struct {
	Name  string `json:"name"  example:"characters"`
	Terms int    `json:"terms" example:"37"`
}

// VocabularyResponse reports the scene keyword lists in use
type VocabularyResponse struct {
	Version    int                  `json:"version" example:"1"`
	Categories []VocabularyCategory `json:"categories"`
	Build      version.BuildInfo    `json:"build"`
}

func (h *handlers) stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.stamp(h.deps.StartedAt),
		Now:     h.stamp(h.now()),
	}, nil
}

// probe runs one check; disabled backends are skipped and non-pingers count as up
func probe(ctx context.Context, name string, target any) ReadyCheck {
	if target == nil {
		return ReadyCheck{Name: name, Status: "skipped"}
	}
	p, ok := target.(interface{ Ping(context.Context) error })
	if !ok {
		return ReadyCheck{Name: name, Status: "ok"}
	}
	start := time.Now()
	err := p.Ping(ctx)
	c := ReadyCheck{Name: name, Status: "ok", LatencyMs: time.Since(start).Milliseconds()}
	if err != nil {
		c.Status, c.Error = "fail", err.Error()
	}
	return c
}

// @Summary Readiness across storage backends and the model
// @Description Disabled backends are skipped; a missing model key only degrades readiness
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	targets := []struct {
		name string
		v    any
	}{{"pg", h.deps.PG}, {"ch", h.deps.CH}, {"redis", h.deps.Cache}}

	checks := make([]ReadyCheck, len(targets), len(targets)+1)
	var wg sync.WaitGroup
	for i, t := range targets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			checks[i] = probe(ctx, t.name, t.v)
		}()
	}
	wg.Wait()

	status := "ok"
	for _, c := range checks {
		if c.Status == "fail" {
			status = "fail"
		}
	}
	model := ReadyCheck{Name: "llm", Status: "ok"}
	if h.deps.LLM == nil || !h.deps.LLM.Configured() {
		model.Status, model.Error = "fail", llm.MsgNotConfigured
		if status == "ok" {
			status = "degraded"
		}
	}

	return ReadyResponse{Status: status, Checks: append(checks, model), Now: h.stamp(h.now())}, nil
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// @Summary Process name and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.stamp(h.deps.StartedAt),
		Uptime:  int64(h.now().Sub(h.deps.StartedAt).Seconds()),
	}, nil
}

// @Summary Scene keyword list version and sizes
// @Tags Meta
// @Produce json
// @Success 200 {object} VocabularyResponse
// @Router /meta/vocabulary [get]
func (h *handlers) vocabulary(_ *http.Request) (any, error) {
	sizes := h.deps.Vocab.Sizes()
	cats := make([]VocabularyCategory, 0, len(sizes))
	for _, c := range vocab.Categories() {
		cats = append(cats, VocabularyCategory{Name: string(c), Terms: sizes[c]})
	}
	return VocabularyResponse{
		Version:    h.deps.Vocab.Version,
		Categories: cats,
		Build:      version.Info(),
	}, nil
}
