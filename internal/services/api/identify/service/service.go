// Package service contains the identify workflow
package service

import (
	"context"
	"strings"
	"time"

	"animefinder/internal/adapters/llm"
	"animefinder/internal/core/anime"
	"animefinder/internal/core/scene"
	"animefinder/internal/core/validate"
	"animefinder/internal/platform/config"
	perr "animefinder/internal/platform/errors"
	"animefinder/internal/platform/logger"
	"animefinder/internal/services/api/identify/domain"

	"github.com/google/uuid"
)

// Service defines the identify service contract
type Service interface {
	domain.ServicePort
}

// Config bounds the ranked output
type Config struct {
	MaxResults    int
	ConfidenceCap float64
	Temperature   float64
	MaxTokens     int
}

// ConfigFrom reads CORE_IDENTIFY_* keys with their defaults
func ConfigFrom(c config.Conf) Config {
	c = c.Prefix("CORE_IDENTIFY_")
	return Config{
		MaxResults:    c.MayInt("MAX_RESULTS", 3),
		ConfidenceCap: c.MayFloat64("CONFIDENCE_CAP", 0.95),
		Temperature:   c.MayFloat64("TEMPERATURE", 0.2),
		MaxTokens:     c.MayInt("MAX_TOKENS", 2000),
	}
}

// Svc implements the identify service
type Svc struct {
	llm llm.Completer
	rec domain.Recorder
	cfg Config
	now func() time.Time
}

// New constructs an identify service; a nil recorder records nothing
func New(c llm.Completer, rec domain.Recorder, cfg Config) *Svc {
	if c == nil {
		panic("identify.Service requires a non nil Completer")
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 3
	}
	if cfg.ConfidenceCap <= 0 {
		cfg.ConfidenceCap = 0.95
	}
	cfg.ConfidenceCap = min(cfg.ConfidenceCap, 1)
	// zero is a valid temperature, only negatives fall back
	if cfg.Temperature < 0 {
		cfg.Temperature = 0.2
	}
	return &Svc{llm: c, rec: rec, cfg: cfg, now: time.Now}
}

// Identify validates the description, asks the model once and ranks what it returned
// Only validation is reported as an error; model failures come back as an unsuccessful Result
func (s *Svc) Identify(ctx context.Context, in domain.Request) (domain.Result, error) {
	start := s.now()
	if err := validate.Description(in.Description).Err(); err != nil {
		return domain.Result{}, err
	}

	desc := strings.TrimSpace(in.Description)
	res := domain.Result{
		Matches: []anime.Match{},
		Query: domain.Query{
			ProcessedDescription: desc,
			ExtractedElements:    scene.Extract(desc),
		},
	}

	matches, err := s.identify(ctx, desc, in)
	res.SearchTime = s.now().Sub(start).Milliseconds()
	if err != nil {
		logger.C(ctx).Warn().Err(err).
			Uint16("code", uint16(perr.CodeOf(err))).
			Int64("search_ms", res.SearchTime).
			Msg("identify failed")
		res.Error = perr.MessageOf(err)
	} else {
		res.Success = true
		res.Matches = matches
	}

	s.rec.Record(context.WithoutCancel(ctx), domain.Entry{
		ID:          uuid.NewString(),
		Description: desc,
		Success:     res.Success,
		Matches:     res.Matches,
		SearchMs:    res.SearchTime,
		Error:       res.Error,
		CreatedAt:   start.UTC(),
	})
	return res, nil
}

func (s *Svc) identify(ctx context.Context, desc string, in domain.Request) ([]anime.Match, error) {
	if !s.llm.Configured() {
		return nil, perr.Wrap(llm.ErrNotConfigured, perr.ErrorCodeUnavailable, llm.MsgNotConfigured)
	}

	limit, minConf := s.cfg.MaxResults, 0.0
	if o := in.Options; o != nil {
		if o.MaxResults > 0 {
			limit = o.MaxResults
		}
		minConf = o.MinConfidence
	}

	system, user := buildPrompts(desc, in.AdditionalInfo, limit)
	content, err := s.llm.Complete(ctx, system, user,
		llm.WithTemperature(s.cfg.Temperature),
		llm.WithMaxTokens(s.cfg.MaxTokens),
	)
	if err != nil {
		return nil, err
	}

	matches, err := parseMatches(content)
	if err != nil {
		return nil, err
	}
	if minConf > 0 {
		kept := matches[:0]
		for _, m := range matches {
			if m.Confidence >= minConf {
				kept = append(kept, m)
			}
		}
		matches = kept
	}
	return anime.Rank(matches, limit, s.cfg.ConfidenceCap), nil
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, domain.Entry) {}
