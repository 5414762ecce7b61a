// Package service asks the model for similar titles and ranks the reply
package service

import (
	"context"
	"fmt"
	"strings"

	"animefinder/internal/adapters/llm"
	"animefinder/internal/core/anime"
	"animefinder/internal/core/normalize"
	"animefinder/internal/platform/config"
	perr "animefinder/internal/platform/errors"
	"animefinder/internal/platform/logger"
	"animefinder/internal/services/api/recommend/domain"
)

const systemPrompt = "You are an anime recommendation expert. Provide thoughtful, diverse recommendations based on user preferences. Always respond with valid JSON."

// Service defines the recommend service contract
type Service interface {
	domain.ServicePort
}

// Config tunes the single completion and the ranked output
type Config struct {
	MaxResults  int
	Temperature float64
	MaxTokens   int
}

// ConfigFrom reads CORE_RECOMMEND_* keys with their defaults
func ConfigFrom(c config.Conf) Config {
	c = c.Prefix("CORE_RECOMMEND_")
	return Config{
		MaxResults:  c.MayInt("MAX_RESULTS", 5),
		Temperature: c.MayFloat64("TEMPERATURE", 0.4),
		MaxTokens:   c.MayInt("MAX_TOKENS", 1500),
	}
}

// Svc implements the recommend service
type Svc struct {
	llm llm.Completer
	cfg Config
}

// New constructs a recommend service
func New(c llm.Completer, cfg Config) *Svc {
	if c == nil {
		panic("recommend.Service requires a non nil Completer")
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 5
	}
	if cfg.Temperature < 0 {
		cfg.Temperature = 0.4
	}
	return &Svc{llm: c, cfg: cfg}
}

// Recommend asks the model once; model failures come back as an unsuccessful Result
func (s *Svc) Recommend(ctx context.Context, in domain.Request) (domain.Result, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Result{}, perr.WithField(perr.Validationf("Title is required"), "title")
	}

	recs, err := s.recommend(ctx, title, in)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("title", title).Msg("recommend failed")
		return domain.Result{Recommendations: []domain.Recommendation{}, Error: perr.MessageOf(err)}, nil
	}
	return domain.Result{Success: true, Recommendations: recs}, nil
}

func (s *Svc) recommend(ctx context.Context, title string, in domain.Request) ([]domain.Recommendation, error) {
	if !s.llm.Configured() {
		return nil, perr.Wrap(llm.ErrNotConfigured, perr.ErrorCodeUnavailable, llm.MsgNotConfigured)
	}
	content, err := s.llm.Complete(ctx, systemPrompt, buildPrompt(title, in, s.cfg.MaxResults),
		llm.WithTemperature(s.cfg.Temperature),
		llm.WithMaxTokens(s.cfg.MaxTokens),
	)
	if err != nil {
		return nil, err
	}

	var reply struct {
		Recommendations *[]domain.Recommendation `json:"recommendations"`
	}
	if err := llm.DecodeJSON(content, &reply); err != nil {
		return nil, err
	}
	if reply.Recommendations == nil {
		return nil, perr.Wrap(fmt.Errorf("%w: reply has no recommendations array", llm.ErrInvalidResponse), perr.ErrorCodeUpstream, llm.MsgInvalidResponse)
	}

	seed := normalize.Fold(title)
	out := make([]domain.Recommendation, 0, len(*reply.Recommendations))
	for _, r := range *reply.Recommendations {
		r.Title = strings.TrimSpace(r.Title)
		if r.Title == "" || normalize.Fold(r.Title) == seed {
			continue
		}
		if r.Genres == nil {
			r.Genres = []string{}
		}
		out = append(out, r)
	}
	return anime.RankBy(out, s.cfg.MaxResults, 1.0, func(r *domain.Recommendation) *float64 { return &r.Confidence }), nil
}

func buildPrompt(title string, in domain.Request, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on the anime %q", normalize.Clean(title))
	if g := cleanList(in.Genres); g != "" {
		fmt.Fprintf(&b, " with genres [%s]", g)
	}
	fmt.Fprintf(&b, ", recommend %d similar anime that the user might enjoy.\n\n", n)
	b.WriteString("Consider:\n- Similar themes and storytelling style\n- Character dynamics and development\n- Visual style and production quality\n- Emotional tone and pacing\n\n")
	if l := cleanList(in.Likes); l != "" {
		fmt.Fprintf(&b, "User likes: %s\n", l)
	}
	if d := cleanList(in.Dislikes); d != "" {
		fmt.Fprintf(&b, "User dislikes: %s\n", d)
	}
	b.WriteString(`Respond with JSON of the form {"recommendations":[{"title":"...","reasoning":"...","confidence":0.8,"genres":["..."]}]}`)
	return b.String()
}

func cleanList(vs []string) string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		if v = normalize.Clean(v); v != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, ", ")
}
