// Package service contains history workflows
package service

import (
	"context"
	"time"

	"animefinder/internal/modkit/repokit"
	"animefinder/internal/services/api/history/domain"
	"animefinder/internal/services/api/history/repo"
)

// Service defines the history service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the history service
type Svc struct {
	Repo repo.Repo
	now  func() time.Time
}

// New constructs a history service; db may be nil when postgres is disabled
func New(db repokit.Queryer, binder repokit.Binder[repo.Repo]) *Svc {
	if binder == nil {
		panic("history.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), now: time.Now}
}

// Recent returns the latest identifications, newest first
func (s *Svc) Recent(ctx context.Context, in domain.RecentInput) ([]domain.RecentEntry, error) {
	if in.Limit <= 0 {
		in.Limit = domain.DefaultRecentLimit
	}
	return s.Repo.Recent(ctx, in.Limit)
}

// Titles returns the most matched titles over the window
func (s *Svc) Titles(ctx context.Context, in domain.TitlesInput) ([]domain.TitleCount, error) {
	if in.Days <= 0 {
		in.Days = domain.DefaultTitlesDays
	}
	if in.Limit <= 0 {
		in.Limit = domain.DefaultTitlesLimit
	}
	since := s.now().UTC().AddDate(0, 0, -in.Days)
	return s.Repo.TopTitles(ctx, since, in.Limit)
}
