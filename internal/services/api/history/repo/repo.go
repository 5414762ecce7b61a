// Package repo reads identification history
// recent rows come from postgres, title aggregates from clickhouse
package repo

import (
	"context"
	"fmt"
	"time"

	"animefinder/internal/modkit/repokit"
	perr "animefinder/internal/platform/errors"
	"animefinder/internal/platform/store"
	"animefinder/internal/services/api/history/domain"
)

// Repo is the read surface for history
// a call whose backend is disabled fails with ErrorCodeUnavailable
type Repo interface {
	Recent(ctx context.Context, limit int) ([]domain.RecentEntry, error)
	TopTitles(ctx context.Context, since time.Time, limit int) ([]domain.TitleCount, error)
}

// NewHybrid returns a binder reading postgres through the bound Queryer and clickhouse through ch
func NewHybrid(ch store.Clickhouse) repokit.Binder[Repo] { return &hybridBinder{ch: ch} }

type hybridBinder struct{ ch store.Clickhouse }

// Bind wires a Queryer to the repo; nil disables Recent
func (b *hybridBinder) Bind(q repokit.Queryer) Repo { return &hybridStore{pg: q, ch: b.ch} }

type hybridStore struct {
	pg repokit.Queryer
	ch store.Clickhouse
}

func (s *hybridStore) Recent(ctx context.Context, limit int) ([]domain.RecentEntry, error) {
	if s.pg == nil {
		return nil, perr.Unavailablef("history requires postgres")
	}
	const sql = `
select id::text, description, success, match_count, top_title, top_confidence, search_ms, coalesce(error, ''), created_at
from identifications
order by created_at desc
limit $1
`
	out, err := store.Many(ctx, s.pg, scanRecent, sql, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "query identifications")
	}
	return out, nil
}

func scanRecent(r store.Row) (domain.RecentEntry, error) {
	var e domain.RecentEntry
	err := r.Scan(&e.ID, &e.Description, &e.Success, &e.MatchCount, &e.TopTitle, &e.TopConfidence, &e.SearchMs, &e.Error, &e.CreatedAt)
	return e, err
}

func (s *hybridStore) TopTitles(ctx context.Context, since time.Time, limit int) ([]domain.TitleCount, error) {
	if s.ch == nil {
		return nil, perr.Unavailablef("title history requires clickhouse")
	}
	const sql = `
		SELECT title, count() AS n, avg(confidence) AS avg_conf
		FROM identification_matches
		WHERE ts >= ?
		GROUP BY title
		ORDER BY n DESC, title ASC
		LIMIT ?
	`
	out, err := store.Many(ctx, s.ch, func(r store.Row) (domain.TitleCount, error) {
		var t domain.TitleCount
		return t, r.Scan(&t.Title, &t.Matches, &t.AvgConfidence)
	}, sql, since, limit)
	if err != nil {
		return nil, perr.Wrap(fmt.Errorf("query identification_matches: %w", err), perr.ErrorCodeDB, "title history query failed")
	}
	return out, nil
}
