// Package repo persists identification audit entries
// postgres keeps one row per request, clickhouse one row per ranked match
package repo

import (
	"context"
	"fmt"

	"animefinder/internal/modkit/repokit"
	perr "animefinder/internal/platform/errors"
	"animefinder/internal/platform/store"
	str "animefinder/internal/platform/strings"
	"animefinder/internal/services/api/identify/domain"
)

// MatchesTable is the clickhouse table fed by InsertMatches
const MatchesTable = "identification_matches"

// Repo is the write surface for identifications
// a side whose backend is disabled is a no op
type Repo interface {
	InsertIdentification(ctx context.Context, e domain.Entry) error
	InsertMatches(ctx context.Context, e domain.Entry) error
}

// NewHybrid returns a binder that writes
// - the request row to Postgres through the bound Queryer
// - one row per match to ClickHouse
func NewHybrid(ch store.Clickhouse) repokit.Binder[Repo] { return &hybridBinder{ch: ch} }

type hybridBinder struct{ ch store.Clickhouse }

// Bind wires a Queryer to the repo; a nil Queryer disables the postgres side
func (b *hybridBinder) Bind(q repokit.Queryer) Repo { return &hybridStore{pg: q, ch: b.ch} }

type hybridStore struct {
	pg repokit.Queryer
	ch store.Clickhouse
}

func (s *hybridStore) InsertIdentification(ctx context.Context, e domain.Entry) error {
	if s.pg == nil {
		return nil
	}
	title, conf := e.TopTitle()
	var topConf any
	if title != "" {
		topConf = conf
	}
	const sql = `
insert into identifications (id, description, success, match_count, top_title, top_confidence, search_ms, error, created_at)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	err := store.ExecOne(ctx, s.pg, sql,
		e.ID, e.Description, e.Success, len(e.Matches),
		str.SQLNull(title), topConf, e.SearchMs, str.SQLNull(e.Error), e.CreatedAt,
	)
	return perr.FromPostgres(err, "insert identification")
}

func (s *hybridStore) InsertMatches(ctx context.Context, e domain.Entry) error {
	if s.ch == nil || len(e.Matches) == 0 {
		return nil
	}
	if err := s.ch.Insert(ctx, MatchesTable, MatchRows(e)); err != nil {
		return fmt.Errorf("insert %s: %w", MatchesTable, err)
	}
	return nil
}

// MatchRows lays out e's matches in identification_matches column order
// rank is 1 based
func MatchRows(e domain.Entry) [][]any {
	rows := make([][]any, 0, len(e.Matches))
	for i, m := range e.Matches {
		rows = append(rows, []any{
			e.ID,
			e.CreatedAt,
			m.Anime.ID,
			m.Anime.Title.Display(),
			m.Confidence,
			uint8(i + 1),
		})
	}
	return rows
}
