package repo

import (
	"context"

	"animefinder/internal/modkit/repokit"
	perr "animefinder/internal/platform/errors"
	"animefinder/internal/platform/store"
)

// PGSchema creates the postgres audit table, idempotent
var PGSchema = []string{
	`create table if not exists identifications (
	id uuid primary key,
	description text not null,
	success boolean not null,
	match_count integer not null,
	top_title text,
	top_confidence double precision,
	search_ms bigint not null,
	error text,
	created_at timestamptz not null default now()
)`,
	`create index if not exists identifications_created_at_idx on identifications (created_at desc)`,
}

// CHSchema creates the clickhouse match table, idempotent
var CHSchema = []string{
	`CREATE TABLE IF NOT EXISTS identification_matches (
	event_id String,
	ts DateTime64(3, 'UTC'),
	anime_id String,
	title String,
	confidence Float64,
	rank UInt8
) ENGINE = MergeTree
ORDER BY (ts, event_id)`,
}

// EnsureSchema applies both schemas to whichever backends are non nil
func EnsureSchema(ctx context.Context, pg repokit.Queryer, ch store.Clickhouse) error {
	if pg != nil {
		for _, ddl := range PGSchema {
			if _, err := pg.Exec(ctx, ddl); err != nil {
				return perr.FromPostgres(err, "ensure identifications schema")
			}
		}
	}
	if ch != nil {
		for _, ddl := range CHSchema {
			if err := ch.Exec(ctx, ddl); err != nil {
				return perr.Wrap(err, perr.ErrorCodeDB, "ensure identification_matches schema")
			}
		}
	}
	return nil
}
