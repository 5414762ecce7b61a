package repo

import (
	"context"
	"time"

	"animefinder/internal/modkit/repokit"
	"animefinder/internal/platform/logger"
	"animefinder/internal/services/api/identify/domain"
)

// recordTimeout bounds both writes together
const recordTimeout = 3 * time.Second

// Recorder writes audit entries and swallows failures after logging them
type Recorder struct {
	repo Repo
	log  logger.Logger
}

// NewRecorder binds the repo to db, which may be nil when postgres is disabled
func NewRecorder(db repokit.TxRunner, binder repokit.Binder[Repo]) *Recorder {
	if binder == nil {
		panic("identify.Recorder requires a non nil Repo binder")
	}
	var q repokit.Queryer
	if db != nil {
		q = db
	}
	return &Recorder{repo: binder.Bind(q), log: *logger.Named("identify.recorder")}
}

// Record implements domain.Recorder
func (r *Recorder) Record(ctx context.Context, e domain.Entry) {
	ctx, cancel := context.WithTimeout(ctx, recordTimeout)
	defer cancel()

	if err := r.repo.InsertIdentification(ctx, e); err != nil {
		r.log.Warn().Err(err).Str("id", e.ID).Msg("record identification failed")
	}
	if err := r.repo.InsertMatches(ctx, e); err != nil {
		r.log.Warn().Err(err).Str("id", e.ID).Int("matches", len(e.Matches)).Msg("record matches failed")
	}
}
