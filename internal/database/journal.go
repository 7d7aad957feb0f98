package database

import (
	"log/slog"

	"github.com/oklog/ulid/v2"

	"github.com/hoverbar/hoverbar/internal/hover"
	"github.com/hoverbar/hoverbar/internal/models"
)

// Journal records hover transitions for one daemon run. It implements
// hover.Recorder; write failures are logged and otherwise ignored.
type Journal struct {
	repo   *Repository
	runID  string
	logger *slog.Logger
}

// NewJournal starts a journal run with a fresh run id
func NewJournal(repo *Repository, logger *slog.Logger) *Journal {
	if logger == nil {
		logger = slog.Default()
	}
	return &Journal{
		repo:   repo,
		runID:  ulid.Make().String(),
		logger: logger,
	}
}

// RunID identifies the transitions written by this journal
func (j *Journal) RunID() string {
	return j.runID
}

// Record stores ev
func (j *Journal) Record(ev hover.Event) {
	tr := &models.Transition{
		RunID:     j.runID,
		Timestamp: ev.At,
		Kind:      string(ev.Kind),
		PointerY:  ev.PointerY,
		DwellMs:   ev.Dwell.Milliseconds(),
	}

	if err := j.repo.Create(tr); err != nil {
		j.logger.Warn("failed to journal transition", "kind", ev.Kind, "error", err)
	}
}
