package sync

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sdejongh/shelfsync/pkg/logging"
	"github.com/sdejongh/shelfsync/pkg/models"
)

// DefaultPlan is the sequence a plain sync runs: tidy the local layout after
// the foreign one, then copy what is missing on each side.
var DefaultPlan = []models.Mode{
	models.ModeOnlyFromForeignSync,
	models.ModeOnlyFromLocal,
	models.ModeOnlyFromForeign,
}

// Run performs each mode in order, rescanning before each one, and returns
// a report of every transfer attempted.
func (s *Synchronizer) Run(ctx context.Context, modes ...models.Mode) (*models.SyncReport, error) {
	report := &models.SyncReport{
		ID:          uuid.New().String(),
		LocalPath:   s.local,
		ForeignPath: s.foreign,
		Modes:       modes,
		StartTime:   time.Now(),
	}

	logger := s.logger.WithFields(logging.Fields{"run": report.ID})
	logger.Info(ctx, "Starting sync", logging.Fields{
		"local":   s.local,
		"foreign": s.foreign,
		"modes":   len(modes),
	})

	for i, mode := range modes {
		local, foreign := s.Scan(ctx)
		if i == 0 {
			report.Stats.LocalFilesScanned = local.Len()
			report.Stats.ForeignFilesScanned = foreign.Len()
		}

		outcomes, err := s.apply(ctx, mode, local, foreign)
		if err != nil {
			report.Finish(time.Now())
			report.Status = models.StatusRunFailed
			logger.Error(ctx, "Sync aborted", err, logging.Fields{"mode": string(mode)})
			return report, err
		}
		report.Record(outcomes...)
	}

	report.Finish(time.Now())
	logger.Info(ctx, "Sync completed", logging.Fields{
		"status":   string(report.Status),
		"copied":   report.Stats.FilesCopied,
		"moved":    report.Stats.FilesMoved,
		"errored":  report.Stats.FilesErrored,
		"duration": report.Duration.String(),
	})

	return report, nil
}
