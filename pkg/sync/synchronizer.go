package sync

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/sdejongh/shelfsync/pkg/collection"
	"github.com/sdejongh/shelfsync/pkg/indexer"
	"github.com/sdejongh/shelfsync/pkg/logging"
	"github.com/sdejongh/shelfsync/pkg/models"
	"github.com/sdejongh/shelfsync/pkg/ratelimit"
)

// Observer is notified while transfers run
type Observer interface {
	// Begin is called before a batch of transfers in one direction
	Begin(op models.Operation, dir models.Direction, total int)
	// Transferred is called after every transfer attempt
	Transferred(outcome models.TransferOutcome)
}

// Synchronizer keeps a local and a foreign directory tree in step by file name.
// It holds configuration only; every Update rescans both trees.
type Synchronizer struct {
	local    string
	foreign  string
	fs       billy.Filesystem
	indexer  *indexer.Indexer
	logger   logging.Logger
	limiter  *ratelimit.Limiter
	observer Observer
}

// Option configures a Synchronizer
type Option func(*Synchronizer)

// WithFilesystem runs the synchronizer against fs instead of the host filesystem
func WithFilesystem(fs billy.Filesystem) Option {
	return func(s *Synchronizer) {
		s.fs = fs
	}
}

// WithLogger sets the logger
func WithLogger(logger logging.Logger) Option {
	return func(s *Synchronizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLimiter throttles file copies; a nil limiter disables throttling
func WithLimiter(limiter *ratelimit.Limiter) Option {
	return func(s *Synchronizer) {
		s.limiter = limiter
	}
}

// WithObserver reports transfer progress to observer
func WithObserver(observer Observer) Option {
	return func(s *Synchronizer) {
		s.observer = observer
	}
}

// New creates a synchronizer for the local and foreign roots.
// On the host filesystem both roots are made absolute.
func New(local, foreign string, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		local:   filepath.Clean(local),
		foreign: filepath.Clean(foreign),
		logger:  logging.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.fs == nil {
		s.fs = osfs.New("/")
		if abs, err := filepath.Abs(s.local); err == nil {
			s.local = abs
		}
		if abs, err := filepath.Abs(s.foreign); err == nil {
			s.foreign = abs
		}
	}
	s.indexer = indexer.New(s.fs)

	return s
}

// Local returns the local root
func (s *Synchronizer) Local() string {
	return s.local
}

// Foreign returns the foreign root
func (s *Synchronizer) Foreign() string {
	return s.foreign
}

// Scan indexes the local root, then the foreign root
func (s *Synchronizer) Scan(ctx context.Context) (local, foreign *collection.Collection) {
	local = s.indexer.Index(s.local)
	foreign = s.indexer.Index(s.foreign)

	s.logger.Info(ctx, "Scanned roots", logging.Fields{
		"local_files":   local.Len(),
		"foreign_files": foreign.Len(),
	})

	return local, foreign
}

// Update scans both roots and performs the transfers mode calls for.
// Failures are recorded per file and never stop the remaining transfers;
// the only error is an unknown mode.
func (s *Synchronizer) Update(ctx context.Context, mode models.Mode) ([]models.TransferOutcome, error) {
	local, foreign := s.Scan(ctx)
	return s.apply(ctx, mode, local, foreign)
}

func (s *Synchronizer) apply(ctx context.Context, mode models.Mode, local, foreign *collection.Collection) ([]models.TransferOutcome, error) {
	logger := s.logger.WithFields(logging.Fields{"mode": string(mode)})

	switch mode {
	case models.ModeOnlyFromLocal:
		return s.copyFiles(ctx, logger, local.Difference(foreign), s.foreign, models.ToForeign), nil

	case models.ModeOnlyFromForeign:
		return s.copyFiles(ctx, logger, foreign.Difference(local), s.local, models.ToLocal), nil

	case models.ModeBidirectional:
		// both differences come from the same scan
		toForeign, toLocal := local.Difference(foreign), foreign.Difference(local)
		outcomes := s.copyFiles(ctx, logger, toForeign, s.foreign, models.ToForeign)
		return append(outcomes, s.copyFiles(ctx, logger, toLocal, s.local, models.ToLocal)...), nil

	case models.ModeOnlyFromLocalSync:
		return s.moveFiles(ctx, logger, local, foreign, models.ToForeign), nil

	case models.ModeOnlyFromForeignSync:
		return s.moveFiles(ctx, logger, foreign, local, models.ToLocal), nil

	default:
		return nil, fmt.Errorf("unsupported mode: %q", mode)
	}
}

func (s *Synchronizer) begin(op models.Operation, dir models.Direction, total int) {
	if s.observer != nil {
		s.observer.Begin(op, dir, total)
	}
}

func (s *Synchronizer) record(ctx context.Context, logger logging.Logger, outcome models.TransferOutcome) {
	fields := logging.Fields{
		"name":        outcome.Name,
		"source":      outcome.Source,
		"destination": outcome.Destination,
	}
	if outcome.IsFailed() {
		fields["operation"] = string(outcome.Operation)
		fields["reason"] = outcome.Reason
		logger.Warn(ctx, "Transfer failed", fields)
	} else {
		logger.Debug(ctx, "Transferred "+string(outcome.Status), fields)
	}

	if s.observer != nil {
		s.observer.Transferred(outcome)
	}
}
