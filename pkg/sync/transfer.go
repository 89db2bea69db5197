package sync

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sdejongh/shelfsync/internal/platform"
	"github.com/sdejongh/shelfsync/pkg/collection"
	"github.com/sdejongh/shelfsync/pkg/logging"
	"github.com/sdejongh/shelfsync/pkg/models"
	"github.com/sdejongh/shelfsync/pkg/ratelimit"
)

// copyFiles copies every entry of source to the same root-relative path
// under destRoot, in entry order.
func (s *Synchronizer) copyFiles(ctx context.Context, logger logging.Logger, source *collection.Collection, destRoot string, dir models.Direction) []models.TransferOutcome {
	outcomes := make([]models.TransferOutcome, 0, source.Len())
	s.begin(models.OperationCopy, dir, source.Len())

	source.Each(func(e collection.Entry) bool {
		outcome := s.copyEntry(source.Root(), e, destRoot, dir)
		s.record(ctx, logger, outcome)
		outcomes = append(outcomes, outcome)
		return true
	})

	return outcomes
}

func (s *Synchronizer) copyEntry(sourceRoot string, e collection.Entry, destRoot string, dir models.Direction) models.TransferOutcome {
	dst, err := platform.Rebase(e.Path(), sourceRoot, destRoot)
	if err != nil {
		return models.Failed(models.OperationCopy, dir, e.Name(), e.Path(), "", err)
	}

	if err := s.ensureParent(dst); err != nil {
		return models.Failed(models.OperationCopy, dir, e.Name(), e.Path(), dst, err)
	}

	n, err := s.copyFile(e.Path(), dst)
	if err != nil {
		return models.Failed(models.OperationCopy, dir, e.Name(), e.Path(), dst, err)
	}

	outcome := models.Succeeded(models.OperationCopy, dir, e.Name(), e.Path(), dst)
	outcome.Bytes = n
	return outcome
}

// copyFile copies src over dst, truncating dst if it already exists, and
// returns the number of bytes written
func (s *Synchronizer) copyFile(src, dst string) (int64, error) {
	info, err := s.fs.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("failed to stat source: %w", err)
	}

	in, err := s.fs.Open(src)
	if err != nil {
		return 0, fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	out, err := s.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, fmt.Errorf("failed to create destination: %w", err)
	}

	n, err := io.Copy(out, ratelimit.NewReader(in, s.limiter))
	if err != nil {
		out.Close()
		return n, fmt.Errorf("failed to write destination: %w", err)
	}

	if err := out.Close(); err != nil {
		return n, fmt.Errorf("failed to close destination: %w", err)
	}

	return n, nil
}

// pendingMove is one position-paired entry whose layout differs
type pendingMove struct {
	name   string
	from   string
	to     string
	relErr error
}

// moveFiles pairs the entries of source and dest by iteration position and,
// for every pair whose root-relative paths differ, renames the dest-side file
// to the source entry's relative path under dest's root. Pairing stops at the
// shorter collection. Pairs are matched by position, not by name.
func (s *Synchronizer) moveFiles(ctx context.Context, logger logging.Logger, source, dest *collection.Collection, dir models.Direction) []models.TransferOutcome {
	pending := pairMoves(source, dest)

	outcomes := make([]models.TransferOutcome, 0, len(pending))
	s.begin(models.OperationMove, dir, len(pending))

	for _, m := range pending {
		outcome := s.moveEntry(m, dir)
		s.record(ctx, logger, outcome)
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

func pairMoves(source, dest *collection.Collection) []pendingMove {
	src, dst := source.Entries(), dest.Entries()
	n := min(len(src), len(dst))

	var pending []pendingMove
	for i := 0; i < n; i++ {
		srcRel, err := platform.Rel(source.Root(), src[i].Path())
		if err != nil {
			pending = append(pending, pendingMove{name: src[i].Name(), from: dst[i].Path(), relErr: err})
			continue
		}
		dstRel, err := platform.Rel(dest.Root(), dst[i].Path())
		if err != nil {
			pending = append(pending, pendingMove{name: src[i].Name(), from: dst[i].Path(), relErr: err})
			continue
		}
		if srcRel == dstRel {
			continue
		}
		pending = append(pending, pendingMove{
			name: src[i].Name(),
			from: dst[i].Path(),
			to:   filepath.Join(dest.Root(), srcRel),
		})
	}

	return pending
}

func (s *Synchronizer) moveEntry(m pendingMove, dir models.Direction) models.TransferOutcome {
	if m.relErr != nil {
		return models.Failed(models.OperationMove, dir, m.name, m.from, m.to, m.relErr)
	}

	if err := s.ensureParent(m.to); err != nil {
		return models.Failed(models.OperationMove, dir, m.name, m.from, m.to, err)
	}

	if err := s.fs.Rename(m.from, m.to); err != nil {
		return models.Failed(models.OperationMove, dir, m.name, m.from, m.to, fmt.Errorf("failed to move: %w", err))
	}

	return models.Succeeded(models.OperationMove, dir, m.name, m.from, m.to)
}

// ensureParent creates every missing directory above path
func (s *Synchronizer) ensureParent(path string) error {
	parent := filepath.Dir(path)
	if info, err := s.fs.Stat(parent); err == nil && info.IsDir() {
		return nil
	}
	if err := s.fs.MkdirAll(parent, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}
