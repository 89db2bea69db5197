package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sdejongh/shelfsync/pkg/logging"
)

// Watcher reports filesystem changes anywhere under a set of roots
type Watcher struct {
	watcher *fsnotify.Watcher
	logger  logging.Logger
}

// New watches every directory under each root. Directories created later
// are picked up while Run is active.
func New(roots ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{watcher: fw, logger: logging.NewNullLogger()}
	for _, root := range roots {
		if err := w.addTree(root); err != nil {
			fw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", root, err)
		}
	}

	return w, nil
}

// WithLogger sets the logger and returns w
func (w *Watcher) WithLogger(logger logging.Logger) *Watcher {
	if logger != nil {
		w.logger = logger
	}
	return w
}

// Run calls fn once per burst of changes, after debounce has passed without
// a new event. It blocks until ctx is done or the watcher fails, and closes
// the watcher on return. Changes made by fn itself trigger one more call.
func (w *Watcher) Run(ctx context.Context, debounce time.Duration, fn func(ctx context.Context)) error {
	defer w.watcher.Close()

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.handle(ctx, event) {
				continue
			}
			timer.Reset(debounce)

		case <-timer.C:
			fn(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch failed: %w", err)
		}
	}
}

// Close stops watching without running
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// handle keeps the watch list in step with the tree and reports whether the
// event counts as a change
func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn(ctx, "Failed to watch new directory", logging.Fields{
					"path":  event.Name,
					"error": err.Error(),
				})
			}
		}
	}

	w.logger.Debug(ctx, "Change detected", logging.Fields{
		"path": event.Name,
		"op":   event.Op.String(),
	})
	return true
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}
