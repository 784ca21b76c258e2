// Package watch re-runs a callback when files under a set of directories change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/skillcheck/internal/logging"
)

// DefaultDebounce is the quiet period used when Options.Debounce is not set.
const DefaultDebounce = 300 * time.Millisecond

// skipDirs are directory names never watched.
//
//nolint:gochecknoglobals // Read-only lookup table.
var skipDirs = []string{".git", ".hg", ".svn", "node_modules"}

// Options configures a watch session.
type Options struct {
	// Roots are the files or directories to watch. Directories are watched recursively.
	Roots []string

	// Debounce is how long the tree must stay quiet before the callback runs.
	Debounce time.Duration

	// Logger receives watcher diagnostics. Defaults to the logger in ctx.
	Logger *log.Logger
}

// ChangeFunc is called with the sorted, de-duplicated paths changed since the
// previous call. A returned error is logged and does not stop the session.
type ChangeFunc func(ctx context.Context, changed []string) error

// Watch blocks until ctx is cancelled, calling onChange after every debounced
// burst of file system events. It returns nil on cancellation.
func Watch(ctx context.Context, opts Options, onChange ChangeFunc) error {
	logger := opts.Logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, root := range opts.Roots {
		if err := addTree(watcher, root); err != nil {
			return err
		}
	}
	logger.Debug("watching", logging.FieldPaths, opts.Roots, "directories", len(watcher.WatchList()))

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			if event.Has(fsnotify.Create) && isWatchableDir(event.Name) {
				if err := addTree(watcher, event.Name); err != nil {
					logger.Warn("watch new directory", logging.FieldPath, event.Name, logging.FieldError, err)
				}
			}
			pending[event.Name] = struct{}{}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", logging.FieldError, err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			slices.Sort(changed)
			clear(pending)

			logger.Debug("change detected", logging.FieldFiles, len(changed))
			if err := onChange(ctx, changed); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				logger.Error("re-run failed", logging.FieldError, err)
			}
		}
	}
}

// relevant filters out attribute-only events.
func relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func isWatchableDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir() && !slices.Contains(skipDirs, filepath.Base(path))
}

// addTree watches root and, when it is a directory, every directory below it.
// A file root is watched through its parent directory.
func addTree(watcher *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	if !info.IsDir() {
		if err := watcher.Add(filepath.Dir(root)); err != nil {
			return fmt.Errorf("watch %s: %w", root, err)
		}
		return nil
	}

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && slices.Contains(skipDirs, entry.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	return nil
}
