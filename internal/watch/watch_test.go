package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/skillcheck/internal/watch"
)

func TestWatch_ReportsChanges(t *testing.T) {
	dir := t.TempDir()
	refs := filepath.Join(dir, "references")
	require.NoError(t, os.Mkdir(refs, 0o755))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan []string, 8)
	done := make(chan error, 1)
	go func() {
		done <- watch.Watch(ctx, watch.Options{Roots: []string{dir}, Debounce: 50 * time.Millisecond},
			func(ctx context.Context, changed []string) error {
				select {
				case changes <- changed:
				case <-ctx.Done():
				}
				return nil
			})
	}()

	target := filepath.Join(refs, "guide.md")
	// The watcher registers asynchronously; keep touching the file until it is seen.
	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	var seen []string
	for !slices.Contains(seen, target) {
		select {
		case changed := <-changes:
			seen = append(seen, changed...)
		case <-ticker.C:
			require.NoError(t, os.WriteFile(target, []byte("# Guide\n"), 0o644))
		case <-deadline:
			t.Fatalf("no change reported for %s; saw %v", target, seen)
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancellation")
	}
}

func TestWatch_MissingRoot(t *testing.T) {
	err := watch.Watch(context.Background(), watch.Options{
		Roots: []string{filepath.Join(t.TempDir(), "missing")},
	}, func(context.Context, []string) error { return nil })

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
