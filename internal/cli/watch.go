package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// watchAndRun executes run once, then again every time the program file
// changes, until the context is cancelled. Run errors are printed rather
// than returned so a broken edit does not end the session.
func watchAndRun(ctx context.Context, path string, run func(context.Context) error) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve watch path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Close()

	// Watch the directory: editors replace files on save, which would
	// silently drop a watch placed on the file itself.
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	runOnce := func() {
		if err := run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "bft: %v\n", err)
		}
		fmt.Fprintf(os.Stderr, "watching %s (ctrl-c to stop)\n", path)
	}
	runOnce()

	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	dirty := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			dirty = true
			debounce.Reset(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "bft: watch: %v\n", err)
		case <-debounce.C:
			if dirty {
				dirty = false
				runOnce()
			}
		}
	}
}
