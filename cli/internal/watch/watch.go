// Package watch re-runs a callback when a file is saved
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yabx-net/mysql/internal/debug"
)

// DefaultDebounce collapses the burst of events editors emit on save
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches a single file
type Watcher struct {
	file     string
	debounce time.Duration
	callback func(ctx context.Context) error
	watcher  *fsnotify.Watcher
}

// New watches file. The containing directory is watched so editors that
// replace the file on save are still seen.
func New(file string, debounce time.Duration, callback func(ctx context.Context) error) (*Watcher, error) {
	absPath, err := filepath.Abs(file)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch directory: %w", err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		file:     absPath,
		debounce: debounce,
		callback: callback,
		watcher:  watcher,
	}, nil
}

// Run calls the callback once, then again after every write to the file,
// until ctx is done. Callback errors are reported through onError and do
// not stop the loop.
func (w *Watcher) Run(ctx context.Context, onError func(error)) error {
	defer w.watcher.Close()

	if err := w.callback(ctx); err != nil {
		onError(err)
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if path, err := filepath.Abs(event.Name); err != nil || path != w.file {
				continue
			}
			debug.Debug("watched file changed", "file", w.file, "op", event.Op.String())
			timer.Reset(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			if err := w.callback(ctx); err != nil {
				onError(err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)

		case <-ctx.Done():
			return nil
		}
	}
}
