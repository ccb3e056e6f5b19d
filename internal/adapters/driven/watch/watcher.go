// Package watch notices new FIT files landing in the local activity
// directory, so the report command can re-run after a sync drops files.
package watch

import (
	"context"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/garmtools/garsync/internal/logger"
)

// debounce groups the burst of events rsync produces per file into a
// single notification.
const debounce = 500 * time.Millisecond

// Watcher emits a signal whenever FIT files appear or change in a directory.
type Watcher struct {
	fsw *fsnotify.Watcher
}

// NewWatcher creates a watcher on dir.
func NewWatcher(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{fsw: fsw}, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Wait blocks until a FIT file event has settled, the context is
// cancelled, or the watcher is closed. Returns true if a FIT file
// changed, false otherwise.
func (w *Watcher) Wait(ctx context.Context) (bool, error) {
	var timer *time.Timer
	var fired <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return false, nil
			}
			if !isFITEvent(event) {
				continue
			}
			logger.Debug("Activity change: %s %s", event.Op, event.Name)
			if timer == nil {
				timer = time.NewTimer(debounce)
				fired = timer.C
			} else {
				timer.Reset(debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return false, nil
			}
			return false, err

		case <-fired:
			return true, nil
		}
	}
}

func isFITEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return false
	}
	return strings.HasSuffix(strings.ToLower(event.Name), ".fit")
}
