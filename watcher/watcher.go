package watcher

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/reqcraft/rqc/parser"
)

const defaultDebounce = 200 * time.Millisecond

// Watcher observes a directory tree for .rqc changes and invokes a callback
// after each settled burst of events.
type Watcher struct {
	// Debounce is how long the watcher waits after the last event before
	// firing. Defaults to 200ms.
	Debounce time.Duration
	// Logger is the structured logger for watch events.
	// If nil, logging is disabled (default).
	Logger parser.Logger
}

// New creates a Watcher with default settings.
func New() *Watcher {
	return &Watcher{}
}

func (w *Watcher) log() parser.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return parser.NopLogger{}
}

func (w *Watcher) debounce() time.Duration {
	if w.Debounce > 0 {
		return w.Debounce
	}
	return defaultDebounce
}

// Watch blocks until ctx is cancelled, calling onChange after each debounced
// burst of .rqc changes under dir. Directories created while watching are
// picked up automatically.
func (w *Watcher) Watch(ctx context.Context, dir string, onChange func()) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = fsw.Close() }()

	if err := addRecursive(fsw, dir); err != nil {
		return err
	}
	w.log().Info("watching for changes", "dir", dir)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				// New directories need their own watch to keep the
				// tree covered.
				if err := addRecursive(fsw, event.Name); err == nil {
					w.log().Debug("watching new path", "path", event.Name)
				}
			}
			if !isDocumentEvent(event) {
				continue
			}
			w.log().Debug("document changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce())
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce())
			}
		case <-fire:
			timer = nil
			fire = nil
			onChange()
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log().Warn("watch error", "error", err)
		}
	}
}

func isDocumentEvent(event fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(event.Name), ".rqc") {
		return false
	}
	return event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Remove) ||
		event.Op.Has(fsnotify.Rename)
}

// addRecursive watches path and every directory below it. Non-directory
// paths are ignored.
func addRecursive(fsw *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == path {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		return fsw.Add(p)
	})
}
