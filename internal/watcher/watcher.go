// Package watcher re-runs a callback when declaration tree files change.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of writes to settle.
const DefaultDebounce = 200 * time.Millisecond

// ChangeFunc receives the sorted set of files that changed in one burst.
type ChangeFunc func(ctx context.Context, changed []string)

// Watcher watches input files and directories for tree file changes.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	onChange  ChangeFunc

	// files are the explicitly named inputs; dirs are watched directories
	// whose .json files all count.
	files map[string]struct{}
	dirs  map[string]struct{}

	debounce time.Duration
	logger   *slog.Logger
	onError  func(error)
}

// Option configures the watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce delay.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithOnError sets the callback for watch errors.
func WithOnError(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// New creates a Watcher over the given input paths. A file input is watched
// through its parent directory so editors that replace files are seen; a
// directory input is watched recursively.
func New(paths []string, onChange ChangeFunc, opts ...Option) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("watcher needs a change callback")
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		onChange:  onChange,
		files:     make(map[string]struct{}),
		dirs:      make(map[string]struct{}),
		debounce:  DefaultDebounce,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, p := range paths {
		if err := w.add(filepath.Clean(p)); err != nil {
			_ = fsWatcher.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	if info.IsDir() {
		return w.watchDir(path)
	}
	w.files[path] = struct{}{}
	if err := w.fsWatcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	return nil
}

// watchDir recursively adds a directory to the watcher.
func (w *Watcher) watchDir(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsWatcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		w.dirs[path] = struct{}{}
		return nil
	})
}

// relevant reports whether an event path is one of the inputs.
func (w *Watcher) relevant(name string) bool {
	name = filepath.Clean(name)
	if _, ok := w.files[name]; ok {
		return true
	}
	if !strings.EqualFold(filepath.Ext(name), ".json") {
		return false
	}
	_, ok := w.dirs[filepath.Dir(name)]
	return ok
}

// Run handles events until ctx is done. The callback runs on the watch
// goroutine, so bursts arriving during a callback are batched into the next
// one.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.fsWatcher.Close() }()

	pending := make(map[string]struct{})
	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			if !w.handleEvent(event) {
				continue
			}
			pending[filepath.Clean(event.Name)] = struct{}{}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			timerC = timer.C

		case <-timerC:
			timerC = nil
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			clear(pending)
			slices.Sort(changed)

			w.logger.Debug("inputs changed", slog.Int("files", len(changed)))
			w.onChange(ctx, changed)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", slog.String("error", err.Error()))
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

// handleEvent picks up new subdirectories and reports whether the event
// should trigger a re-check.
func (w *Watcher) handleEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	if event.Op&fsnotify.Create != 0 {
		if _, ok := w.dirs[filepath.Dir(filepath.Clean(event.Name))]; ok {
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if err := w.watchDir(filepath.Clean(event.Name)); err != nil {
					w.logger.Warn("failed to watch new directory",
						slog.String("path", event.Name),
						slog.String("error", err.Error()))
				}
				return false
			}
		}
	}

	return w.relevant(event.Name)
}
