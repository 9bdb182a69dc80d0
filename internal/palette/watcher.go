package palette

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Iron-Ham/windrose/internal/errors"
	"github.com/Iron-Ham/windrose/internal/logging"
)

// debounceInterval collapses the bursts of events editors emit per save.
const debounceInterval = 100 * time.Millisecond

// Change describes a palette that was reloaded or removed on disk.
type Change struct {
	Name    string
	Path    string
	Removed bool
	// Err is set when the file changed but failed to load; the previously
	// registered palette, if any, stays in place.
	Err error
}

// Watcher reloads palette files into a Registry as they change.
type Watcher struct {
	watcher  *fsnotify.Watcher
	registry *Registry
	onChange func(Change)
	logger   *logging.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// Watch starts watching dir and applies changes to reg, calling fn (which
// may be nil) after each change. Close stops the watcher.
func Watch(dir string, reg *Registry, fn func(Change), logger *logging.Logger) (*Watcher, error) {
	if logger == nil {
		logger = logging.NopLogger()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.NewPaletteError("creating palette watcher", err).WithPath(dir)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, errors.NewPaletteError("watching palettes directory", err).WithPath(dir)
	}

	w := &Watcher{
		watcher:  fw,
		registry: reg,
		onChange: fn,
		logger:   logger.WithComponent("palette-watcher"),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		err = w.watcher.Close()
		<-w.doneCh
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.doneCh)

	debounce := time.NewTimer(debounceInterval)
	if !debounce.Stop() {
		<-debounce.C
	}
	pending := make(map[string]fsnotify.Op)

	for {
		select {
		case <-w.stopCh:
			debounce.Stop()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isPaletteFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			pending[event.Name] |= event.Op
			debounce.Reset(debounceInterval)

		case <-debounce.C:
			events := pending
			pending = make(map[string]fsnotify.Op)
			for path, op := range events {
				w.apply(path, op)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("palette watcher error", "error", err)
		}
	}
}

func (w *Watcher) apply(path string, op fsnotify.Op) {
	change := Change{Name: NameFromPath(path), Path: filepath.Clean(path)}

	if op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
		if _, err := LoadFile(path); err != nil {
			// Gone for good rather than replaced by an atomic save.
			change.Removed = w.registry.Unregister(change.Name)
			if !change.Removed {
				return
			}
			w.logger.Info("palette removed", "palette", change.Name)
			w.notify(change)
			return
		}
	}

	if _, err := w.registry.LoadPath(path); err != nil {
		change.Err = err
		w.logger.Warn("palette reload failed", "palette", change.Name, "error", err)
	} else {
		w.logger.Info("palette reloaded", "palette", change.Name)
	}
	w.notify(change)
}

func (w *Watcher) notify(c Change) {
	if w.onChange != nil {
		w.onChange(c)
	}
}
