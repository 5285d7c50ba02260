package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file when it changes on disk. The parent
// directory is watched so editors that save by renaming are noticed.
//
// Reloads happen on the run goroutine; the debounce timer only sends a
// signal.
type Watcher struct {
	path    string
	updates chan *UserConfig
	errc    chan error
	done    chan struct{}
	signals chan struct{} // debounced reload trigger; capacity 1

	mu       sync.Mutex
	debounce *time.Timer
	stopped  bool
}

// NewWatcher returns a watcher for the config file at path. Call Run in a
// goroutine to start it.
func NewWatcher(path string) *Watcher {
	return &Watcher{
		path:    filepath.Clean(path),
		updates: make(chan *UserConfig, 1),
		errc:    make(chan error, 1),
		done:    make(chan struct{}),
		signals: make(chan struct{}, 1),
	}
}

// Updates delivers each successfully reloaded config. It is closed when the
// watcher stops.
func (w *Watcher) Updates() <-chan *UserConfig { return w.updates }

// Errors delivers watch and reload failures. It is closed when the watcher
// stops.
func (w *Watcher) Errors() <-chan error { return w.errc }

// Stop ends the watcher and cancels any pending reload. It is safe to call
// more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.stopped = true
	close(w.done)
	if w.debounce != nil {
		w.debounce.Stop()
	}
}

func (w *Watcher) sendSignal() {
	select {
	case w.signals <- struct{}{}:
	default:
	}
}

// Run watches until Stop is called or the fsnotify watcher fails to start.
func (w *Watcher) Run() {
	defer close(w.updates)
	defer close(w.errc)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		w.errc <- err
		return
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		w.errc <- err
		return
	}

	for {
		select {
		case <-w.done:
			return

		case <-w.signals:
			w.reload()

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.mu.Lock()
			if w.debounce != nil {
				w.debounce.Stop()
			}
			w.debounce = time.AfterFunc(ReloadDebounce, w.sendSignal)
			w.mu.Unlock()

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.report(err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadFile(w.path)
	if err != nil {
		// A rename that removed the file is followed by a create.
		log.Debug("config reload failed", "path", w.path, "err", err)
		w.report(err)
		return
	}
	log.Info("config reloaded", "path", w.path)

	// Keep only the newest config if the reader is behind.
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- cfg:
	case <-w.done:
	}
}

func (w *Watcher) report(err error) {
	select {
	case w.errc <- err:
	default:
	}
}
