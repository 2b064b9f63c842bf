package sync

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/MikeBiancalana/datepick/internal/config"
	"github.com/MikeBiancalana/datepick/internal/logger"
	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 100 * time.Millisecond

// Watcher reloads the config file when it changes on disk and publishes
// each successfully loaded config on Changes. Failed reloads are reported on
// Errors.
type Watcher struct {
	watcher       *fsnotify.Watcher
	path          string
	load          func(string) (*config.Config, error)
	changes       chan *config.Config
	errs          chan error
	done          chan struct{}
	mu            sync.Mutex
	debounceTimer *time.Timer
	current       *config.Config
	stopped       bool
}

// NewWatcher creates a watcher for the config file at path. initial is the
// config already in use; it is kept when a reload fails.
func NewWatcher(path string, initial *config.Config) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &Watcher{
		watcher: fsWatcher,
		path:    filepath.Clean(path),
		load:    config.LoadFrom,
		changes: make(chan *config.Config, 10),
		errs:    make(chan error, 10),
		done:    make(chan struct{}),
		current: initial,
	}, nil
}

// Start begins watching. The directory is watched rather than the file so
// that editors which save by renaming are noticed.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	go w.watch()
	return nil
}

// Stop stops the watcher and closes the Changes and Errors channels.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	close(w.done)
	close(w.changes)
	close(w.errs)
	w.mu.Unlock()

	w.watcher.Close()
}

// Changes returns the channel of reloaded configs.
func (w *Watcher) Changes() <-chan *config.Config {
	return w.changes
}

// Errors returns the channel of reload and watch failures.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Current returns the most recently loaded config.
func (w *Watcher) Current() *config.Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Path returns the watched config file.
func (w *Watcher) Path() string {
	return w.path
}

func (w *Watcher) watch() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			w.mu.Lock()
			if w.debounceTimer != nil {
				w.debounceTimer.Stop()
			}
			if !w.stopped {
				w.debounceTimer = time.AfterFunc(debounceDelay, w.reload)
			}
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher error", "error", err)
			w.report(fmt.Errorf("watching config: %w", err))
		}
	}
}

// reload runs once a burst of events has settled.
func (w *Watcher) reload() {
	cfg, err := w.load(w.path)
	if err != nil {
		logger.Warn("config reload failed, keeping previous config", "path", w.path, "error", err)
		w.report(err)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.current = cfg
	select {
	case w.changes <- cfg:
		logger.Debug("config reloaded", "path", w.path)
	default:
		logger.Warn("config change dropped, listener is not keeping up", "path", w.path)
	}
}

// report publishes err without blocking. Errors after Stop are dropped.
func (w *Watcher) report(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	select {
	case w.errs <- err:
	default:
		logger.Warn("config error dropped, listener is not keeping up", "error", err)
	}
}
