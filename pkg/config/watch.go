package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce groups bursts of writes from editors into one reload.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads the config when it, or any extra watched file such as
// the keyword table, changes on disk.
type Watcher struct {
	path     string
	files    map[string]bool
	debounce time.Duration

	mu       sync.Mutex
	onChange []func(*Config)
	timer    *time.Timer

	watcher *fsnotify.Watcher
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewWatcher watches configPath and extra. Empty extra paths are ignored.
func NewWatcher(configPath string, extra ...string) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     configPath,
		files:    make(map[string]bool),
		debounce: DefaultDebounce,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	for _, p := range append([]string{configPath}, extra...) {
		if p != "" {
			w.files[filepath.Clean(p)] = true
		}
	}
	return w
}

// OnChange registers a callback run with the reloaded config.
// Callbacks run on the watcher goroutine.
func (w *Watcher) OnChange(cb func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, cb)
}

// Start begins watching. Directories are watched rather than files so
// atomic renames by editors are seen.
func (w *Watcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	dirs := make(map[string]bool)
	for f := range w.files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("watch directory %s: %w", dir, err)
		}
	}
	w.watcher = watcher

	go w.loop()
	log.Debugf("Watching %d file(s) for config changes", len(w.files))
	return nil
}

// Stop ends watching and cancels any pending reload.
func (w *Watcher) Stop() error {
	w.cancel()
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.files[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warnf("Config watcher: %v", err)
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	if w.ctx.Err() != nil {
		return
	}

	cfg, err := LoadConfig(w.path)
	if err != nil {
		log.Warnf("Reloading config from %s: %v", w.path, err)
		return
	}
	log.Infof("Config reloaded from %s", w.path)

	w.mu.Lock()
	callbacks := append([]func(*Config){}, w.onChange...)
	w.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}
