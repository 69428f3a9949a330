package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher monitors a single plan file and invokes the callback after the
// file changes, debounced so editor save bursts trigger one re-analysis.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	onChange func()
	debounce time.Duration
	timer    *time.Timer
	logger   *zap.Logger
	running  bool
	doneCh   chan struct{}

	// fireMu serializes the debounced callback against Close, so the
	// callback never starts after Close has returned.
	fireMu sync.Mutex
	closed bool
}

// New creates a Watcher for path. The parent directory is watched rather
// than the file itself so rename-style saves keep working.
func New(path string, onChange func(), logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{
		watcher:  fsw,
		path:     abs,
		onChange: onChange,
		debounce: 500 * time.Millisecond,
		logger:   logger,
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching; non-blocking. Stops when ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		// The event loop never started, so Close must not wait for it.
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	go w.loop(ctx)
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("plan file changed", zap.String("path", w.path), zap.String("op", event.Op.String()))
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.timer = time.AfterFunc(w.debounce, w.fire)
			w.mu.Unlock()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) fire() {
	w.fireMu.Lock()
	defer w.fireMu.Unlock()
	if w.closed {
		return
	}
	w.onChange()
}

// Close stops the watcher and waits for the event loop to exit. Once
// Close returns, the change callback will not be invoked again.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	w.mu.Lock()
	running := w.running
	w.mu.Unlock()
	if running {
		<-w.doneCh
	}
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	// A timer that already fired past Stop still goes through fire,
	// which sees closed and returns without calling back.
	w.fireMu.Lock()
	w.closed = true
	w.fireMu.Unlock()
	return err
}
