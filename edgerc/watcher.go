package edgerc

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/gridauth/edgegrid/auth"
)

// defaultDebounce coalesces the burst of file system events most editors
// emit for a single save.
const defaultDebounce = 100 * time.Millisecond

// CredentialsCallback is called with freshly loaded credentials after the
// credentials file changed and the new section validated.
type CredentialsCallback func(auth.Credentials)

// ErrorCallback is called when a reload attempt fails.
type ErrorCallback func(error)

// Watcher watches a credentials file and delivers fresh credentials on
// change. Reloads that fail to parse or validate are reported through the
// error callback and leave the last good credentials in place.
//
// The usual wiring forwards updates into a signer:
//
//	watcher, err := edgerc.NewWatcher(path, edgerc.DefaultSection, func(creds auth.Credentials) {
//	    _ = signer.SetCredentials(creds)
//	})
type Watcher struct {
	path     string
	section  string
	watcher  *fsnotify.Watcher // created by Start, closed by Stop
	callback CredentialsCallback

	errorCallback ErrorCallback
	logger        *zap.Logger
	debounce      time.Duration

	mu      sync.RWMutex
	last    auth.Credentials
	running bool

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the delay used to coalesce file events into one reload.
func WithDebounce(delay time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = delay
	}
}

// WithLogger sets the watcher's logger. Defaults to a nop logger.
func WithLogger(logger *zap.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithErrorCallback sets a callback invoked when a reload fails.
func WithErrorCallback(callback ErrorCallback) WatcherOption {
	return func(w *Watcher) {
		w.errorCallback = callback
	}
}

// NewWatcher creates a watcher for the named section of the credentials file
// at path. The callback receives every successfully loaded update.
func NewWatcher(path, section string, callback CredentialsCallback, opts ...WatcherOption) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	if section == "" {
		section = DefaultSection
	}

	w := &Watcher{
		path:      absPath,
		section:   section,
		callback:  callback,
		logger:    zap.NewNop(),
		debounce:  defaultDebounce,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Start loads the file once and begins watching it. The initial load must
// succeed; later reload failures only surface through the error callback.
func (w *Watcher) Start(ctx context.Context) error {
	creds, err := Load(w.path, w.section)
	if err != nil {
		return err
	}

	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.last = creds
	w.mu.Unlock()

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()

		return err
	}

	// Watch the directory rather than the file: editors that replace the
	// file on save would otherwise detach the watch.
	if err := fsWatcher.Add(filepath.Dir(w.path)); err != nil {
		_ = fsWatcher.Close()

		w.mu.Lock()
		w.running = false
		w.mu.Unlock()

		return err
	}

	w.watcher = fsWatcher

	w.logger.Info("watching credentials file",
		zap.String("path", w.path),
		zap.String("section", w.section),
	)

	go w.watch(ctx)

	return nil
}

// Stop stops watching and waits for the watch loop to exit. Safe to call
// once after a successful Start.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.stoppedCh

	return w.watcher.Close()
}

// Credentials returns the last successfully loaded credentials.
func (w *Watcher) Credentials() auth.Credentials {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.last
}

// Reload forces an immediate reload, bypassing the debounce. The callback is
// invoked on success.
func (w *Watcher) Reload() error {
	creds, err := Load(w.path, w.section)
	if err != nil {
		return err
	}

	w.deliver(creds)

	return nil
}

func (w *Watcher) watch(ctx context.Context) {
	defer close(w.stoppedCh)

	var (
		debounceTimer *time.Timer
		debounceCh    <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("credentials watcher stopped", zap.Error(ctx.Err()))
			return

		case <-w.stopCh:
			w.logger.Info("credentials watcher stopped")
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != w.path {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			w.logger.Debug("credentials file changed", zap.String("op", event.Op.String()))

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(w.debounce)
			debounceCh = debounceTimer.C

		case <-debounceCh:
			debounceCh = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

			w.logger.Error("credentials watcher error", zap.Error(err))
			if w.errorCallback != nil {
				w.errorCallback(err)
			}
		}
	}
}

func (w *Watcher) reload() {
	creds, err := Load(w.path, w.section)
	if err != nil {
		w.logger.Error("credentials reload failed", zap.Error(err))
		if w.errorCallback != nil {
			w.errorCallback(err)
		}
		return
	}

	w.deliver(creds)

	w.logger.Info("credentials reloaded", zap.String("section", w.section))
}

func (w *Watcher) deliver(creds auth.Credentials) {
	w.mu.Lock()
	w.last = creds
	w.mu.Unlock()

	if w.callback != nil {
		w.callback(creds)
	}
}
