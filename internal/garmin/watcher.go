package garmin

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"macrolog/pkg/logging"
)

// TokenWatcherConfig holds configuration for the token file watcher.
type TokenWatcherConfig struct {
	// TokenFile is the path of the token file to watch.
	TokenFile string

	// WatchInterval is the fallback polling interval when fsnotify is not available.
	WatchInterval time.Duration

	// OnChange is called when the token file changes.
	OnChange func()
}

// DefaultWatchInterval is the fallback polling interval.
const DefaultWatchInterval = 30 * time.Second

// DefaultDebounceInterval is the time to wait before triggering the change
// callback after the last file change is detected.
const DefaultDebounceInterval = 500 * time.Millisecond

// TokenWatcher monitors the token file for changes so a long-running server
// picks up tokens refreshed by an external login flow. It uses fsnotify for
// efficient file system monitoring with a fallback to polling for
// environments where fsnotify is not available or reliable.
type TokenWatcher struct {
	mu sync.Mutex

	config TokenWatcherConfig

	// fsWatcher is the fsnotify watcher (may be nil if fsnotify is unavailable)
	fsWatcher *fsnotify.Watcher

	// stopCh signals the watcher to stop
	stopCh chan struct{}

	// running indicates if the watcher is active
	running bool

	// lastModTime tracks the last modification time for fallback polling
	lastModTime time.Time

	// debounceTimer helps prevent rapid successive callbacks
	debounceTimer *time.Timer
	debounceMu    sync.Mutex
}

// NewTokenWatcher creates a new token file watcher.
func NewTokenWatcher(config TokenWatcherConfig) *TokenWatcher {
	if config.WatchInterval == 0 {
		config.WatchInterval = DefaultWatchInterval
	}

	return &TokenWatcher{
		config: config,
	}
}

// Start begins watching for token file changes.
func (w *TokenWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	w.stopCh = make(chan struct{})
	w.running = true

	// Try to use fsnotify for efficient file watching
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logging.Warn("TokenWatcher", "fsnotify not available, falling back to polling: %v", err)
		go w.pollForChanges()
		return nil
	}

	w.fsWatcher = watcher

	// Watch the containing directory: login tools replace the token file
	// atomically, which a per-file watch would miss.
	dir := filepath.Dir(w.config.TokenFile)
	if err := w.fsWatcher.Add(dir); err != nil {
		logging.Warn("TokenWatcher", "Failed to watch directory %s, falling back to polling: %v", dir, err)
		w.fsWatcher.Close()
		w.fsWatcher = nil
		go w.pollForChanges()
		return nil
	}

	// Capture channels before releasing lock to avoid race conditions
	eventsCh := w.fsWatcher.Events
	errorsCh := w.fsWatcher.Errors

	go w.processEvents(eventsCh, errorsCh)

	logging.Info("TokenWatcher", "Started watching %s for token changes", w.config.TokenFile)
	return nil
}

// processEvents handles fsnotify events.
// The channels are passed as parameters to avoid race conditions with Stop().
func (w *TokenWatcher) processEvents(eventsCh <-chan fsnotify.Event, errorsCh <-chan error) {
	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-eventsCh:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-errorsCh:
			if !ok {
				return
			}
			logging.Error("TokenWatcher", err, "fsnotify error")
		}
	}
}

// handleEvent processes a single fsnotify event.
func (w *TokenWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Base(event.Name) != filepath.Base(w.config.TokenFile) {
		return
	}

	// Only handle write, create, and rename events
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	logging.Debug("TokenWatcher", "Token file changed: %s", event.Name)

	w.triggerChangeDebounced()
}

// triggerChangeDebounced invokes the change callback after a debounce
// period. This prevents multiple rapid callbacks when a login tool writes
// the file in several steps.
func (w *TokenWatcher) triggerChangeDebounced() {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	// Cancel existing timer if present
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(DefaultDebounceInterval, func() {
		w.mu.Lock()
		running := w.running
		callback := w.config.OnChange
		w.mu.Unlock()

		if running && callback != nil {
			callback()
		}
	})
}

// pollForChanges implements fallback polling when fsnotify is not available.
func (w *TokenWatcher) pollForChanges() {
	ticker := time.NewTicker(w.config.WatchInterval)
	defer ticker.Stop()

	// Initialize the last modification time
	if info, err := os.Stat(w.config.TokenFile); err == nil {
		w.lastModTime = info.ModTime()
	}

	for {
		select {
		case <-w.stopCh:
			return

		case <-ticker.C:
			if w.checkForChanges() {
				logging.Debug("TokenWatcher", "Token file change detected via polling")
				w.triggerChangeDebounced()
			}
		}
	}
}

// checkForChanges checks if the token file has been modified.
func (w *TokenWatcher) checkForChanges() bool {
	info, err := os.Stat(w.config.TokenFile)
	if err != nil {
		return false
	}

	currentModTime := info.ModTime()
	changed := !w.lastModTime.IsZero() && currentModTime.After(w.lastModTime)
	w.lastModTime = currentModTime

	return changed
}

// Stop gracefully stops the token watcher.
func (w *TokenWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	w.running = false
	close(w.stopCh)

	// Cancel any pending debounce timer
	w.debounceMu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
	w.debounceMu.Unlock()

	// Close fsnotify watcher if present
	if w.fsWatcher != nil {
		if err := w.fsWatcher.Close(); err != nil {
			logging.Warn("TokenWatcher", "Error closing fsnotify watcher: %v", err)
		}
		w.fsWatcher = nil
	}

	logging.Info("TokenWatcher", "Stopped token watcher")
	return nil
}

// IsRunning returns whether the watcher is currently active.
func (w *TokenWatcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
