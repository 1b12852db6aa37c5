package panel

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// SignalManager handles out-of-band control of a running panel via the
// data directory. `quorum stop` in another terminal drops a stop file;
// the interactive session watches for it and cancels the batch.
type SignalManager struct {
	signalsDir string

	mu         sync.RWMutex
	stopSignal bool
	onStop     func()

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewSignalManager creates a signal manager rooted at the given data
// directory. The watcher is best effort; callers can always poll
// ShouldStop, which checks the file directly.
func NewSignalManager(dataDir string) (*SignalManager, error) {
	signalsDir := filepath.Join(dataDir, "signals")
	if err := os.MkdirAll(signalsDir, 0755); err != nil {
		return nil, err
	}

	sm := &SignalManager{
		signalsDir: signalsDir,
		done:       make(chan struct{}),
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		// Continue without watcher - callers fall back to polling
		return sm, nil
	}
	sm.watcher = watcher

	if err := watcher.Add(signalsDir); err != nil {
		watcher.Close()
		sm.watcher = nil
		return sm, nil
	}

	go sm.watchSignals()

	return sm, nil
}

// OnStop registers a callback invoked once when a stop signal arrives
// via the watcher.
func (sm *SignalManager) OnStop(fn func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.onStop = fn
}

// watchSignals monitors the signals directory for the stop file.
func (sm *SignalManager) watchSignals() {
	for {
		select {
		case <-sm.done:
			return
		case event, ok := <-sm.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != "stop" {
				continue
			}
			if event.Op&fsnotify.Create == 0 && event.Op&fsnotify.Write == 0 {
				continue
			}

			sm.mu.Lock()
			fired := sm.stopSignal
			sm.stopSignal = true
			fn := sm.onStop
			sm.mu.Unlock()

			if !fired && fn != nil {
				fn()
			}
		case <-sm.watcher.Errors:
			// Ignore errors, keep watching
		}
	}
}

// ShouldStop returns true if a stop signal has been received.
func (sm *SignalManager) ShouldStop() bool {
	// Also check the file directly in case the watcher missed it
	stopPath := filepath.Join(sm.signalsDir, "stop")
	if _, err := os.Stat(stopPath); err == nil {
		sm.mu.Lock()
		sm.stopSignal = true
		sm.mu.Unlock()
	}

	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.stopSignal
}

// SendStop creates the stop signal file.
func (sm *SignalManager) SendStop() error {
	path := filepath.Join(sm.signalsDir, "stop")
	return os.WriteFile(path, []byte(time.Now().Format(time.RFC3339)), 0644)
}

// ClearSignals removes the stop file and resets signal state. Called at
// the start of each new batch.
func (sm *SignalManager) ClearSignals() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.stopSignal = false
	os.Remove(filepath.Join(sm.signalsDir, "stop"))
}

// Close shuts down the signal manager.
func (sm *SignalManager) Close() {
	close(sm.done)
	if sm.watcher != nil {
		sm.watcher.Close()
	}
}
