package config

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ProfileEvent represents a profile change event.
type ProfileEvent struct {
	Path    string
	Profile *Profile
	Error   error
}

// Watcher monitors a directory for profile file changes, so the browsing
// side can refresh its listing and `run --watch` can re-run on edits.
type Watcher struct {
	loader   *Loader
	watchDir string
	watcher  *fsnotify.Watcher
	events   chan ProfileEvent
	debounce time.Duration
	mu       sync.RWMutex
	profiles map[string]*Profile
}

// NewWatcher creates a profile directory watcher.
func NewWatcher(loader *Loader, watchDir string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		loader:   loader,
		watchDir: watchDir,
		watcher:  fsWatcher,
		events:   make(chan ProfileEvent, 10),
		debounce: 100 * time.Millisecond,
		profiles: make(map[string]*Profile),
	}, nil
}

// Events returns the channel that receives profile change events.
func (w *Watcher) Events() <-chan ProfileEvent {
	return w.events
}

// Start loads existing profiles and begins watching the directory.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.loadExisting(); err != nil {
		return fmt.Errorf("failed to load existing profiles: %w", err)
	}

	if err := w.watcher.Add(w.watchDir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", w.watchDir, err)
	}

	go w.run(ctx)
	return nil
}

// Stop closes the watcher and cleans up resources.
func (w *Watcher) Stop() error {
	close(w.events)
	return w.watcher.Close()
}

// GetProfile returns a loaded profile by file base name (without extension).
func (w *Watcher) GetProfile(name string) (*Profile, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.profiles[name]
	return p, ok
}

// GetAllProfiles returns all currently loaded profiles.
func (w *Watcher) GetAllProfiles() map[string]*Profile {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make(map[string]*Profile, len(w.profiles))
	for k, v := range w.profiles {
		result[k] = v
	}
	return result
}

func (w *Watcher) loadExisting() error {
	profiles, err := w.loader.LoadDirectory(w.watchDir)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for name, p := range profiles {
		w.profiles[name] = p
	}

	return nil
}

func (w *Watcher) run(ctx context.Context) {
	// Debounce map to avoid multiple events for same file
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if !strings.HasSuffix(event.Name, ".json") {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				pending[event.Name] = time.Now()
			} else if event.Op&fsnotify.Remove != 0 {
				w.handleRemove(event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.events <- ProfileEvent{Error: err}

		case <-ticker.C:
			now := time.Now()
			for path, timestamp := range pending {
				if now.Sub(timestamp) >= w.debounce {
					w.handleUpdate(path)
					delete(pending, path)
				}
			}
		}
	}
}

func (w *Watcher) handleUpdate(path string) {
	p, err := w.loader.Load(path)
	if err != nil {
		w.events <- ProfileEvent{
			Path:  path,
			Error: fmt.Errorf("failed to load profile %s: %w", path, err),
		}
		return
	}

	w.mu.Lock()
	w.profiles[profileKey(path)] = p
	w.mu.Unlock()

	w.events <- ProfileEvent{
		Path:    path,
		Profile: p,
	}
}

func (w *Watcher) handleRemove(path string) {
	w.mu.Lock()
	delete(w.profiles, profileKey(path))
	w.mu.Unlock()

	w.events <- ProfileEvent{
		Path:  path,
		Error: fmt.Errorf("profile removed: %s", path),
	}
}
