package store

import (
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeEvent describes an external change to the recipe folder
type ChangeEvent struct {
	Path string
	Op   string // "write", "create", "remove", "rename"
}

// Watcher monitors the recipe folder for changes made by other devices
// syncing into it. Our own writes are filtered out via the store's
// self-write tracking; everything else reloads the affected file and
// notifies subscribers.
type Watcher struct {
	mu          sync.Mutex
	fsw         *fsnotify.Watcher
	store       *Store
	debounce    map[string]time.Time
	debounceDur time.Duration
	subscribers []chan ChangeEvent
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

// NewWatcher creates a watcher for the store's folder
func NewWatcher(s *Store) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsw:         fsw,
		store:       s,
		debounce:    make(map[string]time.Time),
		debounceDur: 500 * time.Millisecond, // sync tools write in bursts
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; events are handled in a goroutine.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.fsw.Add(w.store.Dir()); err != nil {
		return err
	}

	go w.run()
	return nil
}

// Stop stops the watcher and waits for the event loop to exit
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	w.fsw.Close()
}

// Subscribe returns a channel receiving external change events. Slow
// subscribers drop events rather than blocking the watcher.
func (w *Watcher) Subscribe() <-chan ChangeEvent {
	ch := make(chan ChangeEvent, 16)
	w.mu.Lock()
	w.subscribers = append(w.subscribers, ch)
	w.mu.Unlock()
	return ch
}

func (w *Watcher) run() {
	defer close(w.doneCh)

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("Warning: recipe folder watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !strings.HasSuffix(event.Name, ".json") {
		return
	}
	// Temp files from our own atomic writes never settle as .json, but
	// the rename target does; skip anything we wrote ourselves.
	if w.store.WasSelfWrite(event.Name, 2*time.Second) {
		return
	}
	if w.debounced(event.Name) {
		return
	}

	var op string
	switch {
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		op = "remove"
		if err := w.store.ReloadFile(event.Name); err != nil {
			log.Printf("Warning: failed to process removal of %s: %v", filepath.Base(event.Name), err)
			return
		}
	case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
		op = "write"
		if err := w.store.ReloadFile(event.Name); err != nil {
			log.Printf("Warning: failed to reload %s: %v", filepath.Base(event.Name), err)
			return
		}
	default:
		return
	}

	log.Printf("Recipe folder changed externally: %s %s", op, filepath.Base(event.Name))
	w.notify(ChangeEvent{Path: event.Name, Op: op})
}

// debounced reports whether this path fired too recently to act on again.
// Expired entries are pruned on every call so the map stays bounded by
// the set of paths seen within one debounce window.
func (w *Watcher) debounced(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	for p, last := range w.debounce {
		if now.Sub(last) >= w.debounceDur {
			delete(w.debounce, p)
		}
	}

	if last, ok := w.debounce[path]; ok && now.Sub(last) < w.debounceDur {
		return true
	}
	w.debounce[path] = now
	return false
}

func (w *Watcher) notify(event ChangeEvent) {
	w.mu.Lock()
	subs := make([]chan ChangeEvent, len(w.subscribers))
	copy(subs, w.subscribers)
	w.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}
