// Package watcher reports changes to slot files in a saves directory.
//
// Events are debounced per file: a burst of writes to the same file within
// the debounce window is delivered once, carrying the last event type seen
// (a deletion is kept over a later re-creation so consumers notice it).
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

type EventType int

const (
	EventCreate EventType = iota
	EventModify
	EventDelete
	EventRename
)

type FileEvent struct {
	Type EventType
	// Name is the file name relative to the watched directory.
	Name string
}

type Watcher struct {
	dir      string
	exts     map[string]bool
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger
	events   chan FileEvent
	done     chan struct{}
	once     sync.Once

	// Debouncing state
	pending   map[string]FileEvent
	pendingMu sync.Mutex
	timer     *time.Timer
}

// NewWatcher watches dir (not recursively) for files whose extension is one
// of exts. An empty exts reports every file. Hidden files are always skipped,
// which includes the temporary files of atomic writes.
func NewWatcher(dir string, exts []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		set[strings.ToLower(ext)] = true
	}

	return &Watcher{
		dir:      dir,
		exts:     set,
		watcher:  fsw,
		debounce: debounce,
		logger:   logger,
		events:   make(chan FileEvent, 100),
		done:     make(chan struct{}),
		pending:  make(map[string]FileEvent),
	}, nil
}

// Start begins watching. The directory must exist.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	go w.processEvents(ctx)

	return nil
}

func (w *Watcher) Events() <-chan FileEvent {
	return w.events
}

func (w *Watcher) Close() error {
	w.once.Do(func() { close(w.done) })

	w.pendingMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pendingMu.Unlock()

	return w.watcher.Close()
}

func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher: fsnotify error", "dir", w.dir, "err", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if filepath.Dir(event.Name) != filepath.Clean(w.dir) {
		return
	}
	if !w.accepts(name) {
		return
	}

	var evType EventType
	switch {
	case event.Has(fsnotify.Create):
		evType = EventCreate
	case event.Has(fsnotify.Write):
		evType = EventModify
	case event.Has(fsnotify.Remove):
		evType = EventDelete
	case event.Has(fsnotify.Rename):
		evType = EventRename
	default:
		return
	}

	w.debounceEvent(FileEvent{Type: evType, Name: name})
}

func (w *Watcher) accepts(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	if len(w.exts) == 0 {
		return true
	}
	return w.exts[strings.ToLower(filepath.Ext(name))]
}

func (w *Watcher) debounceEvent(event FileEvent) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	existing, exists := w.pending[event.Name]
	if !exists || existing.Type != EventDelete || event.Type == EventDelete {
		w.pending[event.Name] = event
	}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.pendingMu.Lock()
	events := make([]FileEvent, 0, len(w.pending))
	for _, event := range w.pending {
		events = append(events, event)
	}
	w.pending = make(map[string]FileEvent)
	w.pendingMu.Unlock()

	sort.Slice(events, func(i, j int) bool { return events[i].Name < events[j].Name })

	for _, event := range events {
		select {
		case <-w.done:
			return
		case w.events <- event:
		default:
			w.logger.Warn("watcher: event channel full, dropping event", "file", event.Name)
		}
	}
}

func (e EventType) String() string {
	switch e {
	case EventCreate:
		return "CREATE"
	case EventModify:
		return "MODIFY"
	case EventDelete:
		return "DELETE"
	case EventRename:
		return "RENAME"
	default:
		return "UNKNOWN"
	}
}
