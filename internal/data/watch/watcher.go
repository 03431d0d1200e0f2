// Package watch turns filesystem changes to data view files into debounced
// reload events.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const eventBufferSize = 8

// Event reports that a watched file changed.
type Event struct {
	Path string
	Time time.Time
}

// Watcher watches one directory and emits an Event for files whose base name
// matches a doublestar pattern. Bursts of changes to the same file collapse
// into one event after the debounce delay.
type Watcher struct {
	dir     string
	pattern string
	delay   time.Duration
	log     zerolog.Logger

	watcher *fsnotify.Watcher
	events  chan Event

	mu       sync.Mutex
	debounce map[string]*time.Timer
	closed   bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New starts watching dir.
func New(dir, pattern string, delay time.Duration, log zerolog.Logger) (*Watcher, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch %s: not a directory", dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		dir:      dir,
		pattern:  pattern,
		delay:    delay,
		log:      log,
		watcher:  fw,
		events:   make(chan Event, eventBufferSize),
		debounce: make(map[string]*time.Timer),
		ctx:      ctx,
		cancel:   cancel,
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// ForFile watches the directory containing path.
func ForFile(path, pattern string, delay time.Duration, log zerolog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return New(filepath.Dir(abs), pattern, delay, log)
}

// Events returns the channel events are delivered on. It is closed by Close.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Close stops watching and closes the events channel.
func (w *Watcher) Close() error {
	w.cancel()
	err := w.watcher.Close()
	w.wg.Wait()

	w.mu.Lock()
	for _, timer := range w.debounce {
		timer.Stop()
	}
	w.debounce = nil
	w.closed = true
	close(w.events)
	w.mu.Unlock()

	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
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
			w.log.Warn().Err(err).Str("dir", w.dir).Msg("watch error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Editors that save by rename surface as Create on the final name.
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	name := filepath.Base(event.Name)
	if ok, _ := doublestar.Match(w.pattern, name); !ok {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	if timer, exists := w.debounce[event.Name]; exists {
		timer.Stop()
	}
	path := event.Name
	w.debounce[path] = time.AfterFunc(w.delay, func() { w.emit(path) })
}

func (w *Watcher) emit(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	delete(w.debounce, path)

	select {
	case w.events <- Event{Path: path, Time: time.Now()}:
		w.log.Debug().Str("path", path).Msg("data file changed")
	default:
		// Subscriber is behind; it will reload on the event already queued.
	}
}
