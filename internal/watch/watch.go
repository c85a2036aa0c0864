// Package watch reports map files that change on disk.
package watch

import (
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/specialistvlad/vmfgo/internal/fsutil"
)

// DefaultDebounce is how long a file must stay quiet before it is reported.
const DefaultDebounce = 100 * time.Millisecond

// Watcher emits the path of a map file once writes to it have settled.
// Events and Errors are closed after Close returns.
type Watcher struct {
	watcher  *fsnotify.Watcher
	Events   chan string
	Errors   chan error
	closeCh  chan struct{}
	done     chan struct{}
	once     sync.Once
	debounce time.Duration
}

// New watches dirs (not recursively) for created or written map files.
func New(dirs ...string) (*Watcher, error) {
	return newWatcher(DefaultDebounce, dirs...)
}

func newWatcher(debounce time.Duration, dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher:  w,
		Events:   make(chan string, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
		debounce: debounce,
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.Errors)
	defer close(w.Events)

	pending := make(map[string]time.Time)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !fsutil.HasExtension(event.Name, fsutil.MapExtensions...) {
				continue
			}
			pending[event.Name] = time.Now()
			timer.Reset(w.debounce)
		case <-timer.C:
			if !w.flush(pending, timer) {
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.closeCh:
				return
			}
		case <-w.closeCh:
			return
		}
	}
}

// flush sends every pending path that has been quiet long enough and rearms
// the timer for the rest. It returns false when the watcher is closing.
func (w *Watcher) flush(pending map[string]time.Time, timer *time.Timer) bool {
	now := time.Now()
	var ready []string
	var wait time.Duration
	for name, at := range pending {
		if remaining := w.debounce - now.Sub(at); remaining > 0 {
			if wait == 0 || remaining < wait {
				wait = remaining
			}
			continue
		}
		ready = append(ready, name)
	}
	slices.Sort(ready)

	for _, name := range ready {
		delete(pending, name)
		select {
		case w.Events <- name:
		case <-w.closeCh:
			return false
		}
	}
	if wait > 0 {
		timer.Reset(wait)
	}
	return true
}
