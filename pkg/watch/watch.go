// Package watch re-runs a callback when manifest files change on disk.
//
// The parent directory of each file is watched rather than the file itself,
// so editors that save by writing a temporary file and renaming it over the
// original are still noticed. Bursts of events are coalesced by a
// [Debouncer] and delivered as one batch of changed paths.
package watch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultInterval is the quiet period before a change batch is delivered.
const DefaultInterval = 100 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	Interval time.Duration
	Logger   *log.Logger
}

// Watcher watches a fixed set of files.
type Watcher struct {
	fsw      *fsnotify.Watcher
	files    map[string]string // absolute path -> path as given
	interval time.Duration
	logger   *log.Logger

	mu      sync.Mutex
	running bool
}

// New creates a watcher for paths. Files need not exist yet, but their
// directories must.
func New(paths []string, opts Options) (*Watcher, error) {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		files:    make(map[string]string, len(paths)),
		interval: opts.Interval,
		logger:   opts.Logger,
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		w.files[abs] = p
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		w.logger.Debug("watching directory", "dir", dir)
	}
	return w, nil
}

// Run blocks until ctx is cancelled, calling onChange with the sorted paths
// (as given to New) that changed during each burst. onChange is never called
// concurrently with itself.
func (w *Watcher) Run(ctx context.Context, onChange func(changed []string)) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	var cbMu sync.Mutex
	deb := NewDebouncer(w.interval, func(keys []string) {
		cbMu.Lock()
		defer cbMu.Unlock()
		if ctx.Err() != nil {
			return
		}
		onChange(keys)
	})
	defer deb.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("watcher stopped")
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			path, ok := w.relevant(event)
			if !ok {
				continue
			}
			w.logger.Debug("file event", "path", path, "op", event.Op.String())
			deb.Add(path)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("file watcher error", "err", err)
		}
	}
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) (string, bool) {
	if event.Op == fsnotify.Chmod {
		return "", false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return "", false
	}
	p, ok := w.files[abs]
	return p, ok
}

// Debouncer collects keys and delivers them once no new key has arrived for
// the interval.
type Debouncer struct {
	interval time.Duration
	fire     func([]string)

	mu      sync.Mutex
	pending map[string]bool
	timer   *time.Timer
	stopped bool
}

// NewDebouncer creates a debouncer that calls fire with the sorted keys
// collected during each quiet-period-terminated burst.
func NewDebouncer(interval time.Duration, fire func([]string)) *Debouncer {
	return &Debouncer{
		interval: interval,
		fire:     fire,
		pending:  make(map[string]bool),
	}
}

// Add records key and restarts the quiet period.
func (d *Debouncer) Add(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.pending[key] = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.flush)
}

func (d *Debouncer) flush() {
	d.mu.Lock()
	if d.stopped || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	keys := make([]string, 0, len(d.pending))
	for k := range d.pending {
		keys = append(keys, k)
	}
	d.pending = make(map[string]bool)
	d.mu.Unlock()

	sort.Strings(keys)
	d.fire(keys)
}

// Stop cancels any pending delivery.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}
