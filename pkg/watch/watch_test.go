package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDebouncerCoalesces(t *testing.T) {
	got := make(chan []string, 4)
	d := NewDebouncer(20*time.Millisecond, func(keys []string) { got <- keys })
	defer d.Stop()

	d.Add("b")
	d.Add("a")
	d.Add("b")

	select {
	case keys := <-got:
		if diff := cmp.Diff([]string{"a", "b"}, keys); diff != "" {
			t.Errorf("keys mismatch (-want +got):\n%s", diff)
		}
	case <-time.After(time.Second):
		t.Fatal("debouncer never fired")
	}

	select {
	case keys := <-got:
		t.Errorf("unexpected second delivery: %v", keys)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestDebouncerStop(t *testing.T) {
	fired := make(chan struct{}, 1)
	d := NewDebouncer(20*time.Millisecond, func([]string) { fired <- struct{}{} })
	d.Add("a")
	d.Stop()
	d.Add("b")

	select {
	case <-fired:
		t.Error("stopped debouncer should not fire")
	case <-time.After(80 * time.Millisecond):
	}
}

func TestNewRequiresDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing", "package.json")}, Options{})
	if err == nil {
		t.Error("New should fail when the directory does not exist")
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "package.json")
	other := filepath.Join(dir, "README.md")
	if err := os.WriteFile(watched, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New([]string{watched}, Options{Interval: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var batches [][]string
	changed := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(paths []string) {
			mu.Lock()
			batches = append(batches, paths)
			mu.Unlock()
			changed <- struct{}{}
		})
	}()

	// Give the event loop a moment to start.
	time.Sleep(20 * time.Millisecond)

	if err := os.WriteFile(other, []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(watched, []byte(`{"name":"x"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run returned %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	for _, b := range batches {
		for _, p := range b {
			if p != watched {
				t.Errorf("reported unwatched path %s", p)
			}
		}
	}
}

func TestRunTwice(t *testing.T) {
	w, err := New([]string{filepath.Join(t.TempDir(), "package.json")}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	go func() {
		close(started)
		_ = w.Run(ctx, func([]string) {})
	}()
	<-started
	time.Sleep(10 * time.Millisecond)

	if err := w.Run(ctx, func([]string) {}); err == nil {
		t.Error("second Run should fail while the first is active")
	}
	cancel()
}
