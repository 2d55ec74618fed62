package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherInitialScan(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "invoice.pdf")
	if err := os.WriteFile(doc, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{dir}, InitialScan: true}, nil)
	if err != nil {
		t.Fatalf("start watcher: %v", err)
	}

	select {
	case got := <-events:
		if got != doc {
			t.Fatalf("event = %q, want %q", got, doc)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no initial-scan event received")
	}
}

func TestWatcherCoalescesWriteBursts(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{dir}, Debounce: 100 * time.Millisecond}, nil)
	if err != nil {
		t.Fatalf("start watcher: %v", err)
	}

	// A burst of writes to several documents must still surface each path
	// exactly once after the debounce window.
	docs := []string{
		filepath.Join(dir, "a.pdf"),
		filepath.Join(dir, "b.pdf"),
	}
	for _, doc := range docs {
		for i := 0; i < 3; i++ {
			if err := os.WriteFile(doc, []byte("%PDF-1.4"), 0o644); err != nil {
				t.Fatal(err)
			}
		}
	}

	got := map[string]int{}
	deadline := time.After(2 * time.Second)
	for len(got) < len(docs) {
		select {
		case path := <-events:
			got[path]++
		case <-deadline:
			t.Fatalf("events = %v, want all of %v", got, docs)
		}
	}
	// Allow the window to close and drain any stragglers.
	time.Sleep(300 * time.Millisecond)
	for {
		select {
		case path := <-events:
			got[path]++
			continue
		default:
		}
		break
	}
	for _, doc := range docs {
		if got[doc] != 1 {
			t.Errorf("path %q emitted %d times, want 1", doc, got[doc])
		}
	}
}

func TestWatcherRejectsEmptyRoots(t *testing.T) {
	if _, _, err := StartWatcher(context.Background(), WatchConfig{}, nil); err == nil {
		t.Fatal("expected error for empty roots")
	}
}
