package lirc

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bft-labs/irbridge/pkg/log"
)

func TestWatcher_ReportsPresenceChanges(t *testing.T) {
	dir := t.TempDir()
	node := filepath.Join(dir, "lirc0")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan bool, 8)
	done := make(chan error, 1)
	w := NewWatcher(node, log.Discard)
	go func() {
		done <- w.Watch(ctx, func(present bool) { events <- present })
	}()

	expect := func(want bool) {
		t.Helper()
		select {
		case got := <-events:
			if got != want {
				t.Fatalf("presence = %v, want %v", got, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("no presence event, want %v", want)
		}
	}

	expect(false)

	if err := os.WriteFile(node, nil, 0o600); err != nil {
		t.Fatalf("create node: %v", err)
	}
	expect(true)

	if err := os.Remove(node); err != nil {
		t.Fatalf("remove node: %v", err)
	}
	expect(false)

	if err := os.WriteFile(filepath.Join(dir, "lirc1"), nil, 0o600); err != nil {
		t.Fatalf("create other node: %v", err)
	}
	select {
	case got := <-events:
		t.Errorf("unexpected event %v for unrelated node", got)
	case <-time.After(100 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Watch() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "missing", "lirc0"), log.Discard)
	if err := w.Watch(context.Background(), func(bool) {}); err == nil {
		t.Error("Watch() should fail when the directory does not exist")
	}
}
