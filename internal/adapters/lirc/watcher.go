package lirc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/irbridge/internal/ports"
)

// Watcher reports when the transmitter device node appears or disappears.
type Watcher struct {
	path   string
	logger ports.Logger
}

// NewWatcher creates a watcher for the device node at path.
func NewWatcher(path string, logger ports.Logger) *Watcher {
	if path == "" {
		path = DefaultDevice
	}
	return &Watcher{path: path, logger: logger}
}

// Watch calls fn with the current presence of the node, then on every change,
// until ctx is done.
func (w *Watcher) Watch(ctx context.Context, fn func(present bool)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	present := exists(w.path)
	fn(present)

	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if now := exists(w.path); now != present {
				present = now
				fn(present)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("device watcher error", ports.Err(err))
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

var _ ports.DeviceWatcher = (*Watcher)(nil)
