package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads file whenever it is changed by something other than this
// Config, calling onReload with the result of each Load. Editors that
// replace the file atomically are handled by watching the directory.
// Watch blocks until ctx is cancelled.
func (c *Config) Watch(ctx context.Context, file string, onReload func(error)) error {
	if file == "" {
		file = DefaultFile
	}
	path, err := c.path(file)
	if err != nil {
		return fmt.Errorf("invalid config file path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	c.log().Debug("watching config file", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil || c.ownWrite(path, data) {
				continue
			}
			err = c.Load(file)
			if onReload != nil {
				onReload(err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.log().Warn("config watcher error", "path", path, "error", err)
		}
	}
}
