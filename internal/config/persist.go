package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/goccy/go-json"

	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/errors"
)

// path resolves a file name inside the config directory.
func (c *Config) path(name string) (string, error) {
	return securejoin.SecureJoin(c.Dir(), name)
}

func (c *Config) dataDir() (string, error) {
	return c.path(DataDir)
}

// collectionPath returns <dir>/data/<property>.json.
func (c *Config) collectionPath(property string) (string, error) {
	if property == "" || filepath.Base(property) != property {
		return "", fmt.Errorf("invalid collection name %q", property)
	}
	return c.path(filepath.Join(DataDir, property+".json"))
}

// Load merges the top-level keys of a JSON file into the store, replacing
// stored values. On failure a warning is logged and the store is left
// unchanged; the returned error is informational and callers are free to
// continue with defaults. file also becomes the file Set persists to.
func (c *Config) Load(file string) error {
	if file == "" {
		file = DefaultFile
	}
	c.mu.Lock()
	c.file = file
	c.mu.Unlock()

	if err := os.MkdirAll(c.Dir(), 0755); err != nil {
		c.log().Warn("failed to create config directory", "dir", c.Dir(), "error", err)
	}

	path, err := c.path(file)
	if err != nil {
		c.log().Warn("invalid config file path", "file", file, "error", err)
		return fmt.Errorf("invalid config file path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		c.log().Warn("there is an error with the config file or it doesn't exist", "path", path, "error", err)
		return fmt.Errorf("failed to read config: %w", err)
	}

	var loaded map[string]any
	if err := json.Unmarshal(data, &loaded); err != nil {
		c.log().Warn("there is an error with the config file or it doesn't exist", "path", path, "error", err)
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if loaded == nil {
		c.log().Warn("config file does not hold an object", "path", path)
		return fmt.Errorf("failed to parse config: not an object")
	}

	for key, value := range loaded {
		if def, ok := c.Collection(key); ok {
			records, err := ToRecords(value)
			if err != nil {
				c.log().Warn("ignoring collection in config file", "collection", key, "error", err)
				continue
			}
			c.store(def, records)
			continue
		}
		c.mu.Lock()
		c.values[key] = value
		c.mu.Unlock()
	}

	c.log().Debug("config loaded", "path", path, "keys", len(loaded))
	return nil
}

// Save writes All to file inside the config directory, creating the
// directory when needed. file also becomes the file Set persists to.
func (c *Config) Save(file string) error {
	if file == "" {
		file = DefaultFile
	}
	c.mu.Lock()
	c.file = file
	c.mu.Unlock()

	data, err := json.Marshal(c.All())
	if err != nil {
		return errors.PersistError(file, err)
	}

	path, err := c.path(file)
	if err != nil {
		return errors.PersistError(file, err)
	}

	c.log().Debug("saving configuration", "path", path)
	return c.writeFile(path, data)
}

// SaveCollection writes a collection property to data/<property>.json.
func (c *Config) SaveCollection(property string) error {
	path, err := c.collectionPath(property)
	if err != nil {
		return errors.PersistError(property, err)
	}

	records := c.Items(property)
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return errors.PersistError(property, err)
	}

	c.log().Debug("saving collection", "collection", property, "path", path)
	return c.writeFile(path, data)
}

func (c *Config) writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.PersistError(path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.PersistError(path, err)
	}

	c.mu.Lock()
	c.lastWrite[path] = data
	c.mu.Unlock()
	return nil
}

// ownWrite reports whether data is what this instance last wrote to path.
func (c *Config) ownWrite(path string, data []byte) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	last, ok := c.lastWrite[path]
	return ok && bytes.Equal(last, data)
}

// readRecords reads a collection file.
func readRecords(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
