// Package testutil provides test utilities for command and integration tests
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestEnv holds the test environment
type TestEnv struct {
	T *testing.T
	// Dir is the configuration directory.
	Dir string
	// File is the main configuration file name inside Dir.
	File string
	// Schema is the path of the declaration file.
	Schema string
}

// NewTestEnv creates a configuration directory with the TOML schema
// fixture and no stored values.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()
	dir := filepath.Join(tmpDir, "config")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", dir, err)
	}

	return &TestEnv{
		T:      t,
		Dir:    dir,
		File:   "config.conf",
		Schema: WriteFixture(t, tmpDir, SchemaTOML, ""),
	}
}

// ConfigPath returns the main configuration file path.
func (e *TestEnv) ConfigPath() string {
	return filepath.Join(e.Dir, e.File)
}

// DataPath returns the path of a file in the data directory.
func (e *TestEnv) DataPath(name string) string {
	return filepath.Join(e.Dir, "data", name)
}

// WriteConfig stores the given fixture as the main configuration file.
func (e *TestEnv) WriteConfig(fixture string) {
	e.T.Helper()
	WriteFixture(e.T, e.Dir, fixture, e.File)
}

// WriteData writes raw content to a file in the data directory.
func (e *TestEnv) WriteData(name, content string) {
	e.T.Helper()

	path := e.DataPath(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.T.Fatalf("Failed to create data directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write %s: %v", path, err)
	}
}

// ReadFile returns the content of a file relative to Dir.
func (e *TestEnv) ReadFile(name string) string {
	e.T.Helper()

	data, err := os.ReadFile(filepath.Join(e.Dir, name))
	if err != nil {
		e.T.Fatalf("Failed to read %s: %v", name, err)
	}
	return string(data)
}
