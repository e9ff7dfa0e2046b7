package testutil

import (
	"embed"
	"os"
	"path/filepath"
	"testing"
)

//go:embed fixtures/*
var fixturesFS embed.FS

// Fixture names.
const (
	SchemaTOML  = "schema.toml"
	SchemaYAML  = "schema.yaml"
	StoredConf  = "config.conf"
	CorruptConf = "corrupt.conf"
)

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// WriteFixture copies fixture name to dir/target and returns the path.
// An empty target keeps the fixture's name.
func WriteFixture(t *testing.T, dir, name, target string) string {
	t.Helper()

	data, err := LoadFixture(name)
	if err != nil {
		t.Fatalf("Failed to load fixture %s: %v", name, err)
	}
	if target == "" {
		target = name
	}

	path := filepath.Join(dir, target)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write fixture %s: %v", path, err)
	}
	return path
}
