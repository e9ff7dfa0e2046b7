package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func itemsDefinition() ObjectDefinition {
	return ObjectDefinition{
		Property:      "items",
		FilterField:   "group",
		Name:          "Items",
		FieldDefaults: map[string]any{"enabled": true, "weight": 1, "note": nil},
	}
}

func TestSetItems_Backfill(t *testing.T) {
	cfg := newTestConfig(t)
	if err := cfg.Object(itemsDefinition(), nil); err != nil {
		t.Fatalf("Object failed: %v", err)
	}

	err := cfg.Set("items", []Record{
		{"name": "x"},
		{"name": "y", "enabled": false, "weight": 0},
		{"name": "z", "enabled": nil},
	})
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	want := []Record{
		{"name": "x", "enabled": true, "weight": 1},
		{"name": "y", "enabled": false, "weight": 0},
		{"name": "z", "enabled": nil, "weight": 1},
	}
	if diff := cmp.Diff(want, cfg.Items("items")); diff != "" {
		t.Errorf("Items mismatch (-want +got):\n%s", diff)
	}
}

func TestSetItems_DoesNotTouchMainFile(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Default("port", 8080)
	if err := cfg.Object(itemsDefinition(), nil); err != nil {
		t.Fatalf("Object failed: %v", err)
	}

	if err := cfg.SetItems("items", []Record{{"name": "x"}}); err != nil {
		t.Fatalf("SetItems failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(cfg.Dir(), DefaultFile)); !os.IsNotExist(err) {
		t.Errorf("main config file should not be written, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Dir(), DataDir, "items.json")); err != nil {
		t.Errorf("collection file should be written: %v", err)
	}
}

func TestSetItems_NotACollection(t *testing.T) {
	cfg := newTestConfig(t)
	if err := cfg.SetItems("port", nil); err == nil {
		t.Error("expected error for a property that is not a collection")
	}
}

func TestSet_CollectionRejectsScalars(t *testing.T) {
	cfg := newTestConfig(t)
	if err := cfg.Object(itemsDefinition(), nil); err != nil {
		t.Fatalf("Object failed: %v", err)
	}
	if err := cfg.Set("items", "not a list"); err == nil {
		t.Error("expected error for a scalar collection value")
	}
}

func TestCollections_DeclarationOrder(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Default("port", 8080)
	for _, name := range []string{"zones", "items"} {
		if err := cfg.Object(ObjectDefinition{Property: name}, nil); err != nil {
			t.Fatalf("Object(%s) failed: %v", name, err)
		}
	}

	if diff := cmp.Diff([]string{"zones", "items"}, cfg.Collections()); diff != "" {
		t.Errorf("Collections() mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter(t *testing.T) {
	cfg := newTestConfig(t)
	if err := cfg.Object(itemsDefinition(), nil); err != nil {
		t.Fatalf("Object failed: %v", err)
	}
	if err := cfg.SetItems("items", []Record{
		{"name": "x", "group": "a"},
		{"name": "y", "group": "b"},
	}); err != nil {
		t.Fatalf("SetItems failed: %v", err)
	}

	got := cfg.Filter("items", "a")
	want := []Record{{"name": "x", "group": "a", "enabled": true, "weight": 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Filter mismatch (-want +got):\n%s", diff)
	}

	if got := cfg.Filter("items", "c"); len(got) != 0 {
		t.Errorf("Filter(c) = %v, want empty", got)
	}
	if got := cfg.Items("items"); len(got) != 2 {
		t.Errorf("Items returned %d records, want 2", len(got))
	}
}

func TestItems_ReturnsCopies(t *testing.T) {
	cfg := newTestConfig(t)
	if err := cfg.Object(itemsDefinition(), []Record{{"name": "x"}}); err != nil {
		t.Fatalf("Object failed: %v", err)
	}

	items := cfg.Items("items")
	items[0]["name"] = "mutated"

	if got := cfg.Items("items")[0]["name"]; got != "x" {
		t.Errorf("stored record changed through a returned copy: name = %v", got)
	}
}

func TestObject_LoadsSavedRecords(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, DataDir)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		t.Fatal(err)
	}
	content := `[{"name": "saved", "group": "a"}]`
	if err := os.WriteFile(filepath.Join(dataDir, "items.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := New(dir)
	if err := cfg.Object(itemsDefinition(), []Record{{"name": "default"}}); err != nil {
		t.Fatalf("Object failed: %v", err)
	}

	want := []Record{{"name": "saved", "group": "a", "enabled": true, "weight": 1}}
	if diff := cmp.Diff(want, cfg.Items("items")); diff != "" {
		t.Errorf("Items mismatch (-want +got):\n%s", diff)
	}
}

func TestObject_CorruptFileSelfHeals(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, DataDir)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dataDir, "items.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := New(dir)
	if err := cfg.Object(itemsDefinition(), []Record{{"name": "default"}}); err != nil {
		t.Fatalf("Object failed: %v", err)
	}

	if got := cfg.Items("items"); len(got) != 1 || got[0]["name"] != "default" {
		t.Errorf("Items = %v, want the defaults", got)
	}

	reread, err := readRecords(path)
	if err != nil {
		t.Fatalf("collection file should have been rewritten with valid JSON: %v", err)
	}
	if len(reread) != 1 || reread[0]["name"] != "default" {
		t.Errorf("rewritten file = %v, want the defaults", reread)
	}
}

func TestObject_MissingDataDirCreated(t *testing.T) {
	cfg := newTestConfig(t)
	if err := cfg.Object(itemsDefinition(), []Record{{"name": "x"}}); err != nil {
		t.Fatalf("Object failed: %v", err)
	}
	if info, err := os.Stat(filepath.Join(cfg.Dir(), DataDir)); err != nil || !info.IsDir() {
		t.Errorf("data directory should exist: %v", err)
	}
}

func TestObject_FirstRunWritesDefaults(t *testing.T) {
	var logs bytes.Buffer
	dir := t.TempDir()
	defaults := []Record{{"name": "x"}}

	// A data directory created by another writer must not hide a missing file.
	if err := os.MkdirAll(filepath.Join(dir, DataDir), 0755); err != nil {
		t.Fatal(err)
	}

	cfg := New(dir, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	if err := cfg.Object(itemsDefinition(), defaults); err != nil {
		t.Fatalf("Object failed: %v", err)
	}

	saved, err := readRecords(filepath.Join(dir, DataDir, "items.json"))
	if err != nil {
		t.Fatalf("collection file should hold the defaults: %v", err)
	}
	if len(saved) != 1 || saved[0]["name"] != "x" || saved[0]["enabled"] != true {
		t.Errorf("saved records = %v, want the backfilled defaults", saved)
	}
	if strings.Contains(logs.String(), "level=WARN") {
		t.Errorf("first run should not warn, logs:\n%s", logs.String())
	}

	// The next launch reads the file back without warning.
	logs.Reset()
	next := New(dir, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	if err := next.Object(itemsDefinition(), defaults); err != nil {
		t.Fatalf("Object failed: %v", err)
	}
	if strings.Contains(logs.String(), "level=WARN") {
		t.Errorf("second run should not warn, logs:\n%s", logs.String())
	}
}

func TestCollectionPath_RejectsTraversal(t *testing.T) {
	cfg := newTestConfig(t)
	for _, name := range []string{"", "../escape", "a/b"} {
		if _, err := cfg.collectionPath(name); err == nil {
			t.Errorf("collectionPath(%q) should fail", name)
		}
	}
}

func TestReconcileProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	def := ObjectDefinition{
		Property:      "items",
		FilterField:   "group",
		FieldDefaults: map[string]any{"enabled": true, "group": "none"},
	}

	recordGen := gopter.CombineGens(
		gen.AlphaString(),
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
		gen.OneConstOf("a", "b", "c"),
	).Map(func(vals []interface{}) recordShape {
		return recordShape{
			Name:       vals[0].(string),
			HasEnabled: vals[1].(bool),
			Enabled:    vals[2].(bool),
			HasGroup:   vals[3].(bool),
			Group:      vals[4].(string),
		}
	})

	properties.Property("every default field is present after reconciliation", prop.ForAll(
		func(shapes []recordShape) bool {
			for _, r := range reconcile(def, toShapeRecords(shapes)) {
				for field := range def.FieldDefaults {
					if _, ok := r[field]; !ok {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(recordGen),
	))

	properties.Property("explicit fields are never overwritten", prop.ForAll(
		func(shapes []recordShape) bool {
			out := reconcile(def, toShapeRecords(shapes))
			for i, s := range shapes {
				if s.HasEnabled && out[i]["enabled"] != s.Enabled {
					return false
				}
				if s.HasGroup && out[i]["group"] != s.Group {
					return false
				}
			}
			return true
		},
		gen.SliceOf(recordGen),
	))

	properties.Property("filter returns exactly the matching records", prop.ForAll(
		func(shapes []recordShape, group string) bool {
			cfg := New(t.TempDir())
			if err := cfg.Object(def, nil); err != nil {
				return false
			}
			if err := cfg.SetItems("items", toShapeRecords(shapes)); err != nil {
				return false
			}
			want := 0
			for _, r := range cfg.Items("items") {
				if r["group"] == group {
					want++
				}
			}
			got := cfg.Filter("items", group)
			for _, r := range got {
				if r["group"] != group {
					return false
				}
			}
			return len(got) == want
		},
		gen.SliceOf(recordGen),
		gen.OneConstOf("a", "b", "c", "none"),
	))

	properties.TestingRun(t)
}

type recordShape struct {
	Name       string
	HasEnabled bool
	Enabled    bool
	HasGroup   bool
	Group      string
}

func toShapeRecords(shapes []recordShape) []Record {
	records := make([]Record, len(shapes))
	for i, s := range shapes {
		r := Record{"name": s.Name}
		if s.HasEnabled {
			r["enabled"] = s.Enabled
		}
		if s.HasGroup {
			r["group"] = s.Group
		}
		records[i] = r
	}
	return records
}
