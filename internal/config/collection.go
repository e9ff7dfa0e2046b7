package config

import (
	"fmt"
	"io/fs"

	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/errors"
)

// ObjectDefinition declares an array-valued property whose records are
// backfilled from FieldDefaults and stored in their own file.
type ObjectDefinition struct {
	Property      string
	FilterField   string
	Name          string
	FieldDefaults map[string]any
}

// Object registers a collection property with its default records and
// loads any records previously saved for it. A missing collection file is
// written with the defaults; one that cannot be read or parsed is replaced
// by them.
func (c *Config) Object(def ObjectDefinition, defaults []Record) error {
	if def.Property == "" {
		return errors.SchemaError("invalid collection", fmt.Errorf("property is required"))
	}

	c.mu.Lock()
	c.objects[def.Property] = def
	e := c.entry(def.Property)
	e.Default = cloneRecords(defaults)
	e.HasDefault = true
	c.mu.Unlock()

	path, err := c.collectionPath(def.Property)
	if err != nil {
		return errors.PersistError(def.Property, err)
	}

	records, err := readRecords(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		c.log().Debug("collection file not written yet, saving defaults",
			"collection", def.Property, "path", path)
		c.store(def, defaults)
		return c.SaveCollection(def.Property)
	case err != nil:
		c.log().Warn("collection file unreadable, loading defaults",
			"collection", def.Property, "path", path, "error", err)
		c.store(def, defaults)
		return c.SaveCollection(def.Property)
	}

	c.store(def, records)
	return nil
}

// IsCollection reports whether key is declared as an object collection.
func (c *Config) IsCollection(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.objects[key]
	return ok
}

// Collections returns the collection properties in declaration order.
func (c *Config) Collections() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var keys []string
	for _, key := range c.declared {
		if _, ok := c.objects[key]; ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// Collection returns the definition of a collection property.
func (c *Config) Collection(key string) (ObjectDefinition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.objects[key]
	return def, ok
}

// Items returns a copy of every record of a collection property.
func (c *Config) Items(property string) []Record {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.objects[property]; !ok {
		return nil
	}
	records, _ := c.values[property].([]Record)
	return cloneRecords(records)
}

// Filter returns copies of the records whose filter field equals value.
func (c *Config) Filter(property string, value any) []Record {
	c.mu.RLock()
	defer c.mu.RUnlock()

	def, ok := c.objects[property]
	if !ok {
		return nil
	}
	records, _ := c.values[property].([]Record)

	var matched []Record
	for _, r := range records {
		if v, ok := r[def.FilterField]; ok && Equal(v, value) {
			matched = append(matched, r.Clone())
		}
	}
	return matched
}

// SetItems replaces the records of a collection property, backfills them
// and writes the collection file. The main config file is not touched.
func (c *Config) SetItems(property string, records []Record) error {
	c.mu.RLock()
	def, ok := c.objects[property]
	c.mu.RUnlock()
	if !ok {
		return errors.SchemaError(fmt.Sprintf("property %s", property), fmt.Errorf("not a collection"))
	}

	stored := c.store(def, records)
	if err := c.SaveCollection(property); err != nil {
		return err
	}
	c.notify(Change{Property: property, Value: stored})
	return nil
}

// store reconciles records against def and stores them, returning a copy
// of what was stored.
func (c *Config) store(def ObjectDefinition, records []Record) []Record {
	reconciled := reconcile(def, records)

	c.mu.Lock()
	c.values[def.Property] = reconciled
	c.mu.Unlock()

	return cloneRecords(reconciled)
}

// reconcile copies records, filling every field of def.FieldDefaults that
// a record lacks. Present fields are kept whatever their value; nil
// defaults are not applied.
func reconcile(def ObjectDefinition, records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		item := r.Clone()
		for field, value := range def.FieldDefaults {
			if value == nil {
				continue
			}
			if _, ok := item[field]; ok {
				continue
			}
			item[field] = value
		}
		out[i] = item
	}
	return out
}

func cloneRecords(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
