package config

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/logging"
)

const (
	DefaultDir  = "."
	DefaultFile = "config.conf"
	DataDir     = "data"
)

// Change is published to observers after every successful assignment.
type Change struct {
	Property string `json:"property"`
	Value    any    `json:"value"`
}

// Observer receives assignment notifications.
type Observer func(Change)

type subscriber struct {
	id int
	fn Observer
}

// Config owns a schema registry and the values resolved for it.
type Config struct {
	mu sync.RWMutex

	dir    string
	file   string
	logger *slog.Logger

	entries  map[string]*Entry
	declared []string // every declared key, first-mention order
	order    []string // keys taking part in elicitation

	values  map[string]any
	objects map[string]ObjectDefinition

	subscribers []subscriber
	nextID      int

	// lastWrite holds the bytes most recently written per path so Watch can
	// ignore this instance's own saves.
	lastWrite map[string][]byte
}

// Option configures a Config.
type Option func(*Config)

// WithLogger sets the logger used for load warnings and traces.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.logger = l
	}
}

// WithFile sets the main file that Set persists to.
func WithFile(file string) Option {
	return func(c *Config) {
		c.file = file
	}
}

// New creates an empty Config rooted at dir.
func New(dir string, opts ...Option) *Config {
	if dir == "" {
		dir = DefaultDir
	}
	c := &Config{
		dir:       dir,
		file:      DefaultFile,
		entries:   make(map[string]*Entry),
		values:    make(map[string]any),
		objects:   make(map[string]ObjectDefinition),
		lastWrite: make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Config) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return logging.Component("config")
}

// Dir returns the directory files are stored under.
func (c *Config) Dir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dir
}

// SetDir changes the directory files are stored under.
func (c *Config) SetDir(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dir = dir
}

// File returns the main file name that Set persists to.
func (c *Config) File() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.file
}

// lookup returns the stored value for key, or its default.
func (c *Config) lookup(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.objects[key]; ok {
		records, _ := c.values[key].([]Record)
		return cloneRecords(records), true
	}
	if v, ok := c.values[key]; ok {
		return v, true
	}
	if e, ok := c.entries[key]; ok && e.HasDefault {
		return e.Default, true
	}
	return nil, false
}

// Get returns the stored value for key, or its default when nothing is
// stored. Collection properties return a copy of their records.
func (c *Config) Get(key string) any {
	v, _ := c.lookup(key)
	return v
}

// IsSet reports whether a value has been stored for key.
func (c *Config) IsSet(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.values[key]
	return ok
}

// Set stores value for key and persists it. A nil value resets key to its
// default. Scalar properties are written to the main file; collection
// properties are reconciled and written to their own file.
func (c *Config) Set(key string, value any) error {
	c.mu.RLock()
	_, isObject := c.objects[key]
	if value == nil {
		if e, ok := c.entries[key]; ok {
			value = e.Default
		}
	}
	file := c.file
	c.mu.RUnlock()

	if isObject {
		records, err := ToRecords(value)
		if err != nil {
			return fmt.Errorf("invalid value for collection %s: %w", key, err)
		}
		return c.SetItems(key, records)
	}

	c.mu.Lock()
	c.values[key] = value
	c.mu.Unlock()

	if err := c.Save(file); err != nil {
		return err
	}
	c.notify(Change{Property: key, Value: value})
	return nil
}

// Assign stores value for key and notifies observers without persisting.
// The elicitation engine uses it and saves once at the end.
func (c *Config) Assign(key string, value any) {
	c.mu.Lock()
	c.values[key] = value
	c.mu.Unlock()

	c.log().Debug("property assigned", "property", key, "value", value)
	c.notify(Change{Property: key, Value: value})
}

// All returns every non-collection property: defaults for keys never set,
// stored values otherwise. Informational entries are excluded.
func (c *Config) All() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	all := make(map[string]any)
	for key, e := range c.entries {
		if !e.HasDefault || e.Kind == KindInfo {
			continue
		}
		if _, ok := c.objects[key]; ok {
			continue
		}
		all[key] = e.Default
	}
	for key, v := range c.values {
		if _, ok := c.objects[key]; ok {
			continue
		}
		if e, ok := c.entries[key]; ok && e.Kind == KindInfo {
			continue
		}
		all[key] = v
	}
	return all
}

// Keys returns the keys of All in declaration order, followed by
// undeclared stored keys in sorted order.
func (c *Config) Keys() []string {
	all := c.All()

	c.mu.RLock()
	declared := append([]string(nil), c.declared...)
	c.mu.RUnlock()

	keys := make([]string, 0, len(all))
	seen := make(map[string]bool, len(all))
	for _, key := range declared {
		if _, ok := all[key]; ok {
			keys = append(keys, key)
			seen[key] = true
		}
	}
	var extra []string
	for key := range all {
		if !seen[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

// Print logs every resolved property and passes each line to fn when it is
// not nil.
func (c *Config) Print(fn func(string)) {
	all := c.All()
	for _, key := range c.Keys() {
		value := all[key]
		c.log().Info("configuration option", "property", key, "value", value)
		if fn != nil {
			fn(fmt.Sprintf("Configuration option %s has been set to: %v", key, value))
		}
	}
}

// Subscribe registers fn for assignment notifications and returns a
// function that removes it.
func (c *Config) Subscribe(fn Observer) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.subscribers = append(c.subscribers, subscriber{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.subscribers {
			if s.id == id {
				c.subscribers = append(c.subscribers[:i], c.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (c *Config) notify(change Change) {
	c.mu.RLock()
	subs := append([]subscriber(nil), c.subscribers...)
	c.mu.RUnlock()

	for _, s := range subs {
		s.fn(change)
	}
}
