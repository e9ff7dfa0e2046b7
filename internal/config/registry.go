package config

import (
	"fmt"

	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/errors"
)

// DefaultQuestion is shown when a required property has no question text.
const DefaultQuestion = "Please enter a value for"

// Kind classifies how a property takes part in elicitation.
type Kind int

const (
	// KindNone marks a property that only has a default.
	KindNone Kind = iota
	// KindValue marks a property that is asked for, free-form or from Choices.
	KindValue
	// KindInfo marks a display-only entry that never stores a value.
	KindInfo
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindInfo:
		return "info"
	}
	return "none"
}

// Dependency gates an entry on another property's resolved value.
type Dependency struct {
	Key   string
	Value any
}

// Entry is the declaration of a single property.
type Entry struct {
	Key        string
	Default    any
	HasDefault bool
	Kind       Kind
	Choices    Choices
	Question   string
	Depends    *Dependency
}

// Prompt returns the question text, falling back to DefaultQuestion.
func (e Entry) Prompt() string {
	if e.Question == "" {
		return DefaultQuestion
	}
	return e.Question
}

// DefineOptions combines the registry calls into a single declaration.
type DefineOptions struct {
	Default  any
	Depends  *Dependency
	Question string
	Values   Choices
	Info     bool
	// Object declares the property as an object collection; Default must
	// then be a list of records.
	Object *ObjectDefinition
}

// entry returns the declaration for key, creating it on first use.
// Callers hold c.mu.
func (c *Config) entry(key string) *Entry {
	e, ok := c.entries[key]
	if !ok {
		e = &Entry{Key: key}
		c.entries[key] = e
		c.declared = append(c.declared, key)
	}
	return e
}

// markAsked appends key to the elicitation order the first time it is
// required. Callers hold c.mu.
func (c *Config) markAsked(key string) {
	for _, k := range c.order {
		if k == key {
			return
		}
	}
	c.order = append(c.order, key)
}

// Default sets the value used for key while nothing has been stored.
func (c *Config) Default(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.entry(key)
	e.Default = value
	e.HasDefault = true
}

// Require marks key as asked for during elicitation. A non-empty choices
// restricts the accepted answers. An empty question keeps any previously
// declared one; a nil depends keeps any previously declared dependency.
func (c *Config) Require(key string, choices Choices, question string, depends *Dependency) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.entry(key)
	e.Kind = KindValue
	e.Choices = choices
	if question != "" {
		e.Question = question
	}
	if depends != nil {
		e.Depends = depends
	}
	c.markAsked(key)
}

// Info declares a display-only entry that is shown during elicitation but
// never receives a value.
func (c *Config) Info(key string, question string, depends *Dependency) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.entry(key)
	e.Kind = KindInfo
	e.Choices = nil
	if question != "" {
		e.Question = question
	}
	if depends != nil {
		e.Depends = depends
	}
	c.markAsked(key)
}

// Define dispatches a combined declaration to Object, Default, Info and
// Require.
func (c *Config) Define(key string, opts DefineOptions) error {
	if opts.Object != nil {
		def := *opts.Object
		if def.Property == "" {
			def.Property = key
		}
		if def.Property != key {
			return errors.SchemaError(fmt.Sprintf("collection %s", key),
				fmt.Errorf("definition names property %q", def.Property))
		}
		records, err := ToRecords(opts.Default)
		if err != nil {
			return errors.SchemaError(fmt.Sprintf("invalid defaults for collection %s", key), err)
		}
		return c.Object(def, records)
	}

	if opts.Default != nil {
		c.Default(key, opts.Default)
	}

	switch {
	case opts.Info:
		c.Info(key, opts.Question, opts.Depends)
	case opts.Question != "" || len(opts.Values) > 0:
		c.Require(key, opts.Values, opts.Question, opts.Depends)
	case opts.Depends != nil:
		c.mu.Lock()
		c.entry(key).Depends = opts.Depends
		c.mu.Unlock()
	}
	return nil
}

// Entries returns the entries that take part in elicitation, in the order
// they were first required.
func (c *Config) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := make([]Entry, 0, len(c.order))
	for _, key := range c.order {
		entries = append(entries, *c.entries[key])
	}
	return entries
}

// Entry returns the declaration for key.
func (c *Config) Entry(key string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Eligible reports whether the entry's dependency, if any, is satisfied.
// A dependency on a property with neither a stored value nor a default is
// never satisfied.
func (c *Config) Eligible(e Entry) bool {
	if e.Depends == nil {
		return true
	}
	v, ok := c.lookup(e.Depends.Key)
	if !ok {
		return false
	}
	return Equal(v, e.Depends.Value)
}

// Missing returns the eligible required properties that have no stored
// value, in elicitation order.
func (c *Config) Missing() []string {
	var missing []string
	for _, e := range c.Entries() {
		if e.Kind != KindValue || !c.Eligible(e) {
			continue
		}
		if !c.IsSet(e.Key) {
			missing = append(missing, e.Key)
		}
	}
	return missing
}
