// Package schemafile reads property declarations from TOML or YAML files
// and registers them on a configuration.
package schemafile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/errors"
)

// Format identifies a declaration file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Declaration is the parsed content of a declaration file.
type Declaration struct {
	Properties  []Property   `toml:"property" yaml:"property"`
	Collections []Collection `toml:"collection" yaml:"collection"`
}

// Property declares a single scalar property.
type Property struct {
	Key      string            `toml:"key" yaml:"key"`
	Default  any               `toml:"default" yaml:"default"`
	Question string            `toml:"question" yaml:"question"`
	Values   []any             `toml:"values" yaml:"values"`
	Choices  map[string]string `toml:"choices" yaml:"choices"`
	Info     bool              `toml:"info" yaml:"info"`
	Depends  *Depends          `toml:"depends" yaml:"depends"`
}

// Depends gates a property on another property's value.
type Depends struct {
	Key   string `toml:"key" yaml:"key"`
	Value any    `toml:"value" yaml:"value"`
}

// Collection declares an object collection.
type Collection struct {
	Property string           `toml:"property" yaml:"property"`
	Filter   string           `toml:"filter" yaml:"filter"`
	Name     string           `toml:"name" yaml:"name"`
	Fields   map[string]any   `toml:"fields" yaml:"fields"`
	Defaults []map[string]any `toml:"defaults" yaml:"defaults"`
}

// FormatOf returns the format implied by a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.SchemaError(fmt.Sprintf("unsupported declaration file %s", path),
		fmt.Errorf("expected a .toml, .yaml or .yml extension"))
}

// Load reads and validates a declaration file.
func Load(path string) (*Declaration, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.SchemaError(fmt.Sprintf("failed to read declaration file %s", path), err)
	}

	decl, err := Parse(data, format)
	if err != nil {
		return nil, errors.SchemaError(fmt.Sprintf("invalid declaration file %s", path), err)
	}
	return decl, nil
}

// Parse decodes and validates declarations.
func Parse(data []byte, format Format) (*Declaration, error) {
	var decl Declaration

	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &decl)
		if err != nil {
			return nil, fmt.Errorf("invalid TOML: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown field %s", undecoded[0])
		}
	case FormatYAML:
		dec := yaml.NewDecoder(strings.NewReader(string(data)))
		dec.KnownFields(true)
		if err := dec.Decode(&decl); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}

	if err := decl.Validate(); err != nil {
		return nil, err
	}
	return &decl, nil
}

// Validate checks that every declaration is complete and unambiguous.
func (d *Declaration) Validate() error {
	seen := make(map[string]bool)

	for i, p := range d.Properties {
		if p.Key == "" {
			return fmt.Errorf("property at index %d: missing required field 'key'", i)
		}
		if seen[p.Key] {
			return fmt.Errorf("duplicate property: '%s'", p.Key)
		}
		seen[p.Key] = true

		if len(p.Values) > 0 && len(p.Choices) > 0 {
			return fmt.Errorf("property '%s': 'values' and 'choices' are mutually exclusive", p.Key)
		}
		if p.Info && (len(p.Values) > 0 || len(p.Choices) > 0) {
			return fmt.Errorf("property '%s': info properties take no choices", p.Key)
		}
		if p.Depends != nil && p.Depends.Key == "" {
			return fmt.Errorf("property '%s': depends requires 'key'", p.Key)
		}
	}

	for i, c := range d.Collections {
		if c.Property == "" {
			return fmt.Errorf("collection at index %d: missing required field 'property'", i)
		}
		if seen[c.Property] {
			return fmt.Errorf("duplicate property: '%s'", c.Property)
		}
		seen[c.Property] = true
	}

	return nil
}

// Apply registers the declarations on cfg in file order, properties
// before collections.
func Apply(cfg *config.Config, d *Declaration) error {
	for _, p := range d.Properties {
		if err := cfg.Define(p.Key, p.options()); err != nil {
			return err
		}
	}

	for _, c := range d.Collections {
		defaults := make([]config.Record, len(c.Defaults))
		for i, r := range c.Defaults {
			defaults[i] = config.Record(r)
		}
		opts := config.DefineOptions{
			Default: defaults,
			Object: &config.ObjectDefinition{
				Property:      c.Property,
				FilterField:   c.Filter,
				Name:          c.Name,
				FieldDefaults: c.Fields,
			},
		}
		if err := cfg.Define(c.Property, opts); err != nil {
			return err
		}
	}

	return nil
}

func (p Property) options() config.DefineOptions {
	opts := config.DefineOptions{
		Default:  p.Default,
		Question: p.Question,
		Info:     p.Info,
	}
	switch {
	case len(p.Values) > 0:
		opts.Values = config.ChoiceList(p.Values...)
	case len(p.Choices) > 0:
		opts.Values = config.ChoiceMap(p.Choices)
	}
	if p.Depends != nil {
		opts.Depends = &config.Dependency{Key: p.Depends.Key, Value: p.Depends.Value}
	}
	return opts
}
