// Package config implements the configuration schema registry and value
// store for forage-config.
//
// A Config owns three things: the declarations a host registers (defaults,
// required values with optional choice sets and dependencies, informational
// entries and object collections), the resolved values, and their
// persistence on disk. Nothing is shared between instances.
//
// # Declaring Properties
//
//	cfg := config.New("/etc/myapp")
//	cfg.Default("mode", "dev")
//	cfg.Require("mode", config.ChoiceList("dev", "prod"), "Which mode?", nil)
//	cfg.Default("debug", false)
//	cfg.Require("debug", nil, "Enable debug?", &config.Dependency{Key: "mode", Value: "dev"})
//	cfg.Info("welcome", "Welcome to the setup", nil)
//
// Entries returns the declarations that take part in elicitation, in the
// order they were first required. Dependants must be declared after the
// property they depend on.
//
// # Object Collections
//
// Array-valued properties are declared with Object. Every record is
// backfilled with the collection's field defaults; fields that are present,
// even when false, zero or null, are left alone:
//
//	cfg.Object(config.ObjectDefinition{
//	    Property:      "items",
//	    FilterField:   "group",
//	    FieldDefaults: map[string]any{"enabled": true},
//	}, nil)
//	cfg.Set("items", []config.Record{{"name": "x", "group": "a"}})
//	cfg.Filter("items", "a") // [{name: x, group: a, enabled: true}]
//
// # Files
//
//   - <dir>/<file> (default config.conf): JSON object of All()
//   - <dir>/data/<property>.json: one pretty-printed JSON array per collection
//
// Load failures are logged at warn level and leave the store unchanged.
package config
