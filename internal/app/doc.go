// Package app provides the application context for forage-config.
//
// This package wires the configuration, its declaration file and the change
// journal together using the functional options pattern, enabling easy
// testing through dependency injection.
//
// # Settings
//
// Defaults come from the environment:
//
//	FORAGE_CONFIG_DIR      configuration directory (default ".")
//	FORAGE_CONFIG_FILE     main file inside the directory (default "config.conf")
//	FORAGE_CONFIG_SCHEMA   TOML or YAML declaration file
//	FORAGE_CONFIG_TIMEOUT  countdown before defaults are used, e.g. "10s"
//
// # Creating an App
//
//	// Production usage
//	a, err := app.New()
//
//	// Testing with explicit settings
//	a, err := app.New(
//	    app.WithSettings(app.Settings{Dir: dir, File: "config.conf", Schema: schema}),
//	    app.WithLogger(quiet),
//	)
//	defer a.Close()
package app
