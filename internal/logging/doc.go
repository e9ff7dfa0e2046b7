// Package logging provides logging utilities for forage-config.
//
// This package provides two categories of output:
//   - Diagnostics: structured records through the global slog Logger
//   - User output: short status lines for the person at the terminal
//
// # Diagnostics
//
// Setup is called once from the root command:
//
//	logging.Setup(logging.Options{Verbose: verbose, Quiet: quiet, JSON: jsonLogs})
//
// Packages take an optional *slog.Logger and fall back to a tagged
// global one:
//
//	logger := logging.Component("config")
//	logger.Warn("collection file unreadable, loading defaults", "path", path)
//
// # User Output
//
//	logging.UserInfo("Watching %s", path)       // ℹ on stdout
//	logging.UserSuccess("Saved %s", path)       // ✓ on stdout
//	logging.UserWarning("%s is not declared", k) // ⚠ on stderr
//	logging.UserError("%v", err)                 // ✗ on stderr
//
// Tests redirect user output through the Stdout and Stderr variables.
package logging
