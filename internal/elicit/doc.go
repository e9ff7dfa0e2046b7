// Package elicit drives the elicitation of configuration values.
//
// The Engine walks a config.Config's entries in registration order, skips
// entries whose dependency is not met, asks a Source for each remaining
// value, validates answers against the entry's choice set and assigns the
// accepted value. When every entry has been handled the resolved values are
// written to the target file.
//
// Two front ends share that traversal:
//
//	// Programmatic: any function with the AskFunc signature.
//	err := engine.RunProgrammatic(ctx, "config.conf", ask, func() { ... })
//
//	// Interactive: a terminal source, optionally racing a countdown
//	// against the "Create custom config?" confirmation.
//	err := engine.RunInteractive(ctx, "config.conf", 10*time.Second, term)
//
// Invalid answers are re-asked with Prompt.Problem set. There is no limit
// on the number of attempts; cancel ctx, or return an error from the
// source, to stop.
package elicit
