// Package errors provides typed errors with exit codes for forage-config.
//
// # Error Types
//
// ConfigError is the base error type that wraps an error with an exit code:
//
//	type ConfigError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess         = 0   // Success
//	ExitGeneralError    = 1   // General/unknown errors
//	ExitUnknownProperty = 2   // Property has no declaration
//	ExitSchemaError     = 3   // Invalid declaration file or definition
//	ExitPersistError    = 4   // Config or collection file could not be written
//	ExitInputError      = 5   // Input source failed
//	ExitInterrupted     = 130 // User interrupt
//
// Load failures are not errors at this level: a missing or corrupt config
// file is logged and the defaults are used.
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
