package errors

import (
	"errors"
	"fmt"
)

// Exit codes for forage-config
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitUnknownProperty = 2
	ExitSchemaError     = 3
	ExitPersistError    = 4
	ExitInputError      = 5
	ExitInterrupted     = 130
)

// ConfigError is the base error type for forage-config
type ConfigError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *ConfigError) ExitCode() int {
	return e.Code
}

// New creates a new ConfigError
func New(code int, message string) *ConfigError {
	return &ConfigError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a ConfigError
func Wrap(code int, message string, cause error) *ConfigError {
	return &ConfigError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// UnknownProperty returns an error for a property with no declaration
func UnknownProperty(key string) *ConfigError {
	return New(ExitUnknownProperty, fmt.Sprintf("unknown property: %s", key))
}

// SchemaError returns an error for an invalid schema declaration
func SchemaError(message string, cause error) *ConfigError {
	return Wrap(ExitSchemaError, message, cause)
}

// PersistError returns an error for a failed write of the store or a collection
func PersistError(target string, cause error) *ConfigError {
	return Wrap(ExitPersistError, fmt.Sprintf("failed to save %s", target), cause)
}

// InputError returns an error for a failing input source
func InputError(key string, cause error) *ConfigError {
	return Wrap(ExitInputError, fmt.Sprintf("failed to read value for %s", key), cause)
}

// Interrupted returns an error for a user interrupt
func Interrupted() *ConfigError {
	return New(ExitInterrupted, "interrupted")
}

// IsInterrupted reports whether err carries a user interrupt
func IsInterrupted(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr) && configErr.Code == ExitInterrupted
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *ConfigError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
