package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestConfigError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *ConfigError
		wantMsg string
	}{
		{
			name:    "without cause",
			err:     New(ExitGeneralError, "something went wrong"),
			wantMsg: "something went wrong",
		},
		{
			name:    "with cause",
			err:     Wrap(ExitGeneralError, "operation failed", fmt.Errorf("underlying error")),
			wantMsg: "operation failed: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestConfigError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(ExitGeneralError, "wrapped", cause)

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	errNoCause := New(ExitGeneralError, "no cause")
	if unwrapped := errNoCause.Unwrap(); unwrapped != nil {
		t.Errorf("Unwrap() = %v, want nil", unwrapped)
	}
}

func TestConstructors(t *testing.T) {
	cause := fmt.Errorf("disk full")

	tests := []struct {
		name     string
		err      *ConfigError
		wantCode int
		wantMsg  string
	}{
		{"unknown property", UnknownProperty("port"), ExitUnknownProperty, "unknown property: port"},
		{"schema", SchemaError("invalid declaration", cause), ExitSchemaError, "invalid declaration: disk full"},
		{"persist", PersistError("config.conf", cause), ExitPersistError, "failed to save config.conf: disk full"},
		{"input", InputError("mode", cause), ExitInputError, "failed to read value for mode: disk full"},
		{"interrupted", Interrupted(), ExitInterrupted, "interrupted"},
		{"validation", ValidationError("bad value"), ExitGeneralError, "bad value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"config error", New(ExitSchemaError, "test"), ExitSchemaError},
		{"wrapped config error", fmt.Errorf("outer: %w", PersistError("x", nil)), ExitPersistError},
		{"standard error", errors.New("standard"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsAndAs(t *testing.T) {
	cause := errors.New("cause")
	err := InputError("mode", cause)

	if !Is(err, cause) {
		t.Error("Is() should find the wrapped cause")
	}

	var target *ConfigError
	if !As(fmt.Errorf("wrapped: %w", err), &target) {
		t.Fatal("As() should find the ConfigError")
	}
	if target.Code != ExitInputError {
		t.Errorf("Code = %d, want %d", target.Code, ExitInputError)
	}
}

func TestIsInterrupted(t *testing.T) {
	if !IsInterrupted(fmt.Errorf("reading line: %w", Interrupted())) {
		t.Error("wrapped interrupt should be detected")
	}
	if IsInterrupted(InputError("mode", errors.New("eof"))) {
		t.Error("input error is not an interrupt")
	}
	if IsInterrupted(nil) {
		t.Error("nil is not an interrupt")
	}
}
