package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSetup_Levels(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		wantLevel slog.Level
		visible   []string
		hidden    []string
	}{
		{
			name:      "default",
			opts:      Options{},
			wantLevel: slog.LevelInfo,
			visible:   []string{"info record", "warn record"},
			hidden:    []string{"debug record"},
		},
		{
			name:      "verbose",
			opts:      Options{Verbose: true},
			wantLevel: slog.LevelDebug,
			visible:   []string{"debug record", "info record", "warn record"},
		},
		{
			name:      "quiet",
			opts:      Options{Quiet: true},
			wantLevel: slog.LevelWarn,
			visible:   []string{"warn record"},
			hidden:    []string{"debug record", "info record"},
		},
		{
			name:      "verbose wins over quiet",
			opts:      Options{Verbose: true, Quiet: true},
			wantLevel: slog.LevelDebug,
			visible:   []string{"debug record"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.opts.Writer = &buf
			Setup(tt.opts)
			defer Setup(Options{})

			if Level() != tt.wantLevel {
				t.Errorf("Level() = %v, want %v", Level(), tt.wantLevel)
			}
			if Verbose != tt.opts.Verbose {
				t.Errorf("Verbose = %v, want %v", Verbose, tt.opts.Verbose)
			}

			Logger.Debug("debug record")
			Logger.Info("info record")
			Logger.Warn("warn record")

			output := buf.String()
			for _, msg := range tt.visible {
				if !strings.Contains(output, msg) {
					t.Errorf("expected %q in output, got: %s", msg, output)
				}
			}
			for _, msg := range tt.hidden {
				if strings.Contains(output, msg) {
					t.Errorf("did not expect %q in output, got: %s", msg, output)
				}
			}
		})
	}
}

func TestSetup_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup(Options{JSON: true, Writer: &buf})
	defer Setup(Options{})

	Logger.Info("config loaded", "keys", 3)

	output := buf.String()
	if !strings.HasPrefix(output, "{") {
		t.Errorf("Expected JSON output, got: %s", output)
	}
	if !strings.Contains(output, `"msg":"config loaded"`) || !strings.Contains(output, `"keys":3`) {
		t.Errorf("Expected message and attribute in output, got: %s", output)
	}
}

func TestSetup_NilWriter(t *testing.T) {
	// Should not panic with nil writer
	Setup(Options{})

	if Logger == nil {
		t.Error("Logger should not be nil after Setup with nil writer")
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	Setup(Options{Writer: &buf})
	defer Setup(Options{})

	Component("elicit").Info("prompting")

	output := buf.String()
	if !strings.Contains(output, "component=elicit") {
		t.Errorf("Expected component attribute in output, got: %s", output)
	}
}

func TestComponent_FollowsSetup(t *testing.T) {
	var first, second bytes.Buffer
	Setup(Options{Writer: &first})
	Component("config").Info("one")

	Setup(Options{Writer: &second})
	defer Setup(Options{})
	Component("config").Info("two")

	if strings.Contains(first.String(), "two") || !strings.Contains(second.String(), "two") {
		t.Errorf("Component should use the current logger: first=%q second=%q", first.String(), second.String())
	}
}

func TestUserOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	oldOut, oldErr := Stdout, Stderr
	Stdout, Stderr = &out, &errOut
	defer func() { Stdout, Stderr = oldOut, oldErr }()

	UserInfo("loading %s", "config.conf")
	UserSuccess("saved")
	UserWarning("using defaults for %s", "items")
	UserError("failed: %v", "boom")

	for _, want := range []string{"ℹ", "loading config.conf", "✓", "saved"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("stdout missing %q: %q", want, out.String())
		}
	}
	for _, want := range []string{"⚠", "using defaults for items", "✗", "failed: boom"} {
		if !strings.Contains(errOut.String(), want) {
			t.Errorf("stderr missing %q: %q", want, errOut.String())
		}
	}
	if strings.Count(out.String(), "\n") != 2 || strings.Count(errOut.String(), "\n") != 2 {
		t.Errorf("expected one line per message: stdout=%q stderr=%q", out.String(), errOut.String())
	}
}

func TestUserOutput_PercentInArgs(t *testing.T) {
	var out bytes.Buffer
	oldOut := Stdout
	Stdout = &out
	defer func() { Stdout = oldOut }()

	UserInfo("%s", "100% done")

	if !strings.Contains(out.String(), "100% done") {
		t.Errorf("stdout = %q", out.String())
	}
}
