// Package app provides the application context for forage-config.
// It allows dependency injection for testing.
package app

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/joeshaw/envdecode"

	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/audit"
	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/elicit"
	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/schemafile"
)

// Settings are the CLI defaults read from the environment.
type Settings struct {
	// Dir is the configuration directory. ENV: FORAGE_CONFIG_DIR
	Dir string `env:"FORAGE_CONFIG_DIR,default=."`
	// File is the main configuration file inside Dir. ENV: FORAGE_CONFIG_FILE
	File string `env:"FORAGE_CONFIG_FILE,default=config.conf"`
	// Schema is a TOML or YAML declaration file. ENV: FORAGE_CONFIG_SCHEMA
	Schema string `env:"FORAGE_CONFIG_SCHEMA"`
	// Timeout is the countdown before defaults are used; 0 waits forever.
	// ENV: FORAGE_CONFIG_TIMEOUT
	Timeout time.Duration `env:"FORAGE_CONFIG_TIMEOUT,default=0s,strict"`
}

// LoadSettings decodes Settings from the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := envdecode.Decode(&s); err != nil && err != envdecode.ErrNoTargetFieldsAreSet {
		return Settings{}, errors.Wrap(errors.ExitGeneralError, "invalid environment settings", err)
	}
	if s.Dir == "" {
		s.Dir = config.DefaultDir
	}
	if s.File == "" {
		s.File = config.DefaultFile
	}
	return s, nil
}

// App holds the application dependencies
type App struct {
	Settings Settings

	// Config is the loaded configuration with every declaration applied.
	Config *config.Config

	// Journal records every change made through Config.
	Journal *audit.Journal

	Logger *slog.Logger

	loadErr error
	detach  func()
}

// Option is a function that configures the App
type Option func(*App)

// WithSettings sets the settings instead of reading the environment
func WithSettings(s Settings) Option {
	return func(a *App) {
		a.Settings = s
	}
}

// WithLogger sets the logger passed to every component
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// New creates an App: it applies the declaration file, attaches the change
// journal and loads the stored configuration. A main file that fails to
// load is not an error; see LoadError.
func New(opts ...Option) (*App, error) {
	settings, err := LoadSettings()
	if err != nil {
		return nil, err
	}

	a := &App{Settings: settings}
	for _, opt := range opts {
		opt(a)
	}
	if a.Logger == nil {
		a.Logger = logging.Logger
	}
	if a.Settings.Dir == "" {
		a.Settings.Dir = config.DefaultDir
	}
	if a.Settings.File == "" {
		a.Settings.File = config.DefaultFile
	}

	a.Config = config.New(a.Settings.Dir,
		config.WithLogger(a.Logger),
		config.WithFile(a.Settings.File),
	)

	if a.Settings.Schema != "" {
		decl, err := schemafile.Load(a.Settings.Schema)
		if err != nil {
			return nil, err
		}
		if err := schemafile.Apply(a.Config, decl); err != nil {
			return nil, err
		}
		a.Logger.Debug("declarations applied", "schema", a.Settings.Schema,
			"properties", len(decl.Properties), "collections", len(decl.Collections))
	}

	a.Journal = audit.NewJournal(a.Settings.Dir).WithLogger(a.Logger)
	a.detach = a.Journal.Attach(a.Config)

	a.loadErr = a.Config.Load(a.Settings.File)
	return a, nil
}

// LoadError returns the error from loading the main file, if any.
func (a *App) LoadError() error {
	return a.loadErr
}

// NeedsConfiguration reports whether the user should be asked for values:
// the main file could not be loaded or a required property has no value.
func (a *App) NeedsConfiguration() bool {
	return a.loadErr != nil || len(a.Config.Missing()) > 0
}

// ConfigPath returns the path of the main configuration file.
func (a *App) ConfigPath() string {
	return filepath.Join(a.Settings.Dir, a.Settings.File)
}

// Engine returns an elicitation engine for the configuration.
func (a *App) Engine(opts ...elicit.Option) *elicit.Engine {
	opts = append([]elicit.Option{elicit.WithLogger(a.Logger)}, opts...)
	return elicit.New(a.Config, opts...)
}

// Close detaches the change journal.
func (a *App) Close() {
	if a.detach != nil {
		a.detach()
		a.detach = nil
	}
}
