// Package app provides the application context and dependency management
// for the inetmap CLI. It centralizes configuration, logging, and the
// shared dataset preparer, and injects them into commands.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/inetmap/cmd/application"
	"github.com/agentstation/inetmap/pkg/errors"
	"github.com/agentstation/inetmap/pkg/prepare"
)

// App represents the inetmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Preparer (lazy-initialized, singleton)
	mu       sync.Mutex
	preparer application.Preparer
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.NewConfigError("app", "failed to load config", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// MapSize returns the configured canvas size.
func (a *App) MapSize() (int, int) {
	return a.config.Width, a.config.Height
}

// Request returns the dataset request described by the configuration.
func (a *App) Request() prepare.Request {
	return prepare.Request{
		UsagePath:    a.config.UsagePath,
		BoundaryPath: a.config.BoundaryPath,
		Threshold:    a.config.YearThreshold,
		ValueColumn:  a.config.ValueColumn,
	}
}

// Preparer returns the shared preparer, creating it on first use.
func (a *App) Preparer() application.Preparer {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.preparer == nil {
		a.preparer = prepare.New(
			prepare.WithTTL(a.config.CacheTTL),
			prepare.WithLogger(a.logger),
		)
	}
	return a.preparer
}

// Shutdown releases cached results.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if p, ok := a.preparer.(*prepare.Preparer); ok {
		p.Invalidate()
		a.logger.Debug().Msg("Prepared data cache flushed")
	}
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewValidationError("config", nil, "must not be nil")
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithPreparer sets a custom preparer (useful for testing).
func WithPreparer(p application.Preparer) Option {
	return func(a *App) error {
		a.preparer = p
		return nil
	}
}
