// Package application provides the application interface for inetmap commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            result, err := app.Preparer().Prepare(cmd.Context(), app.Request())
//	            if err != nil {
//	                return err
//	            }
//	            // ... render result
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    PrepareFunc: func(ctx context.Context, req prepare.Request) (*reconciler.Result, error) {
//	        return testResult, nil
//	    },
//	}
//	cmd := NewCommand(mock)
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/inetmap/pkg/prepare"
	"github.com/agentstation/inetmap/pkg/reconciler"
)

// Preparer loads and reconciles the input datasets.
type Preparer interface {
	Prepare(ctx context.Context, req prepare.Request) (*reconciler.Result, error)
}

// Application provides the application interface that commands need.
// The App struct from cmd/inetmap/app implements this interface.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Preparer returns the shared, memoizing preparer.
	Preparer() Preparer

	// Request returns the dataset request built from configuration.
	// Commands overlay their own flags on top of it.
	Request() prepare.Request

	// MapSize returns the configured canvas size in pixels.
	MapSize() (width, height int)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
