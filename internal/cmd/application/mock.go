// Package application provides test doubles for the command application interface.
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/inetmap/cmd/application"
	"github.com/agentstation/inetmap/pkg/prepare"
	"github.com/agentstation/inetmap/pkg/reconciler"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	PrepareFunc      func(ctx context.Context, req prepare.Request) (*reconciler.Result, error)
	RequestFunc      func() prepare.Request
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	Width            int
	Height           int
	VersionValue     string
}

var _ application.Application = (*Mock)(nil)

// prepareFunc adapts a function to application.Preparer.
type prepareFunc func(ctx context.Context, req prepare.Request) (*reconciler.Result, error)

func (f prepareFunc) Prepare(ctx context.Context, req prepare.Request) (*reconciler.Result, error) {
	return f(ctx, req)
}

// Preparer returns a preparer backed by PrepareFunc.
func (m *Mock) Preparer() application.Preparer {
	return prepareFunc(func(ctx context.Context, req prepare.Request) (*reconciler.Result, error) {
		if m.PrepareFunc != nil {
			return m.PrepareFunc(ctx, req)
		}
		return nil, nil
	})
}

// Request returns the request from RequestFunc or an empty request.
func (m *Mock) Request() prepare.Request {
	if m.RequestFunc != nil {
		return m.RequestFunc()
	}
	return prepare.Request{}
}

// MapSize returns Width and Height.
func (m *Mock) MapSize() (int, int) {
	return m.Width, m.Height
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns VersionValue or "dev".
func (m *Mock) Version() string {
	if m.VersionValue != "" {
		return m.VersionValue
	}
	return "dev"
}

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }
