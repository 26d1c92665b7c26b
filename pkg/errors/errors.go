// Package errors provides custom error types for the inetmap system.
// These errors enable programmatic error checking for the data-integrity
// failures raised while reconciling the usage and boundary datasets.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is and As mirror the standard library so callers need a single import.
var (
	Is = errors.Is
	As = errors.As
)

// Common sentinel errors for the inetmap system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedInput indicates a structural violation in an input dataset
	ErrMalformedInput = errors.New("malformed input")

	// ErrEmptyDataset indicates cleaning removed every row of a dataset
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrNoJoinableData indicates the datasets share no identifiers
	ErrNoJoinableData = errors.New("no joinable data")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// MalformedInputError reports a structural violation of an input dataset,
// such as a boundary identifier that appears more than once.
type MalformedInputError struct {
	Dataset     string
	Field       string
	Identifiers []string
	Message     string
}

// Error implements the error interface
func (e *MalformedInputError) Error() string {
	if len(e.Identifiers) > 0 {
		return fmt.Sprintf("malformed %s dataset: %s (%s: %s)",
			e.Dataset, e.Message, e.Field, strings.Join(e.Identifiers, ", "))
	}
	return fmt.Sprintf("malformed %s dataset: %s", e.Dataset, e.Message)
}

// Is implements errors.Is support
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// NewDuplicateIdentifierError creates a MalformedInputError for identifiers
// that must be unique but are not.
func NewDuplicateIdentifierError(dataset, field string, ids []string) *MalformedInputError {
	return &MalformedInputError{
		Dataset:     dataset,
		Field:       field,
		Identifiers: ids,
		Message:     "identifier is not unique",
	}
}

// EmptyDatasetError reports that a dataset has no rows left after cleaning.
type EmptyDatasetError struct {
	Dataset string
	Reason  string
}

// Error implements the error interface
func (e *EmptyDatasetError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s dataset is empty: %s", e.Dataset, e.Reason)
	}
	return fmt.Sprintf("%s dataset is empty", e.Dataset)
}

// Is implements errors.Is support
func (e *EmptyDatasetError) Is(target error) bool {
	return target == ErrEmptyDataset
}

// NewEmptyDatasetError creates a new EmptyDatasetError
func NewEmptyDatasetError(dataset, reason string) *EmptyDatasetError {
	return &EmptyDatasetError{Dataset: dataset, Reason: reason}
}

// NoJoinableDataError reports that joining the datasets produced no rows.
type NoJoinableDataError struct {
	UsageCountries    int
	BoundaryCountries int
}

// Error implements the error interface
func (e *NoJoinableDataError) Error() string {
	return fmt.Sprintf("no identifier overlap between %d usage countries and %d boundary territories",
		e.UsageCountries, e.BoundaryCountries)
}

// Is implements errors.Is support
func (e *NoJoinableDataError) Is(target error) bool {
	return target == ErrNoJoinableData
}

// NewNoJoinableDataError creates a new NoJoinableDataError
func NewNoJoinableDataError(usageCountries, boundaryCountries int) *NoJoinableDataError {
	return &NoJoinableDataError{
		UsageCountries:    usageCountries,
		BoundaryCountries: boundaryCountries,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "csv", "geojson", "yaml"
	File    string
	Line    int
	Column  int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s parse error at line %d: %s", e.Format, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation or parse error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsMalformedInput checks if an error is a malformed input error
func IsMalformedInput(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}

// IsEmptyDataset checks if an error is an empty dataset error
func IsEmptyDataset(err error) bool {
	return errors.Is(err, ErrEmptyDataset)
}

// IsNoJoinableData checks if an error is a no joinable data error
func IsNoJoinableData(err error) bool {
	return errors.Is(err, ErrNoJoinableData)
}

// IsDataError reports whether err is one of the reconciliation failures
// that stem from the input data rather than the environment.
func IsDataError(err error) bool {
	return IsMalformedInput(err) || IsEmptyDataset(err) || IsNoJoinableData(err)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
