// Package errors provides custom error types for the bikescraper system.
// These errors enable programmatic error checking and make the difference
// between recoverable per-record failures and fatal run failures explicit.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the bikescraper system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrSchemaDrift indicates that a brand mapping references a field
	// outside the canonical specification vocabulary
	ErrSchemaDrift = errors.New("schema drift")

	// ErrStoreUnavailable indicates that the master dataset store cannot
	// be read or written
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrReadOnly indicates an attempt to modify a read-only resource
	ErrReadOnly = errors.New("read only")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
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
	Value   interface{}
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
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// RejectedRecordError represents a raw record dropped during normalization.
// It is recoverable: the record is counted and skipped, the run continues.
type RejectedRecordError struct {
	Brand   string
	Model   string
	Missing []string
	Message string
}

// Error implements the error interface
func (e *RejectedRecordError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("rejected %s record %q: missing identity fields %v", e.Brand, e.Model, e.Missing)
	}
	return fmt.Sprintf("rejected %s record %q: %s", e.Brand, e.Model, e.Message)
}

// Is implements errors.Is support
func (e *RejectedRecordError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewRejectedRecordError creates a new RejectedRecordError
func NewRejectedRecordError(brand, model string, missing []string) *RejectedRecordError {
	return &RejectedRecordError{Brand: brand, Model: model, Missing: missing}
}

// SchemaDriftError represents an unknown field in a brand mapping.
// It is fatal at configuration load, before any record is processed.
type SchemaDriftError struct {
	Brand string
	Field string
}

// Error implements the error interface
func (e *SchemaDriftError) Error() string {
	return fmt.Sprintf("brand %s maps to unknown specification field %q", e.Brand, e.Field)
}

// Is implements errors.Is support
func (e *SchemaDriftError) Is(target error) bool {
	return target == ErrSchemaDrift
}

// NewSchemaDriftError creates a new SchemaDriftError
func NewSchemaDriftError(brand, field string) *SchemaDriftError {
	return &SchemaDriftError{Brand: brand, Field: field}
}

// StoreError represents a failure to read or write the master dataset.
// It is fatal: the prior dataset on disk is left untouched.
type StoreError struct {
	Operation string // "load", "save", "lock"
	Backend   string // "files", "sqlite", "memory"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s store failed to %s %s: %v", e.Backend, e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("%s store failed to %s: %v", e.Backend, e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

// NewStoreError creates a new StoreError
func NewStoreError(operation, backend, path string, err error) *StoreError {
	return &StoreError{Operation: operation, Backend: backend, Path: path, Err: err}
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

// MergeError represents an error during lifecycle merge operations
type MergeError struct {
	Key     string
	Message string
	Err     error
}

// Error implements the error interface
func (e *MergeError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("merge error for entry %s: %s", e.Key, e.Message)
	}
	return fmt.Sprintf("merge error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *MergeError) Unwrap() error {
	return e.Err
}

// NewMergeError creates a new MergeError
func NewMergeError(key, message string, err error) *MergeError {
	return &MergeError{Key: key, Message: message, Err: err}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml", "csv", etc.
	File    string
	Line    int
	Column  int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d:%d: %s", e.Format, e.File, e.Line, e.Column, e.Message)
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
	Operation string // "read", "write", "create", "delete", "open", "close"
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

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsSchemaDrift checks if an error is a schema drift error
func IsSchemaDrift(err error) bool {
	return errors.Is(err, ErrSchemaDrift)
}

// IsStoreUnavailable checks if an error indicates store unavailability
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// IsRejectedRecord checks if an error is a recoverable record rejection
func IsRejectedRecord(err error) bool {
	var rejected *RejectedRecordError
	return errors.As(err, &rejected)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

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

// WrapStore wraps an error as a StoreError
func WrapStore(operation, backend, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewStoreError(operation, backend, path, err)
}
