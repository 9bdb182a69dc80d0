// Package errors provides centralized error definitions and error handling utilities
// for windrose. It defines domain-specific errors, semantic error types, error
// constructors with context wrapping, and error classification helpers.
//
// # Error Types
//
// Domain-specific errors represent failures from a specific subsystem:
//   - DatasetError: a dataset or cumulative sequence failed validation
//   - PaletteError: a palette file could not be loaded or is malformed
//   - RenderError: a chart could not be produced in the requested format
//
// Semantic errors represent common error conditions:
//   - NotFoundError: a named resource (palette, layer, direction) does not exist
//   - ValidationError: invalid input or configuration
//
// # Usage
//
//	err := errors.NewPaletteError("parsing palette", cause).WithPalette("warm")
//
//	if errors.Is(err, errors.ErrPaletteInvalid) { ... }
//
//	var paletteErr *errors.PaletteError
//	if errors.As(err, &paletteErr) { ... }
//
//	if errors.IsUserFacing(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions so callers only need this package.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Dataset-related sentinel errors
var (
	// ErrUnknownLayer indicates a height layer id that is not part of the layer set.
	ErrUnknownLayer = New("unknown height layer")
	// ErrUnknownDirection indicates a compass label that is not one of the 8 points.
	ErrUnknownDirection = New("unknown direction")
	// ErrUnknownSpeedBin indicates a speed bin label that is not one of the 9 bins.
	ErrUnknownSpeedBin = New("unknown speed bin")
	// ErrInvalidRange indicates a magnitude draw range with max <= min or min < 0.
	ErrInvalidRange = New("invalid magnitude range")
	// ErrCorruptSequence indicates a cumulative sequence that decreases or is negative.
	ErrCorruptSequence = New("cumulative sequence is not non-decreasing")
)

// Palette-related sentinel errors
var (
	// ErrPaletteNotFound indicates that a palette could not be found.
	ErrPaletteNotFound = New("palette not found")
	// ErrPaletteInvalid indicates that a palette definition is malformed.
	ErrPaletteInvalid = New("palette is invalid")
)

// Render-related sentinel errors
var (
	// ErrUnsupportedFormat indicates an export format that no back end handles.
	ErrUnsupportedFormat = New("unsupported output format")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrNotFound indicates a generic missing resource.
	ErrNotFound = New("not found")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// RoseError is the base interface for all windrose errors.
type RoseError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// format renders "<kind> [k=v, ...]: message: cause".
func (e *baseError) format(kind string, parts []string) string {
	prefix := kind
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", kind, strings.Join(parts, ", "))
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// DatasetError represents a dataset that could not be built or failed validation.
//
// Example:
//
//	err := errors.NewDatasetError("negative magnitude", errors.ErrInvalidInput).
//		WithDirection("NE").WithLayer("925mb")
//	fmt.Println(err) // "dataset error [direction=NE, layer=925mb]: negative magnitude: invalid input"
type DatasetError struct {
	baseError
	Direction string
	Layer     string
}

// NewDatasetError creates a new DatasetError.
func NewDatasetError(message string, cause error) *DatasetError {
	return &DatasetError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// WithDirection adds the compass direction to the error context.
func (e *DatasetError) WithDirection(dir string) *DatasetError {
	e.Direction = dir
	return e
}

// WithLayer adds the height layer id to the error context.
func (e *DatasetError) WithLayer(layer string) *DatasetError {
	e.Layer = layer
	return e
}

// Error returns the formatted error message.
func (e *DatasetError) Error() string {
	var parts []string
	if e.Direction != "" {
		parts = append(parts, fmt.Sprintf("direction=%s", e.Direction))
	}
	if e.Layer != "" {
		parts = append(parts, fmt.Sprintf("layer=%s", e.Layer))
	}
	return e.format("dataset error", parts)
}

// Is checks if this error matches the target.
func (e *DatasetError) Is(target error) bool {
	if _, ok := target.(*DatasetError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// PaletteError represents a palette that could not be loaded or validated.
type PaletteError struct {
	baseError
	Palette string
	Path    string
}

// NewPaletteError creates a new PaletteError.
func NewPaletteError(message string, cause error) *PaletteError {
	return &PaletteError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithPalette adds the palette name to the error context.
func (e *PaletteError) WithPalette(name string) *PaletteError {
	e.Palette = name
	return e
}

// WithPath adds the palette file path to the error context.
func (e *PaletteError) WithPath(path string) *PaletteError {
	e.Path = path
	return e
}

// Error returns the formatted error message.
func (e *PaletteError) Error() string {
	var parts []string
	if e.Palette != "" {
		parts = append(parts, fmt.Sprintf("palette=%s", e.Palette))
	}
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}
	return e.format("palette error", parts)
}

// Is checks if this error matches the target.
func (e *PaletteError) Is(target error) bool {
	if _, ok := target.(*PaletteError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// RenderError represents a chart that could not be produced.
type RenderError struct {
	baseError
	Format string
}

// NewRenderError creates a new RenderError.
func NewRenderError(message string, cause error) *RenderError {
	return &RenderError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: false,
		},
	}
}

// WithFormat adds the output format to the error context.
func (e *RenderError) WithFormat(format string) *RenderError {
	e.Format = format
	return e
}

// WithUserFacing marks the error as safe to show to users.
func (e *RenderError) WithUserFacing(u bool) *RenderError {
	e.userFacing = u
	return e
}

// Error returns the formatted error message.
func (e *RenderError) Error() string {
	var parts []string
	if e.Format != "" {
		parts = append(parts, fmt.Sprintf("format=%s", e.Format))
	}
	return e.format("render error", parts)
}

// Is checks if this error matches the target.
func (e *RenderError) Is(target error) bool {
	if _, ok := target.(*RenderError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a named resource that does not exist.
//
// Example:
//
//	err := errors.NewNotFoundError("palette", "warm")
//	fmt.Println(err) // "palette not found: warm"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s not found: %s", resourceType, resourceID),
			severity:   SeverityWarning,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	return e.baseError.Error()
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	if errors.Is(target, ErrNotFound) {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("max must exceed min").WithField("data.max_magnitude").WithValue(0)
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}
	return e.format("validation error", parts)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is safe to display to end users.
// Errors that don't implement RoseError are treated as internal.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var roseErr RoseError
	if As(err, &roseErr) {
		return roseErr.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement RoseError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var roseErr RoseError
	if As(err, &roseErr) {
		return roseErr.Severity()
	}
	return SeverityError
}

// Wrapf wraps an error with a formatted context message.
// Unlike fmt.Errorf with %w, a nil err stays nil.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
