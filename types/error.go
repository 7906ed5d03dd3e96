package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unified error code across the loaders.
type ErrorCode string

// Path error codes
const (
	ErrNotFound    ErrorCode = "NOT_FOUND"
	ErrInvalidPath ErrorCode = "INVALID_PATH"
	ErrIO          ErrorCode = "IO_ERROR"
)

// Content error codes
const (
	ErrParse           ErrorCode = "PARSE_ERROR"
	ErrSchemaViolation ErrorCode = "SCHEMA_VIOLATION"
	ErrSchemaMismatch  ErrorCode = "SCHEMA_MISMATCH"
	ErrUnsupported     ErrorCode = "UNSUPPORTED"
)

// Error represents a structured error with code, message, and source location.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Path    string    `json:"path,omitempty"`
	// Line is the 1-based line (or row) inside Path, 0 when unknown.
	Line  int   `json:"line,omitempty"`
	Cause error `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	loc := ""
	switch {
	case e.Path != "" && e.Line > 0:
		loc = fmt.Sprintf(" (%s:%d)", e.Path, e.Line)
	case e.Path != "":
		loc = fmt.Sprintf(" (%s)", e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s%s: %v", e.Code, e.Message, loc, e.Cause)
	}
	return fmt.Sprintf("[%s] %s%s", e.Code, e.Message, loc)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithPath sets the source path.
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

// WithLine sets the 1-based line or row number.
func (e *Error) WithLine(line int) *Error {
	e.Line = line
	return e
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) ErrorCode {
	if e, ok := AsError(err); ok {
		return e.Code
	}
	return ""
}

// IsErrorCode reports whether err carries the given code anywhere in its chain.
func IsErrorCode(err error, code ErrorCode) bool {
	return GetErrorCode(err) == code
}

// NewNotFoundError reports a path that does not exist.
func NewNotFoundError(path string, cause error) *Error {
	return NewError(ErrNotFound, "path not found").WithPath(path).WithCause(cause)
}

// NewInvalidPathError reports a path of the wrong kind (file vs directory).
func NewInvalidPathError(path, message string) *Error {
	return NewError(ErrInvalidPath, message).WithPath(path)
}

// NewParseError reports content that is malformed for the declared format.
func NewParseError(path string, cause error) *Error {
	return NewError(ErrParse, "malformed content").WithPath(path).WithCause(cause)
}

// NewSchemaViolation reports a well-formed record rejected by its schema.
// Causes that are already schema violations are returned unchanged apart from
// the location.
func NewSchemaViolation(path string, cause error) *Error {
	if e, ok := AsError(cause); ok && e.Code == ErrSchemaViolation {
		out := *e
		if out.Path == "" {
			out.Path = path
		}
		return &out
	}
	return NewError(ErrSchemaViolation, "record failed validation").WithPath(path).WithCause(cause)
}
