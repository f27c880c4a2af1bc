// Package rqcerrors provides structured error types for rqc.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - ParseError: DSL syntax failures (unexpected tokens) and document read failures
//   - ImportError: import statements that could not be resolved
//   - FetchError: remote OpenAPI fetch failures (transport errors, non-success status)
//   - ConfigError: invalid configuration or input options
//
// # Usage with errors.As
//
//	doc, _, err := resolver.New().Resolve("api.rqc", ".")
//	if err != nil {
//	    var parseErr *rqcerrors.ParseError
//	    if errors.As(err, &parseErr) {
//	        fmt.Printf("syntax error at line %d\n", parseErr.Line)
//	    }
//	}
package rqcerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrImport indicates an import resolution failure.
	ErrImport = errors.New("import error")

	// ErrFetch indicates a remote document fetch failure.
	ErrFetch = errors.New("fetch error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to parse a .rqc document.
// This covers unexpected-token syntax errors and file read failures.
type ParseError struct {
	// Path is the file path or source identifier ("" for in-memory input)
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Expected is the token type the parser required, if any
	Expected string
	// Got is the token type actually encountered, if any
	Got string
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	if e.Expected != "" {
		msg += fmt.Sprintf(": expected %s, got %s", e.Expected, e.Got)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ImportError represents a failure to resolve an import statement.
// Imports are resolved tolerantly: the resolver records these errors per
// import and continues, so an ImportError is usually observed on a
// resolver.Outcome rather than returned from Resolve.
type ImportError struct {
	// Path is the import path as written in the document
	Path string
	// Reason categorizes the failure: "not-found", "unsupported-extension",
	// "parse", or "fetch"
	Reason string
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ImportError) Error() string {
	msg := "import error"
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ImportError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ImportError) Is(target error) bool {
	return target == ErrImport
}

// FetchError represents a failure to fetch a remote OpenAPI document.
type FetchError struct {
	// URL is the URL that failed to fetch
	URL string
	// StatusCode is the HTTP status code received (0 for transport errors)
	StatusCode int
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *FetchError) Error() string {
	msg := "fetch error"
	if e.URL != "" {
		msg += ": " + e.URL
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
