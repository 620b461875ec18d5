// Package forgeerrors provides structured error types for oasforge.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - ValidationError: unusable input, failed shape checks, unreadable local files
//   - ContentParsingError: text that is neither valid JSON nor valid YAML
//   - NetworkError: transport failures fetching a URL locator
//   - RecursionLimitError: reference resolution exceeded its depth budget
//
// # Usage with errors.Is
//
//	res, err := p.Parse("api.yaml")
//	if err != nil {
//	    var parseErr *forgeerrors.ContentParsingError
//	    if errors.As(err, &parseErr) {
//	        fmt.Println("attempted formats:", parseErr.Formats)
//	    }
//	}
package forgeerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrValidation indicates input failed a structural or shape check.
	ErrValidation = errors.New("validation error")

	// ErrContentParsing indicates content could not be decoded in any supported format.
	ErrContentParsing = errors.New("content parsing error")

	// ErrNetwork indicates a URL fetch failed at the transport layer.
	ErrNetwork = errors.New("network error")

	// ErrRecursionLimit indicates reference resolution exceeded its depth limit.
	ErrRecursionLimit = errors.New("recursion limit exceeded")
)

// ValidationError represents input that fails a check diagnosable without
// any further I/O: a non-document input, a document missing every structural
// marker field, or a local file that cannot be read.
type ValidationError struct {
	// Op is the operation that rejected the input (e.g., "load", "normalize")
	Op string
	// Message describes the validation failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.Op != "" {
		msg += " in " + e.Op
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
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ContentParsingError represents text that could not be decoded as any
// supported document format. Formats lists every format that was attempted,
// in the order the attempts were made.
type ContentParsingError struct {
	// Op is the operation that attempted the decode
	Op string
	// Formats lists the formats attempted (e.g., "JSON", "YAML")
	Formats []string
	// Message describes the failure
	Message string
	// Cause is the last decode error encountered, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ContentParsingError) Error() string {
	msg := "content parsing error"
	if e.Op != "" {
		msg += " in " + e.Op
	}
	if len(e.Formats) > 0 {
		msg += fmt.Sprintf(" (attempted formats: %s)", strings.Join(e.Formats, ", "))
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
func (e *ContentParsingError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ContentParsingError) Is(target error) bool {
	return target == ErrContentParsing
}

// NetworkError represents a transport-level failure fetching a URL locator.
// It is terminal: the pipeline never retries, the retry policy burden is
// pushed to the caller.
type NetworkError struct {
	// Locator is the URL that failed to fetch
	Locator string
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying transport error
	Cause error
}

// Error returns a human-readable error message.
func (e *NetworkError) Error() string {
	msg := "network error"
	if e.Locator != "" {
		msg += " fetching " + e.Locator
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
func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// RecursionLimitError represents reference resolution exceeding its depth
// budget, which is how a pointer cycle surfaces instead of a stack overflow.
type RecursionLimitError struct {
	// Limit is the configured maximum resolution depth
	Limit int
	// Pointer is the $ref pointer being resolved when the limit was hit
	Pointer string
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *RecursionLimitError) Error() string {
	msg := "recursion limit exceeded"
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d)", e.Limit)
	}
	if e.Pointer != "" {
		msg += " at " + e.Pointer
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as RecursionLimitError has no underlying cause.
func (e *RecursionLimitError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *RecursionLimitError) Is(target error) bool {
	return target == ErrRecursionLimit
}
