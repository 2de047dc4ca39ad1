package pak

import (
	"errors"
	"fmt"
)

// Error is a pak error with a structured error code.
//
// Two errors are considered equal by errors.Is when their codes match, so
// callers compare against the exported sentinels below.
type Error struct {
	Code    string // Error code (e.g., "PAK-KEY-4000")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a new Error with the given code and message.
func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *Error) WithDetails(details string) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *Error) WithCause(cause error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsError checks if an error is a pak error with the given code.
// If code is empty, it only checks if the error is a pak error.
func IsError(err error, code string) bool {
	var pe *Error
	if errors.As(err, &pe) {
		if code == "" {
			return true
		}
		return pe.Code == code
	}
	var me *MalformedKeyError
	if errors.As(err, &me) {
		return code == "" || code == ErrMalformedKey.Code
	}
	var fe *MissingFieldError
	if errors.As(err, &fe) {
		return code == "" || code == ErrIncompleteConfig.Code
	}
	return false
}

// ErrorCode extracts the error code from an error if it's a pak error.
func ErrorCode(err error) string {
	var me *MalformedKeyError
	if errors.As(err, &me) {
		return ErrMalformedKey.Code
	}
	var fe *MissingFieldError
	if errors.As(err, &fe) {
		return ErrIncompleteConfig.Code
	}
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

var (
	// ErrMalformedKey indicates key text did not split into exactly three parts.
	ErrMalformedKey = NewError("PAK-KEY-4000", "malformed key text")

	// ErrIncompleteConfig indicates a required generator setting was not provided.
	ErrIncompleteConfig = NewError("PAK-CFG-4001", "incomplete configuration")

	// ErrInvalidConfig indicates a generator setting has an unusable value.
	ErrInvalidConfig = NewError("PAK-CFG-4002", "invalid configuration")

	// ErrUnknownDigest indicates a digest name with no registered constructor.
	ErrUnknownDigest = NewError("PAK-CFG-4040", "unknown digest")

	// ErrUnknownRandomSource indicates a random source name with no registered constructor.
	ErrUnknownRandomSource = NewError("PAK-CFG-4041", "unknown random source")

	// ErrRandomnessUnavailable indicates the random source failed to fill a buffer.
	ErrRandomnessUnavailable = NewError("PAK-RNG-5000", "randomness unavailable")
)

// MalformedKeyError is returned by ParseKey when the text does not split
// into exactly three '_'-delimited segments.
type MalformedKeyError struct {
	// Segments is the number of segments actually found.
	Segments int
}

func (e *MalformedKeyError) Error() string {
	return fmt.Sprintf("[%s] %s: expected 3 parts, got %d",
		ErrMalformedKey.Code, ErrMalformedKey.Message, e.Segments)
}

// Is reports whether target is ErrMalformedKey.
func (e *MalformedKeyError) Is(target error) bool {
	return target == ErrMalformedKey
}

// Field names a required generator setting.
type Field string

// Required fields, in the order Finalize checks them.
const (
	FieldPrefix           Field = "prefix"
	FieldRandomSource     Field = "random_source"
	FieldDigest           Field = "digest"
	FieldShortTokenLength Field = "short_token_length"
	FieldLongTokenLength  Field = "long_token_length"
)

// MissingFieldError is returned by Builder.Finalize for the first required
// setting that was never provided.
type MissingFieldError struct {
	Field Field
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("[%s] %s: expected %s to be set, but wasn't",
		ErrIncompleteConfig.Code, ErrIncompleteConfig.Message, e.Field)
}

// Is reports whether target is ErrIncompleteConfig.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrIncompleteConfig
}
