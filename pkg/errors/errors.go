package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"
	ErrNotFound ErrorCode = "NOT_FOUND"

	// Target specification errors
	ErrInvalidSpecification ErrorCode = "INVALID_SPECIFICATION"
	ErrInvalidTargetVersion ErrorCode = "INVALID_TARGET_VERSION"
	ErrParse                ErrorCode = "PARSE"

	// Include/exclude errors
	ErrUnknownIdentifier       ErrorCode = "UNKNOWN_IDENTIFIER"
	ErrDuplicateIncludeExclude ErrorCode = "DUPLICATE_INCLUDE_EXCLUDE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Catalog errors
	ErrCatalogInvalid ErrorCode = "CATALOG_INVALID"
)

// Error is a coded error. Details carry the offending values (target, value,
// identifiers, path) for renderers and callers.
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is matches any *Error with the same code, so errors.Is(err, New(code, ""))
// tests the code.
func (e *Error) Is(target error) bool {
	var t *Error
	return errors.As(target, &t) && t.Code == e.Code
}

func build(code ErrorCode, message string, wrapped error) *Error {
	return &Error{Code: code, Message: message, Details: map[string]interface{}{}, Wrapped: wrapped}
}

// New creates an Error.
func New(code ErrorCode, message string) *Error {
	return build(code, message, nil)
}

// Newf creates an Error with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return build(code, fmt.Sprintf(format, args...), nil)
}

// Wrap attaches a code and message to err. A nil err stays nil.
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return build(code, message, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return build(code, fmt.Sprintf(format, args...), err)
}

// WithDetail sets one detail and returns e for chaining.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	return e.WithDetails(map[string]interface{}{key: value})
}

// WithDetails merges details into e.
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{}, len(details))
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// InvalidTarget builds the error raised when a target value cannot be put into
// comparable form. The offending environment and raw value travel as details.
func InvalidTarget(target string, value interface{}, reason string) *Error {
	return Newf(ErrInvalidTargetVersion, "invalid version %v for target %q: %s", value, target, reason).
		WithDetail("target", target).
		WithDetail("value", value)
}

// ListError builds an error naming every offending identifier at once.
func ListError(code ErrorCode, message string, identifiers []string) *Error {
	ids := append([]string(nil), identifiers...)
	sort.Strings(ids)
	return Newf(code, "%s: %s", message, strings.Join(ids, ", ")).
		WithDetail("identifiers", ids)
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// IsErrorCode reports whether err, or an error it wraps, has code.
func IsErrorCode(err error, code ErrorCode) bool {
	e, ok := asError(err)
	return ok && e.Code == code
}

// GetErrorCode returns the code of err, or ErrUnknown for uncoded errors.
func GetErrorCode(err error) ErrorCode {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details of err, or nil for uncoded errors.
func GetErrorDetails(err error) map[string]interface{} {
	if e, ok := asError(err); ok {
		return e.Details
	}
	return nil
}
