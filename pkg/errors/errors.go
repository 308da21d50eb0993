package errors

import (
	"errors"
	"fmt"
	"sort"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"

	// Argument errors
	ErrMissingArgument ErrorCode = "MISSING_ARGUMENT"
	ErrInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Runtime errors
	ErrFileSystem ErrorCode = "FILESYSTEM"
	ErrSubprocess ErrorCode = "SUBPROCESS"
)

// Detail keys attached by the constructors below
const (
	DetailArgument = "argument"
	DetailPath     = "path"
	DetailCommand  = "command"
	DetailExitCode = "exitCode"
)

// MacgenError represents a structured error with code and details
type MacgenError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *MacgenError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *MacgenError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *MacgenError) Is(target error) bool {
	var targetErr *MacgenError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new MacgenError with the given code and message
func New(code ErrorCode, message string) *MacgenError {
	return &MacgenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new MacgenError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *MacgenError {
	return &MacgenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a MacgenError
func Wrap(err error, code ErrorCode, message string) *MacgenError {
	if err == nil {
		return nil
	}
	return &MacgenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *MacgenError {
	if err == nil {
		return nil
	}
	return &MacgenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// MissingArgument reports an empty required parameter by name.
func MissingArgument(name string) *MacgenError {
	return Newf(ErrMissingArgument, "missing required argument: %s", name).
		WithDetail(DetailArgument, name)
}

// InvalidArgument reports a parameter whose value is not accepted.
func InvalidArgument(name string, value interface{}) *MacgenError {
	return Newf(ErrInvalidArgument, "invalid %s: %v", name, value).
		WithDetail(DetailArgument, name)
}

// FileSystem wraps an I/O failure on path. It returns nil when err is nil.
func FileSystem(err error, op, path string) *MacgenError {
	if err == nil {
		return nil
	}
	return Wrapf(err, ErrFileSystem, "%s %s", op, path).
		WithDetail(DetailPath, path)
}

// Subprocess reports a command that failed or exited non-zero.
func Subprocess(err error, command string, exitCode int) *MacgenError {
	e := Wrapf(err, ErrSubprocess, "command failed: %s", command)
	if e == nil {
		e = Newf(ErrSubprocess, "command failed: %s", command)
	}
	return e.WithDetail(DetailCommand, command).
		WithDetail(DetailExitCode, exitCode)
}

// WithDetail adds a detail to the error
func (e *MacgenError) WithDetail(key string, value interface{}) *MacgenError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *MacgenError) WithDetails(details map[string]interface{}) *MacgenError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var macgenErr *MacgenError
	if errors.As(err, &macgenErr) {
		return macgenErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a MacgenError
func GetErrorCode(err error) ErrorCode {
	var macgenErr *MacgenError
	if errors.As(err, &macgenErr) {
		return macgenErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a MacgenError
func GetErrorDetails(err error) map[string]interface{} {
	var macgenErr *MacgenError
	if errors.As(err, &macgenErr) {
		return macgenErr.Details
	}
	return nil
}

// DetailLines formats an error's details as sorted "key: value" lines
func DetailLines(err error) []string {
	details := GetErrorDetails(err)
	if len(details) == 0 {
		return nil
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %v", k, details[k]))
	}
	return lines
}
