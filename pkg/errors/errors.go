// Package errors provides structured error handling for tabula.
//
// Every failure raised while decoding delimited text or looking up typed
// columns carries an ErrorType plus key-value details (row, column, raw
// value, expected/actual counts) so that a caller can diagnose a rejected
// dataset without re-running the parse.
package errors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeSchemaMismatch is raised when header names and type tokens disagree in length
	ErrorTypeSchemaMismatch ErrorType = "schema_mismatch"
	// ErrorTypeRowShape is raised when a data row has the wrong number of cells
	ErrorTypeRowShape ErrorType = "row_shape_mismatch"
	// ErrorTypeValueParse is raised when a cell cannot be coerced to its column's native type
	ErrorTypeValueParse ErrorType = "value_parse"
	// ErrorTypeTypeMismatch is raised when a column id's type does not match the stored column
	ErrorTypeTypeMismatch ErrorType = "type_mismatch"
	// ErrorTypeNotFound is raised when no column matches a (name, type) pair
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeRowCount is raised when a data frame is built from columns of unequal length
	ErrorTypeRowCount ErrorType = "row_count_mismatch"
	// ErrorTypeIndexOutOfRange is raised for row or column positions outside the valid range
	ErrorTypeIndexOutOfRange ErrorType = "index_out_of_range"

	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeFile represents file operation errors
	ErrorTypeFile ErrorType = "file"
	// ErrorTypeData represents errors raised by the underlying row source
	ErrorTypeData ErrorType = "data"
	// ErrorTypeValidation represents validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeInternal represents internal system errors
	ErrorTypeInternal ErrorType = "internal"
)

// Common detail keys.
const (
	DetailRow         = "row"
	DetailColumn      = "column"
	DetailColumnIndex = "column_index"
	DetailValue       = "value"
	DetailExpected    = "expected"
	DetailActual      = "actual"
)

// Error represents a structured error with context
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame represents a single frame in the call stack
type StackFrame struct {
	Function string
	File     string
	Line     int
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a key-value detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Detail returns the detail stored under key.
func (e *Error) Detail(key string) (interface{}, bool) {
	v, ok := e.Details[key]
	return v, ok
}

// New creates a new error with the given type and message
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Newf creates a new error with a formatted message
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(2),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	// If already our error type, preserve the stack
	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Type:    errType,
			Message: message,
			Cause:   err,
			Stack:   existingErr.Stack,
		}
	}

	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Stack:   captureStack(2),
	}
}

// IsType checks if the outermost structured error in the chain has the given type
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

// TypeOf returns the type of the outermost structured error, or ErrorTypeInternal
// when err carries none.
func TypeOf(err error) ErrorType {
	var e *Error
	if !errors.As(err, &e) {
		return ErrorTypeInternal
	}
	return e.Type
}

// DetailOf returns a detail from the outermost structured error in the chain.
func DetailOf(err error, key string) (interface{}, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return nil, false
	}
	return e.Detail(key)
}

// captureStack captures the current call stack
func captureStack(skip int) []StackFrame {
	const maxFrames = 32
	frames := make([]StackFrame, 0, maxFrames)

	for i := skip; i < maxFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		frames = append(frames, StackFrame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}

	return frames
}
