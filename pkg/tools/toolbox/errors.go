package toolbox

import (
	"context"
	"errors"
	"fmt"
)

// Category is the caller-visible classification of a failed tool call.
type Category string

const (
	CategoryInvalidRequest Category = "invalid-request"
	CategoryNotFound       Category = "not-found"
	CategoryInternal       Category = "internal-error"
)

// Code returns the JSON-RPC error code conventionally paired with c.
func (c Category) Code() int64 {
	switch c {
	case CategoryInvalidRequest:
		return -32600
	case CategoryNotFound:
		return -32002
	default:
		return -32603
	}
}

// Error is a tool failure carrying its category. Handlers return it to
// control how a failure is reported; any other error is reported as
// CategoryInternal.
type Error struct {
	Category Category
	Message  string
	Err      error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an *Error in the given category. The format follows
// fmt.Errorf, so a %w verb keeps the wrapped error reachable.
func Errorf(c Category, format string, args ...any) *Error {
	err := fmt.Errorf(format, args...)

	return &Error{
		Category: c,
		Message:  err.Error(),
		Err:      errors.Unwrap(err),
	}
}

// InvalidRequest reports bad caller input, a rejected credential, a rate
// limit, or an unreachable upstream.
func InvalidRequest(format string, args ...any) *Error {
	return Errorf(CategoryInvalidRequest, format, args...)
}

// NotFound reports an empty or missing result.
func NotFound(format string, args ...any) *Error {
	return Errorf(CategoryNotFound, format, args...)
}

// Internal reports an unexpected upstream status, a parse failure, or a
// fault inside a handler.
func Internal(format string, args ...any) *Error {
	return Errorf(CategoryInternal, format, args...)
}

// CategoryOf classifies err. It returns the empty Category for a nil error.
func CategoryOf(err error) Category {
	if err == nil {
		return ""
	}

	var te *Error
	if errors.As(err, &te) {
		return te.Category
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return CategoryInvalidRequest
	}

	return CategoryInternal
}
