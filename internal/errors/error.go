package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/vango-dev/reconciler/pkg/fiber"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig  Category = "config"
	CategoryRuntime Category = "runtime"
	CategoryTarget  Category = "target"
	CategoryCLI     Category = "cli"
)

// Error is a structured error with a code, an explanation and a hint.
type Error struct {
	// Code is a unique error identifier (e.g., "R101").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is code showing the correct approach.
	Example string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// WithExample adds a code example to the error.
func (e *Error) WithExample(ex string) *Error {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// New creates an Error from a registered error code.
func New(code string) *Error {
	template, ok := registry[code]
	if !ok {
		return &Error{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &Error{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
	}
}

// Newf creates a new Error with a formatted message (no code).
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an Error. An *Error anywhere in the
// chain is returned as is.
func FromError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e
	}
	return New(code).Wrap(err)
}

// runtimeCodes maps fiber sentinels to codes, in match order.
var runtimeCodes = []struct {
	err  error
	code string
}{
	{fiber.ErrHookCreatedAfterMount, "R201"},
	{fiber.ErrHookTypeMismatch, "R202"},
	{fiber.ErrUseAfterUnmount, "R203"},
	{fiber.ErrComponentPanic, "R204"},
	{fiber.ErrBudgetExceeded, "R205"},
	{fiber.ErrInvalidProps, "R206"},
	{fiber.ErrHookOutsideRender, "R207"},
	{fiber.ErrRootClosed, "R208"},
	{fiber.ErrDispatchQueueFull, "R209"},
}

// FromRuntime wraps an error returned by a fiber.Root. The code is chosen
// from the first fiber sentinel the error matches; errors matching none
// get R200.
func FromRuntime(err error) *Error {
	if err == nil {
		return nil
	}
	for _, rc := range runtimeCodes {
		if stderrors.Is(err, rc.err) {
			return New(rc.code).Wrap(err)
		}
	}
	return New("R200").Wrap(err)
}
