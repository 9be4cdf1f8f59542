package fiber

import (
	"errors"
	"fmt"
)

// Hook errors. They are recorded on the fiber whose render violated the
// hook rules, wrapped in a *HookError.
var (
	// ErrHookCreatedAfterMount is recorded when a mounted fiber calls more
	// hooks than it recorded on its first render.
	ErrHookCreatedAfterMount = errors.New("fiber: hook created after mount")

	// ErrHookTypeMismatch is recorded when a hook call's kind or value type
	// differs from the hook recorded at that position, or when a mounted
	// fiber calls fewer hooks than it recorded.
	ErrHookTypeMismatch = errors.New("fiber: hook type mismatch")
)

// Runtime errors.
var (
	// ErrUseAfterUnmount is returned when a state handle or fiber ID is used
	// after its fiber was destroyed.
	ErrUseAfterUnmount = errors.New("fiber: use after unmount")

	// ErrComponentPanic wraps a panic recovered from a component render.
	ErrComponentPanic = errors.New("fiber: component panicked")

	// ErrInvalidProps is recorded when a component receives props of the
	// wrong type.
	ErrInvalidProps = errors.New("fiber: invalid props type")

	// ErrBudgetExceeded is returned when a render pass hits its render
	// budget. The remaining dirty fibers stay queued.
	ErrBudgetExceeded = errors.New("fiber: render budget exceeded")

	ErrAlreadyMounted = errors.New("fiber: root already mounted")
	ErrNotMounted     = errors.New("fiber: root not mounted")

	// ErrDispatchQueueFull is returned by Dispatch when the buffer is full.
	ErrDispatchQueueFull = errors.New("fiber: dispatch queue full")

	// ErrRootClosed is returned by Dispatch and Do after Close.
	ErrRootClosed = errors.New("fiber: root closed")

	// ErrHookOutsideRender is the panic value raised when a hook is called
	// with a Ctx whose render has finished.
	ErrHookOutsideRender = errors.New("fiber: hook called outside render")
)

// HookError describes a hook rule violation on a fiber.
type HookError struct {
	Err       error // ErrHookCreatedAfterMount or ErrHookTypeMismatch
	Fiber     ID
	Component string
	Index     int      // Hook position, or -1 for a count mismatch
	Expected  HookKind // Recorded kind
	Got       HookKind // Requested kind
	Recorded  int      // Hooks recorded on mount
	Called    int      // Hooks called this render
	Detail    string
}

// Error implements the error interface.
func (e *HookError) Error() string {
	switch {
	case errors.Is(e.Err, ErrHookCreatedAfterMount):
		return fmt.Sprintf("%v: %s called %s hook at index %d, but %d hooks were recorded on mount",
			e.Err, e.Component, e.Got, e.Index, e.Recorded)
	case e.Index < 0:
		return fmt.Sprintf("%v: %s expected %d hooks, got %d", e.Err, e.Component, e.Recorded, e.Called)
	case e.Detail != "":
		return fmt.Sprintf("%v: %s hook %d: %s", e.Err, e.Component, e.Index, e.Detail)
	default:
		return fmt.Sprintf("%v: %s hook %d is %s, called as %s", e.Err, e.Component, e.Index, e.Expected, e.Got)
	}
}

// Unwrap returns the sentinel error.
func (e *HookError) Unwrap() error {
	return e.Err
}

// hookAbort is the panic value used to abandon a render after a hook error.
type hookAbort struct {
	err error
}
