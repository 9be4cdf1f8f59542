package fiber

import (
	"context"
	"fmt"
	"runtime/debug"
)

// Run executes dispatched functions on the calling goroutine until ctx is
// done or the root is closed. The goroutine running Run owns the root.
func (r *Root) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.done:
			return nil
		case fn := <-r.dispatchCh:
			r.safeRun(fn)
		}
	}
}

// Dispatch queues fn to run on the goroutine executing Run. It is safe to
// call from any goroutine and never blocks.
func (r *Root) Dispatch(fn func()) error {
	if r.closed.Load() {
		return ErrRootClosed
	}
	select {
	case r.dispatchCh <- fn:
		return nil
	default:
		r.logger.Warn("dispatch queue full, dropping work",
			"capacity", cap(r.dispatchCh))
		return ErrDispatchQueueFull
	}
}

// Do dispatches fn and waits for its result.
func (r *Root) Do(ctx context.Context, fn func() error) error {
	errCh := make(chan error, 1)
	err := r.Dispatch(func() {
		defer func() {
			if rec := recover(); rec != nil {
				errCh <- fmt.Errorf("fiber: dispatched function panicked: %v", rec)
				panic(rec)
			}
		}()
		errCh <- fn()
	})
	if err != nil {
		return err
	}
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-r.done:
		select {
		case err := <-errCh:
			return err
		default:
			return ErrRootClosed
		}
	}
}

// safeRun runs fn with panic recovery so one failing function does not
// stop the executor.
func (r *Root) safeRun(fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("dispatch panic",
				"panic", rec,
				"stack", string(debug.Stack()))
		}
	}()
	fn()
}
