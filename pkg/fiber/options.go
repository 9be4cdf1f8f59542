package fiber

import (
	"context"
	"log/slog"
)

// DefaultMaxRendersPerPass bounds the fiber renders of one pass.
const DefaultMaxRendersPerPass = 10_000

// DefaultDispatchBuffer is the capacity of the dispatch queue.
const DefaultDispatchBuffer = 256

// Option configures a Root.
type Option func(*Root)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Root) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMiddleware appends render middleware. The first middleware is the
// outermost.
func WithMiddleware(mw ...Middleware) Option {
	return func(r *Root) {
		r.middleware = append(r.middleware, mw...)
	}
}

// WithMaxRendersPerPass sets the render budget of one pass. Zero or a
// negative value disables the budget.
func WithMaxRendersPerPass(n int) Option {
	return func(r *Root) {
		r.maxRenders = n
	}
}

// WithDispatchBuffer sets the capacity of the dispatch queue.
func WithDispatchBuffer(n int) Option {
	return func(r *Root) {
		if n > 0 {
			r.dispatchSize = n
		}
	}
}

// WithContext sets the context used for passes started by Schedule and
// state writes.
func WithContext(ctx context.Context) Option {
	return func(r *Root) {
		if ctx != nil {
			r.ctx = ctx
		}
	}
}
