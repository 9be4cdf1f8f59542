package fiber

import "context"

// RenderInfo describes the fiber render a middleware wraps.
type RenderInfo struct {
	Fiber     ID
	Parent    ID
	Component string
	Key       string
	Mounted   bool // The fiber rendered before
	Depth     int
}

// Middleware wraps fiber renders. Implementations must call next to
// render the component; returning without calling it skips the render and
// keeps the fiber's previous output.
type Middleware interface {
	Handle(ctx context.Context, info RenderInfo, next func(context.Context) error) error
}

// MiddlewareFunc adapts a function to Middleware.
type MiddlewareFunc func(ctx context.Context, info RenderInfo, next func(context.Context) error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(ctx context.Context, info RenderInfo, next func(context.Context) error) error {
	return f(ctx, info, next)
}

// compose builds a handler chain with the first middleware outermost.
func compose(mw []Middleware, info RenderInfo, handler func(context.Context) error) func(context.Context) error {
	chain := handler
	for i := len(mw) - 1; i >= 0; i-- {
		m := mw[i]
		next := chain
		chain = func(ctx context.Context) error {
			return m.Handle(ctx, info, next)
		}
	}
	return chain
}
