package fiber

import (
	"context"
	"log/slog"

	"github.com/vango-dev/reconciler/pkg/vdom"
)

// Ctx is the render context passed to a component. It is valid only for
// the duration of one render; hooks called on a finished Ctx panic.
type Ctx struct {
	ctx    context.Context
	root   *Root
	fiber  *Fiber
	active bool
	logger *slog.Logger
}

// Context returns the context of the current render pass, as passed
// through the middleware chain.
func (c *Ctx) Context() context.Context {
	return c.ctx
}

// ID returns the handle of the fiber being rendered.
func (c *Ctx) ID() ID {
	return c.fiber.id
}

// Key returns the reconciliation key of the fiber being rendered.
func (c *Ctx) Key() string {
	return c.fiber.key
}

// Children returns the child nodes passed to the component by its parent.
func (c *Ctx) Children() []*vdom.Node {
	return c.fiber.passed
}

// Mounted reports whether the fiber completed a render before this one.
func (c *Ctx) Mounted() bool {
	return c.fiber.mounted
}

// Root returns the root the fiber belongs to.
func (c *Ctx) Root() *Root {
	return c.root
}

// Logger returns the root logger annotated with the fiber and component.
func (c *Ctx) Logger() *slog.Logger {
	if c.logger == nil {
		c.logger = c.root.logger.With("fiber", c.fiber.id.String(), "component", c.fiber.ComponentName())
	}
	return c.logger
}

// Invalidate schedules the fiber for another render.
func (c *Ctx) Invalidate() error {
	return c.root.Schedule(c.fiber.id)
}

func (c *Ctx) abort(err error) {
	panic(hookAbort{err: err})
}
