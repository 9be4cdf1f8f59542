package middleware

import (
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/reconciler/pkg/fiber"
	"github.com/vango-dev/reconciler/pkg/vdom"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	label = fiber.Component("Label", func(c *fiber.Ctx, text string) *vdom.Node {
		return vdom.Span(text)
	})

	broken = fiber.Component("Broken", func(c *fiber.Ctx, _ struct{}) *vdom.Node {
		panic("broken component")
	})
)

// newRoot returns a root using mw and mounts a div with two labels.
func newRoot(t *testing.T, mw ...fiber.Middleware) *fiber.Root {
	t.Helper()
	r := fiber.NewRoot(fiber.Discard,
		fiber.WithLogger(quietLogger()),
		fiber.WithMiddleware(mw...),
	)
	if err := r.Mount(vdom.Div(label.El("a"), label.El("b"))); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return r
}
