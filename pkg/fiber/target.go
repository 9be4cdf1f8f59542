package fiber

import (
	"context"

	"github.com/vango-dev/reconciler/pkg/vdom"
)

// Commit is a finished render of one fiber.
type Commit struct {
	Seq       uint64 // Monotonic per root
	Fiber     ID
	Parent    ID
	Component string
	Key       string
	// Node is the fiber's output. Component placeholders carry the handle
	// of the child fiber rendering them in Node.Fiber.
	Node *vdom.Node
}

// Target receives committed output. The root opens its target lazily,
// once, before the first commit.
type Target interface {
	Open(ctx context.Context) error
	Commit(ctx context.Context, c Commit) error
}

// Unmounter is implemented by targets that want to know when a fiber is
// destroyed.
type Unmounter interface {
	Unmount(ctx context.Context, id ID) error
}

// Discard is a Target that drops all commits.
var Discard Target = discard{}

type discard struct{}

func (discard) Open(context.Context) error           { return nil }
func (discard) Commit(context.Context, Commit) error { return nil }
