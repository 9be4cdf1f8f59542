package fiber

import "github.com/vango-dev/reconciler/pkg/vdom"

// Fiber is the runtime instance of a component at one tree position.
// Fibers are owned by their Root and addressed by ID; a *Fiber must not be
// retained across render passes.
type Fiber struct {
	id       ID
	parent   ID
	depth    int
	children []ID

	comp   renderer
	key    string
	props  any
	passed []*vdom.Node

	mounted bool
	dirty   bool
	node    *vdom.Node
	err     error
	renders uint64

	hooks    []hookInstance
	nextHook int
}

// ID returns the fiber's handle.
func (f *Fiber) ID() ID { return f.id }

// Parent returns the parent fiber's handle, zero for the root fiber.
func (f *Fiber) Parent() ID { return f.parent }

// Depth returns the distance from the root fiber.
func (f *Fiber) Depth() int { return f.depth }

// Children returns the handles of child fibers in render order.
func (f *Fiber) Children() []ID {
	out := make([]ID, len(f.children))
	copy(out, f.children)
	return out
}

// ComponentName returns the name of the fiber's component.
func (f *Fiber) ComponentName() string {
	if f.comp == nil {
		return ""
	}
	return f.comp.ComponentName()
}

// Key returns the fiber's reconciliation key.
func (f *Fiber) Key() string { return f.key }

// Props returns the props of the last render request.
func (f *Fiber) Props() any { return f.props }

// Mounted reports whether the fiber has completed a render.
func (f *Fiber) Mounted() bool { return f.mounted }

// Dirty reports whether the fiber is waiting to be re-rendered.
func (f *Fiber) Dirty() bool { return f.dirty }

// Node returns the fiber's last committed output.
func (f *Fiber) Node() *vdom.Node { return f.node }

// Err returns the error of the fiber's last render, if any.
func (f *Fiber) Err() error { return f.err }

// Renders returns the number of times the fiber was rendered.
func (f *Fiber) Renders() uint64 { return f.renders }

// HookCount returns the number of recorded hook instances.
func (f *Fiber) HookCount() int { return len(f.hooks) }

// HookKinds returns the kinds of the recorded hooks in order.
func (f *Fiber) HookKinds() []HookKind {
	out := make([]HookKind, len(f.hooks))
	for i, h := range f.hooks {
		out[i] = h.kind
	}
	return out
}
