package fiber

import (
	"fmt"

	"github.com/vango-dev/reconciler/pkg/vdom"
)

// renderer is implemented by components the runtime can render into
// fibers.
type renderer interface {
	vdom.Component
	render(c *Ctx, props any) (*vdom.Node, error)
	// propsEqual reports whether re-rendering with next can be skipped.
	propsEqual(prev, next any) bool
}

// Func is a function component with props of type P. Func values are
// compared by pointer: two Funcs are the same component only if they are
// the same value.
type Func[P any] struct {
	name  string
	fn    func(*Ctx, P) *vdom.Node
	equal func(a, b P) bool
}

// Component wraps fn as a named function component.
func Component[P any](name string, fn func(*Ctx, P) *vdom.Node) *Func[P] {
	return &Func[P]{name: name, fn: fn}
}

// Memo wraps fn as a function component that skips re-rendering when its
// parent re-renders with equal props and the fiber has no pending update.
func Memo[P comparable](name string, fn func(*Ctx, P) *vdom.Node) *Func[P] {
	return &Func[P]{name: name, fn: fn, equal: func(a, b P) bool { return a == b }}
}

// ComponentName implements vdom.Component.
func (f *Func[P]) ComponentName() string {
	return f.name
}

// El returns a placeholder node rendering f with props and children.
func (f *Func[P]) El(props P, children ...*vdom.Node) *vdom.Node {
	return vdom.Build(f, props, children...)
}

func (f *Func[P]) render(c *Ctx, props any) (*vdom.Node, error) {
	p, err := f.props(props)
	if err != nil {
		return nil, err
	}
	return f.fn(c, p), nil
}

func (f *Func[P]) props(v any) (P, error) {
	if v == nil {
		var zero P
		return zero, nil
	}
	p, ok := v.(P)
	if !ok {
		return p, fmt.Errorf("%w: %s wants %T, got %T", ErrInvalidProps, f.name, p, v)
	}
	return p, nil
}

func (f *Func[P]) propsEqual(prev, next any) bool {
	if f.equal == nil {
		return false
	}
	a, errA := f.props(prev)
	b, errB := f.props(next)
	return errA == nil && errB == nil && f.equal(a, b)
}

// rootComponent renders the node handed to Root.Mount.
var rootComponent = Component("Root", func(_ *Ctx, n *vdom.Node) *vdom.Node { return n })
