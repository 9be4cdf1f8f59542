package fiber

import "fmt"

// HookKind identifies the kind of a hook instance.
type HookKind uint8

const (
	HookRef HookKind = iota + 1
	HookCallback
	HookMemo
	HookState
)

// String returns a human-readable name for the hook kind.
func (k HookKind) String() string {
	switch k {
	case HookRef:
		return "Ref"
	case HookCallback:
		return "Callback"
	case HookMemo:
		return "Memo"
	case HookState:
		return "State"
	default:
		return "Unknown"
	}
}

// hookInstance is one entry of a fiber's hook list.
type hookInstance struct {
	kind HookKind
	slot any // *Ref[T], *callbackSlot, *memoSlot[T] or *stateSlot[T]
}

// disposer is implemented by hook slots holding resources.
type disposer interface {
	dispose(r *Root)
}

// hook resolves the hook at the fiber's cursor. Past the end of the list a
// new instance is created with create, but only before mount. A kind
// mismatch or a creation after mount aborts the render.
func (c *Ctx) hook(kind HookKind, create func() any) any {
	if !c.active {
		panic(ErrHookOutsideRender)
	}
	f := c.fiber
	i := f.nextHook

	if i >= len(f.hooks) {
		if f.mounted {
			c.abort(&HookError{
				Err:       ErrHookCreatedAfterMount,
				Fiber:     f.id,
				Component: f.ComponentName(),
				Index:     i,
				Got:       kind,
				Recorded:  len(f.hooks),
			})
		}
		f.hooks = append(f.hooks, hookInstance{kind: kind, slot: create()})
		f.nextHook++
		return f.hooks[i].slot
	}

	h := f.hooks[i]
	if h.kind != kind {
		c.abort(&HookError{
			Err:       ErrHookTypeMismatch,
			Fiber:     f.id,
			Component: f.ComponentName(),
			Index:     i,
			Expected:  h.kind,
			Got:       kind,
		})
	}
	f.nextHook++
	return h.slot
}

// useSlot resolves a hook and asserts its slot type. The same kind with a
// different type parameter is a type mismatch.
func useSlot[S any](c *Ctx, kind HookKind, create func() S) S {
	v := c.hook(kind, func() any { return create() })
	s, ok := v.(S)
	if !ok {
		var want S
		c.abort(&HookError{
			Err:       ErrHookTypeMismatch,
			Fiber:     c.fiber.id,
			Component: c.fiber.ComponentName(),
			Index:     c.fiber.nextHook - 1,
			Expected:  kind,
			Got:       kind,
			Detail:    fmt.Sprintf("recorded %T, called with %T", v, want),
		})
	}
	return s
}

// checkHookCount validates the hook count after a mounted fiber's render.
func (c *Ctx) checkHookCount() error {
	f := c.fiber
	if f.mounted && f.nextHook < len(f.hooks) {
		return &HookError{
			Err:       ErrHookTypeMismatch,
			Fiber:     f.id,
			Component: f.ComponentName(),
			Index:     -1,
			Recorded:  len(f.hooks),
			Called:    f.nextHook,
		}
	}
	return nil
}

// disposeHooks releases hook resources in reverse creation order.
func (f *Fiber) disposeHooks(r *Root) {
	for i := len(f.hooks) - 1; i >= 0; i-- {
		if d, ok := f.hooks[i].slot.(disposer); ok {
			d.dispose(r)
		}
	}
	f.hooks = nil
	f.nextHook = 0
}
