package fiber

type stateSlot[T any] struct {
	value T
	root  *Root // nil once the fiber is destroyed
	fiber ID
}

func (s *stateSlot[T]) dispose(*Root) {
	s.root = nil
}

// State is a handle to a value owned by a fiber. Handles stay valid across
// renders; after the fiber is destroyed Set and Update fail with
// ErrUseAfterUnmount while Get keeps returning the last value.
type State[T any] struct {
	slot *stateSlot[T]
}

// UseState returns the fiber's state at the current hook position,
// initialized to initial on the first render. initial is ignored on later
// renders.
func UseState[T any](c *Ctx, initial T) State[T] {
	s := useSlot(c, HookState, func() *stateSlot[T] {
		return &stateSlot[T]{value: initial, root: c.root, fiber: c.fiber.id}
	})
	return State[T]{slot: s}
}

// Get returns the current value.
func (s State[T]) Get() T {
	if s.slot == nil {
		var zero T
		return zero
	}
	return s.slot.value
}

// Set writes v and schedules the owning fiber. If no render pass is
// running and no batch is open, the pass runs before Set returns and its
// error is returned.
func (s State[T]) Set(v T) error {
	sl := s.slot
	if sl == nil || sl.root == nil || sl.root.arena.get(sl.fiber) == nil {
		return ErrUseAfterUnmount
	}
	sl.value = v
	return sl.root.Schedule(sl.fiber)
}

// Update sets the value to fn applied to the current value.
func (s State[T]) Update(fn func(T) T) error {
	return s.Set(fn(s.Get()))
}

// Fiber returns the handle of the owning fiber.
func (s State[T]) Fiber() ID {
	if s.slot == nil {
		return 0
	}
	return s.slot.fiber
}
