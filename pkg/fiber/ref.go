package fiber

// Ref holds a mutable value that persists across renders. Writing a ref
// does not schedule a render.
type Ref[T any] struct {
	value T
}

// UseRef returns the fiber's ref at the current hook position. The ref is
// zero-initialized on the first render and returned unchanged afterwards.
func UseRef[T any](c *Ctx) *Ref[T] {
	return useSlot(c, HookRef, func() *Ref[T] { return new(Ref[T]) })
}

// Current returns the current value of the ref.
func (r *Ref[T]) Current() T {
	return r.value
}

// Set replaces the ref's value.
func (r *Ref[T]) Set(value T) {
	r.value = value
}
