package fiber

import "github.com/vango-dev/reconciler/pkg/deps"

type callbackSlot struct {
	fn      func([]byte)
	deps    deps.Retained
	version uint64
}

func (s *callbackSlot) dispose(*Root) {
	s.fn = nil
	s.deps.Reset()
}

// Callback is a stable handle to a function stored by UseCallback.
// Callbacks implement vdom.Invoker, so they can be used directly as event
// handlers.
type Callback struct {
	slot    *callbackSlot
	version uint64
}

// UseCallback stores fn at the current hook position. fn replaces the
// stored function only when deps differ from the previous render's deps;
// otherwise the previously stored function is kept and the returned
// Callback is the same as last render's.
func UseCallback(c *Ctx, fn func([]byte), d []byte) Callback {
	s := useSlot(c, HookCallback, func() *callbackSlot { return new(callbackSlot) })
	if s.deps.Update(d) {
		s.fn = fn
		s.version++
	}
	return Callback{slot: s, version: s.version}
}

// Invoke calls the stored function with the stored deps. It does nothing
// for a zero Callback or after the owning fiber was destroyed.
func (cb Callback) Invoke() {
	if cb.slot == nil || cb.slot.fn == nil {
		return
	}
	cb.slot.fn(cb.slot.deps.Bytes())
}

// Same reports whether cb and other refer to the same stored function.
func (cb Callback) Same(other Callback) bool {
	return cb.slot == other.slot && cb.version == other.version
}

// Version returns how many times the stored function has been replaced.
func (cb Callback) Version() uint64 {
	return cb.version
}
