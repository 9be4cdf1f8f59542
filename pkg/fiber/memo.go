package fiber

import (
	"io"

	"github.com/vango-dev/reconciler/pkg/deps"
)

type memoSlot[T any] struct {
	deps     deps.Retained
	value    T
	computed bool
}

func (s *memoSlot[T]) dispose(r *Root) {
	if s.computed {
		r.closeValue(s.value)
	}
	var zero T
	s.value = zero
	s.computed = false
	s.deps.Reset()
}

// UseMemo returns the memoized result of compute at the current hook
// position. compute runs on the first render and whenever deps differ from
// the previous render's deps; it receives the retained deps. A replaced
// result implementing io.Closer is closed after the new one is computed.
func UseMemo[T any](c *Ctx, compute func([]byte) T, d []byte) T {
	s := useSlot(c, HookMemo, func() *memoSlot[T] { return new(memoSlot[T]) })
	if !s.deps.Update(d) {
		return s.value
	}
	done := false
	defer func() {
		// A panicking compute must not leave the new deps paired with the
		// old result.
		if !done {
			s.deps.Reset()
		}
	}()
	old, hadOld := s.value, s.computed
	s.value = compute(s.deps.Bytes())
	s.computed = true
	done = true
	c.root.stats.memoComputes.Add(1)
	if hadOld {
		c.root.closeValue(old)
	}
	return s.value
}

// closeValue closes v if it implements io.Closer, logging failures.
func (r *Root) closeValue(v any) {
	cl, ok := v.(io.Closer)
	if !ok {
		return
	}
	if err := cl.Close(); err != nil {
		r.logger.Warn("memo value close failed", "error", err)
	}
}
