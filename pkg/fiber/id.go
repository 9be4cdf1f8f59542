package fiber

import "fmt"

// ID is a stable handle to a fiber. It packs the arena slot index and the
// slot generation; destroying a fiber bumps the generation, so handles to
// destroyed fibers never resolve again. The zero ID is never valid.
type ID uint64

func makeID(index, gen uint32) ID {
	return ID(uint64(gen)<<32 | uint64(index))
}

// Index returns the arena slot index.
func (id ID) Index() uint32 { return uint32(id) }

// Generation returns the slot generation.
func (id ID) Generation() uint32 { return uint32(id >> 32) }

// IsZero reports whether id is the zero handle.
func (id ID) IsZero() bool { return id == 0 }

// String returns a compact form such as "f3.1".
func (id ID) String() string {
	if id == 0 {
		return "f-"
	}
	return fmt.Sprintf("f%d.%d", id.Index(), id.Generation())
}

// arena stores fibers in slots addressed by ID.
type arena struct {
	slots []arenaSlot
	free  []uint32
}

type arenaSlot struct {
	gen   uint32
	fiber *Fiber
}

// alloc places f in a free slot and assigns its ID.
func (a *arena) alloc(f *Fiber) ID {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		// Generations start at 1 so no live handle is zero.
		a.slots = append(a.slots, arenaSlot{gen: 1})
	}
	s := &a.slots[idx]
	s.fiber = f
	f.id = makeID(idx, s.gen)
	return f.id
}

// get resolves id, returning nil for stale or unknown handles.
func (a *arena) get(id ID) *Fiber {
	idx := id.Index()
	if id == 0 || int(idx) >= len(a.slots) {
		return nil
	}
	s := a.slots[idx]
	if s.gen != id.Generation() {
		return nil
	}
	return s.fiber
}

// release frees the slot of id and invalidates the handle.
func (a *arena) release(id ID) {
	idx := id.Index()
	if a.get(id) == nil {
		return
	}
	s := &a.slots[idx]
	s.fiber = nil
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	a.free = append(a.free, idx)
}
