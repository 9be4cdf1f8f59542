package target

import (
	"context"
	"sort"
	"sync"

	"github.com/vango-dev/reconciler/pkg/fiber"
	"github.com/vango-dev/reconciler/pkg/protocol"
)

// Memory is an in-memory target. It keeps the commit log and the latest
// snapshot of every live fiber. It is safe for concurrent use.
type Memory struct {
	mu        sync.RWMutex
	opens     int
	log       []fiber.Commit
	latest    map[fiber.ID]*protocol.CommitRecord
	unmounted []fiber.ID
	maxLog    int
}

// NewMemory creates a memory target keeping at most maxLog commits in its
// log (0 keeps all).
func NewMemory(maxLog int) *Memory {
	return &Memory{
		latest: make(map[fiber.ID]*protocol.CommitRecord),
		maxLog: maxLog,
	}
}

// Open implements fiber.Target.
func (m *Memory) Open(context.Context) error {
	m.mu.Lock()
	m.opens++
	m.mu.Unlock()
	return nil
}

// Commit implements fiber.Target.
func (m *Memory) Commit(_ context.Context, c fiber.Commit) error {
	rec := Record(c)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.log = append(m.log, c)
	if m.maxLog > 0 && len(m.log) > m.maxLog {
		m.log = append(m.log[:0], m.log[len(m.log)-m.maxLog:]...)
	}
	m.latest[c.Fiber] = rec
	return nil
}

// Unmount implements fiber.Unmounter.
func (m *Memory) Unmount(_ context.Context, id fiber.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.latest, id)
	m.unmounted = append(m.unmounted, id)
	return nil
}

// Opens returns how many times the target was opened.
func (m *Memory) Opens() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.opens
}

// Commits returns a copy of the commit log.
func (m *Memory) Commits() []fiber.Commit {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]fiber.Commit, len(m.log))
	copy(out, m.log)
	return out
}

// Latest returns the latest snapshot committed by a live fiber.
func (m *Memory) Latest(id fiber.ID) (*protocol.CommitRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.latest[id]
	return rec, ok
}

// Snapshots returns the latest snapshot of every live fiber in commit
// order.
func (m *Memory) Snapshots() []*protocol.CommitRecord {
	m.mu.RLock()
	out := make([]*protocol.CommitRecord, 0, len(m.latest))
	for _, rec := range m.latest {
		out = append(out, rec)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// Unmounted returns the fibers reported destroyed, in order.
func (m *Memory) Unmounted() []fiber.ID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]fiber.ID, len(m.unmounted))
	copy(out, m.unmounted)
	return out
}

// Reset clears the commit log. Snapshots of live fibers are kept.
func (m *Memory) Reset() {
	m.mu.Lock()
	m.log = nil
	m.unmounted = nil
	m.mu.Unlock()
}
