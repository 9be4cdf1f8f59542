package fiber

import "sync/atomic"

// Stats is a snapshot of a root's counters.
type Stats struct {
	Passes         uint64
	Renders        uint64
	Skipped        uint64 // Memo components not re-rendered
	Commits        uint64
	RenderErrors   uint64
	CommitErrors   uint64
	Destroyed      uint64
	BudgetExceeded uint64
	MemoComputes   uint64
	LiveFibers     int64
	Pending        int64 // Fibers waiting in the dirty queue
}

// counters are updated by the owner goroutine and may be read from any
// goroutine.
type counters struct {
	passes         atomic.Uint64
	renders        atomic.Uint64
	skipped        atomic.Uint64
	commits        atomic.Uint64
	renderErrors   atomic.Uint64
	commitErrors   atomic.Uint64
	destroyed      atomic.Uint64
	budgetExceeded atomic.Uint64
	memoComputes   atomic.Uint64
	live           atomic.Int64
	pending        atomic.Int64
}

// Stats returns a snapshot of the root's counters. It is safe to call from
// any goroutine.
func (r *Root) Stats() Stats {
	s := &r.stats
	return Stats{
		Passes:         s.passes.Load(),
		Renders:        s.renders.Load(),
		Skipped:        s.skipped.Load(),
		Commits:        s.commits.Load(),
		RenderErrors:   s.renderErrors.Load(),
		CommitErrors:   s.commitErrors.Load(),
		Destroyed:      s.destroyed.Load(),
		BudgetExceeded: s.budgetExceeded.Load(),
		MemoComputes:   s.memoComputes.Load(),
		LiveFibers:     s.live.Load(),
		Pending:        s.pending.Load(),
	}
}
