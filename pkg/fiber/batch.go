package fiber

// Batch runs fn with scheduling deferred: state writes inside fn only
// enqueue their fibers, and a single render pass runs when the outermost
// batch returns. Batches can be nested. The pass error is returned.
//
// Example:
//
//	root.Batch(func() {
//	    first.Set("John")
//	    last.Set("Doe")
//	})
//	// One pass renders both updates.
func (r *Root) Batch(fn func()) (err error) {
	r.batchDepth++
	defer func() {
		r.batchDepth--
		if r.batchDepth == 0 && r.dirty && !r.rendering {
			err = r.renderPass(r.ctx)
		}
	}()
	fn()
	return nil
}

// Batching reports whether a batch is open.
func (r *Root) Batching() bool {
	return r.batchDepth > 0
}
