package fiber

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/vango-dev/reconciler/pkg/vdom"
)

// Root owns a fiber tree, its dirty queue and its render target.
//
// A Root is not safe for concurrent use. All methods except Dispatch, Do,
// Stats and Close must be called from the goroutine that owns the root,
// which is the goroutine running Run when the executor is used.
type Root struct {
	target Target
	arena  arena
	root   ID

	queue      []ID
	head       int
	dirty      bool
	rendering  bool
	batchDepth int
	opened     bool
	seq        uint64

	ctx        context.Context
	logger     *slog.Logger
	middleware []Middleware
	maxRenders int
	stats      counters

	dispatchSize int
	dispatchCh   chan func()
	done         chan struct{}
	closed       atomic.Bool
	closeOnce    sync.Once
}

// NewRoot creates a root committing to target.
func NewRoot(target Target, opts ...Option) *Root {
	if target == nil {
		target = Discard
	}
	r := &Root{
		target:       target,
		ctx:          context.Background(),
		logger:       slog.Default(),
		maxRenders:   DefaultMaxRendersPerPass,
		dispatchSize: DefaultDispatchBuffer,
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.dispatchCh = make(chan func(), r.dispatchSize)
	return r
}

// Mount creates the root fiber rendering node and schedules it.
func (r *Root) Mount(node *vdom.Node) error {
	if r.arena.get(r.root) != nil {
		return ErrAlreadyMounted
	}
	f := r.newFiber(nil, rootComponent, "", node, nil)
	r.root = f.id
	return r.Schedule(f.id)
}

// Update replaces the node rendered by the root fiber and schedules it.
func (r *Root) Update(node *vdom.Node) error {
	f := r.arena.get(r.root)
	if f == nil {
		return ErrNotMounted
	}
	f.props = node
	return r.Schedule(f.id)
}

// Unmount destroys the whole fiber tree.
func (r *Root) Unmount() error {
	f := r.arena.get(r.root)
	if f == nil {
		return ErrNotMounted
	}
	r.destroy(r.ctx, f)
	r.root = 0
	return nil
}

// RootFiber returns the handle of the root fiber, zero when unmounted.
func (r *Root) RootFiber() ID {
	return r.root
}

// Lookup resolves a fiber handle. It returns false for destroyed fibers.
func (r *Root) Lookup(id ID) (*Fiber, bool) {
	f := r.arena.get(id)
	return f, f != nil
}

// Dirty reports whether scheduled work has not been rendered yet.
func (r *Root) Dirty() bool {
	return r.dirty
}

// Logger returns the root's logger.
func (r *Root) Logger() *slog.Logger {
	return r.logger
}

// Schedule marks the fiber dirty and appends it to the dirty queue.
// Scheduling a fiber that is already dirty does not queue it twice. When
// no render pass is running and no batch is open, a pass runs before
// Schedule returns and its error is returned. Work left queued by an
// earlier pass that stopped early is rendered by that pass as well.
func (r *Root) Schedule(id ID) error {
	f := r.arena.get(id)
	if f == nil {
		return ErrUseAfterUnmount
	}
	r.enqueue(f)
	if r.rendering || r.batchDepth > 0 || !r.dirty {
		return nil
	}
	return r.renderPass(r.ctx)
}

// Render runs a render pass over the dirty queue. It does nothing when
// called during a pass.
func (r *Root) Render(ctx context.Context) error {
	if r.rendering {
		return nil
	}
	return r.renderPass(ctx)
}

// enqueue marks f dirty and queues it unless it is already dirty.
func (r *Root) enqueue(f *Fiber) {
	if f.dirty {
		return
	}
	f.dirty = true
	r.queue = append(r.queue, f.id)
	r.dirty = true
	r.stats.pending.Add(1)
}

func (r *Root) renderPass(ctx context.Context) error {
	r.rendering = true
	defer func() { r.rendering = false }()

	if !r.opened {
		if err := r.target.Open(ctx); err != nil {
			return fmt.Errorf("fiber: open target: %w", err)
		}
		r.opened = true
	}

	var errs []error
	renders := 0
	for r.head < len(r.queue) {
		if r.maxRenders > 0 && renders >= r.maxRenders {
			r.stats.budgetExceeded.Add(1)
			r.logger.Warn("render budget exceeded",
				"renders", renders,
				"pending", len(r.queue)-r.head)
			r.compactQueue()
			errs = append(errs, ErrBudgetExceeded)
			return errors.Join(errs...)
		}

		id := r.queue[r.head]
		r.queue[r.head] = 0
		r.head++
		r.stats.pending.Add(-1)

		f := r.arena.get(id)
		if f == nil || !f.dirty {
			continue
		}
		renders++
		if err := r.renderFiber(ctx, f); err != nil {
			errs = append(errs, err)
		}
	}

	r.queue = r.queue[:0]
	r.head = 0
	r.dirty = false
	r.stats.passes.Add(1)
	return errors.Join(errs...)
}

// compactQueue drops consumed entries so a budget-stopped queue does not
// grow without bound.
func (r *Root) compactQueue() {
	n := copy(r.queue, r.queue[r.head:])
	r.queue = r.queue[:n]
	r.head = 0
}

// renderFiber renders one dirty fiber, reconciles its children and commits
// the result.
func (r *Root) renderFiber(ctx context.Context, f *Fiber) error {
	f.dirty = false
	f.err = nil
	f.nextHook = 0

	info := RenderInfo{
		Fiber:     f.id,
		Parent:    f.parent,
		Component: f.ComponentName(),
		Key:       f.key,
		Mounted:   f.mounted,
		Depth:     f.depth,
	}

	var (
		out    *vdom.Node
		called bool
	)
	err := compose(r.middleware, info, func(ctx context.Context) error {
		called = true
		var err error
		out, err = r.invoke(ctx, f)
		return err
	})(ctx)

	if called {
		f.renders++
		r.stats.renders.Add(1)
	}
	if err != nil {
		f.err = err
		r.stats.renderErrors.Add(1)
		r.logger.Error("render failed",
			"fiber", f.id.String(),
			"component", info.Component,
			"error", err)
		return fmt.Errorf("fiber %s (%s): %w", f.id, info.Component, err)
	}
	if !called {
		return nil
	}

	f.mounted = true
	r.reconcile(ctx, f, out)
	f.node = out

	r.seq++
	commit := Commit{
		Seq:       r.seq,
		Fiber:     f.id,
		Parent:    f.parent,
		Component: info.Component,
		Key:       f.key,
		Node:      out,
	}
	if err := r.target.Commit(ctx, commit); err != nil {
		r.stats.commitErrors.Add(1)
		r.logger.Error("commit failed",
			"fiber", f.id.String(),
			"component", info.Component,
			"error", err)
		return fmt.Errorf("fiber %s (%s): commit: %w", f.id, info.Component, err)
	}
	r.stats.commits.Add(1)
	return nil
}

// invoke calls the component, converting hook aborts and panics into
// errors.
func (r *Root) invoke(ctx context.Context, f *Fiber) (out *vdom.Node, err error) {
	c := &Ctx{ctx: ctx, root: r, fiber: f, active: true}
	defer func() {
		c.active = false
		if rec := recover(); rec != nil {
			if a, ok := rec.(hookAbort); ok {
				out, err = nil, a.err
				return
			}
			r.logger.Error("component panic",
				"fiber", f.id.String(),
				"component", f.ComponentName(),
				"panic", rec,
				"stack", string(debug.Stack()))
			out, err = nil, fmt.Errorf("%w: %v", ErrComponentPanic, rec)
		}
	}()

	out, err = f.comp.render(c, f.props)
	if err != nil {
		return nil, err
	}
	if err := c.checkHookCount(); err != nil {
		return nil, err
	}
	return out, nil
}

// reconcile matches the component placeholders in out against f's child
// fibers. Matched children whose component changed are replaced, new
// placeholders get new fibers, and children that were not matched are
// destroyed. Children needing a render are enqueued.
func (r *Root) reconcile(ctx context.Context, f *Fiber, out *vdom.Node) {
	placeholders := vdom.Components(out)
	if len(placeholders) == 0 && len(f.children) == 0 {
		return
	}

	old := f.children
	claimed := make([]bool, len(old))
	next := make([]ID, 0, len(placeholders))
	seen := make(map[string]struct{}, len(placeholders))

	for ordinal, n := range placeholders {
		comp, ok := n.Comp.(renderer)
		if !ok {
			r.logger.Warn("component is not renderable",
				"fiber", f.id.String(),
				"component", n.ComponentName())
			continue
		}

		key := n.Key
		if key == "" {
			key = "#" + strconv.Itoa(ordinal)
		}
		if _, dup := seen[key]; dup {
			r.logger.Warn("duplicate key",
				"fiber", f.id.String(),
				"component", n.ComponentName(),
				"key", key)
			key += "#" + strconv.Itoa(ordinal)
		}
		seen[key] = struct{}{}

		child := r.findChild(old, claimed, key)
		if child != nil && child.comp != comp {
			r.destroy(ctx, child)
			child = nil
		}

		if child == nil {
			child = r.newFiber(f, comp, key, n.Props, n.Children)
			r.enqueue(child)
		} else if comp.propsEqual(child.props, n.Props) && len(child.passed) == 0 && len(n.Children) == 0 && !child.dirty {
			r.stats.skipped.Add(1)
		} else {
			child.props = n.Props
			child.passed = n.Children
			r.enqueue(child)
		}

		n.Fiber = uint64(child.id)
		next = append(next, child.id)
	}

	for i, id := range old {
		if claimed[i] {
			continue
		}
		if child := r.arena.get(id); child != nil {
			r.destroy(ctx, child)
		}
	}
	f.children = next
}

// findChild returns the unclaimed child of old with key and claims it.
func (r *Root) findChild(old []ID, claimed []bool, key string) *Fiber {
	for i, id := range old {
		if claimed[i] {
			continue
		}
		child := r.arena.get(id)
		if child != nil && child.key == key {
			claimed[i] = true
			return child
		}
	}
	return nil
}

func (r *Root) newFiber(parent *Fiber, comp renderer, key string, props any, passed []*vdom.Node) *Fiber {
	f := &Fiber{
		comp:   comp,
		key:    key,
		props:  props,
		passed: passed,
	}
	if parent != nil {
		f.parent = parent.id
		f.depth = parent.depth + 1
	}
	r.arena.alloc(f)
	r.stats.live.Add(1)
	return f
}

// destroy releases f and its subtree, children first in reverse order.
func (r *Root) destroy(ctx context.Context, f *Fiber) {
	for i := len(f.children) - 1; i >= 0; i-- {
		if child := r.arena.get(f.children[i]); child != nil {
			r.destroy(ctx, child)
		}
	}
	f.children = nil

	f.disposeHooks(r)
	if f.dirty {
		// Its queue entry becomes stale and is skipped.
		f.dirty = false
	}

	id := f.id
	r.arena.release(id)
	r.stats.live.Add(-1)
	r.stats.destroyed.Add(1)

	if u, ok := r.target.(Unmounter); ok {
		if err := u.Unmount(ctx, id); err != nil {
			r.logger.Warn("target unmount failed",
				"fiber", id.String(),
				"component", f.ComponentName(),
				"error", err)
		}
	}
}

// Tree returns the resolved output of the whole tree: the root fiber's
// node with every component placeholder replaced by its fiber's output.
// Nodes are shallow copies; props are shared with the fibers' output.
func (r *Root) Tree() *vdom.Node {
	f := r.arena.get(r.root)
	if f == nil {
		return nil
	}
	return r.resolve(f.node)
}

func (r *Root) resolve(n *vdom.Node) *vdom.Node {
	if n == nil {
		return nil
	}
	if n.Kind == vdom.KindComponent {
		child := r.arena.get(ID(n.Fiber))
		if child == nil {
			return nil
		}
		return r.resolve(child.node)
	}
	cp := *n
	if len(n.Children) > 0 {
		cp.Children = make([]*vdom.Node, 0, len(n.Children))
		for _, c := range n.Children {
			if rc := r.resolve(c); rc != nil {
				cp.Children = append(cp.Children, rc)
			}
		}
	}
	return &cp
}

// Close destroys the tree, stops the executor and closes the target if it
// implements io.Closer. It must not run concurrently with a render pass.
func (r *Root) Close() error {
	var err error
	r.closeOnce.Do(func() {
		r.closed.Store(true)
		close(r.done)
		if r.arena.get(r.root) != nil {
			_ = r.Unmount()
		}
		if c, ok := r.target.(io.Closer); ok && r.opened {
			err = c.Close()
		}
	})
	return err
}
