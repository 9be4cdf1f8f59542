// Package fiber implements the component runtime: fibers, hooks and the
// root scheduler.
//
// A fiber is the runtime instance of a component at one position in the
// tree. It owns the component's hook instances, its last rendered node and
// the handles of its child fibers. Hooks are resolved positionally: the
// N-th hook call of a render binds to the N-th hook instance recorded when
// the fiber first rendered. After mount the number and kind of hooks per
// position are fixed; violations are recorded on the fiber as a *HookError
// and abort that fiber's render without touching its hook list.
//
// # Components
//
// Components are plain functions wrapped by Component (or Memo):
//
//	var Counter = fiber.Component("Counter", func(c *fiber.Ctx, p CounterProps) *vdom.Node {
//	    count := fiber.UseState(c, 0)
//	    inc := fiber.UseCallback(c, func([]byte) {
//	        count.Update(func(n int) int { return n + 1 })
//	    }, nil)
//	    return vdom.Button(vdom.OnClick(inc), vdom.Textf("%d", count.Get()))
//	})
//
// # Scheduling
//
// State writes schedule their fiber on the Root's FIFO dirty queue. When
// no render pass is running and no batch is open, the pass runs
// synchronously before Set returns. A pass drains the queue, re-rendering
// each dirty fiber once, reconciling its component children into child
// fibers (which are enqueued rather than rendered recursively) and handing
// the result to the Target.
//
// # Concurrency
//
// A Root is owned by a single goroutine. Work from other goroutines goes
// through Dispatch or Do and runs on the goroutine executing Run.
package fiber
