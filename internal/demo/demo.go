// Package demo is a small component tree used by the command line and in
// tests: an App holding a list of keyed Counter components and a memoized
// Toolbar.
package demo

import (
	"fmt"
	"slices"

	"github.com/vango-dev/reconciler/pkg/deps"
	"github.com/vango-dev/reconciler/pkg/fiber"
	"github.com/vango-dev/reconciler/pkg/vdom"
)

// AppProps configures the App.
type AppProps struct {
	Title string
	Step  int // Added or subtracted by every counter click
}

// CounterProps configures one Counter. The ID is also its key.
type CounterProps struct {
	ID    string
	Label string
	Step  int
}

// GetKey implements vdom.Keyed.
func (p CounterProps) GetKey() string { return p.ID }

// ToolbarProps holds the toolbar's actions.
type ToolbarProps struct {
	Add    fiber.Callback
	Remove fiber.Callback
}

// App renders the toolbar, one counter per id and a summary line.
var App = fiber.Component("App", func(c *fiber.Ctx, p AppProps) *vdom.Node {
	ids := fiber.UseState(c, []string{"c1"})
	lastID := fiber.UseRef[int](c)

	add := fiber.UseCallback(c, func([]byte) {
		if lastID.Current() == 0 {
			lastID.Set(len(ids.Get()))
		}
		lastID.Set(lastID.Current() + 1)
		id := fmt.Sprintf("c%d", lastID.Current())
		_ = ids.Update(func(cur []string) []string {
			return append(slices.Clip(cur), id)
		})
	}, nil)

	remove := fiber.UseCallback(c, func([]byte) {
		_ = ids.Update(func(cur []string) []string {
			if len(cur) == 0 {
				return cur
			}
			return cur[: len(cur)-1 : len(cur)-1]
		})
	}, nil)

	title := p.Title
	if title == "" {
		title = "Counters"
	}
	step := p.Step
	if step == 0 {
		step = 1
	}

	list := ids.Get()
	return vdom.Main(vdom.ID("app"),
		vdom.H1(title),
		Toolbar.El(ToolbarProps{Add: add, Remove: remove}),
		vdom.Div(vdom.ID("counters"),
			vdom.Range(list, func(id string, _ int) *vdom.Node {
				return Counter.El(CounterProps{ID: id, Label: "Counter " + id, Step: step})
			}),
		),
		vdom.P(vdom.ID("summary"), vdom.Textf("%d counters, step %d", len(list), step)),
	)
})

// Toolbar renders the add and remove buttons. It is memoized, and the
// callbacks it receives keep their identity, so App re-renders skip it.
var Toolbar = fiber.Memo("Toolbar", func(c *fiber.Ctx, p ToolbarProps) *vdom.Node {
	return vdom.Nav(vdom.ID("toolbar"),
		vdom.Button(vdom.ID("add"), vdom.OnClick(p.Add), "Add counter"),
		vdom.Button(vdom.ID("remove"), vdom.OnClick(p.Remove), "Remove counter"),
	)
})

// Counter renders a value with increment and decrement buttons.
var Counter = fiber.Memo("Counter", func(c *fiber.Ctx, p CounterProps) *vdom.Node {
	count := fiber.UseState(c, 0)
	renders := fiber.UseRef[int](c)
	renders.Set(renders.Current() + 1)

	step := p.Step
	inc := fiber.UseCallback(c, func([]byte) {
		_ = count.Update(func(n int) int { return n + step })
	}, deps.Of(step))
	dec := fiber.UseCallback(c, func([]byte) {
		_ = count.Update(func(n int) int { return n - step })
	}, deps.Of(step))

	value := count.Get()
	parity := fiber.UseMemo(c, func([]byte) string {
		if value%2 == 0 {
			return "even"
		}
		return "odd"
	}, deps.Of(value))

	return vdom.Div(vdom.ID(p.ID), vdom.Class("counter"),
		vdom.Span(vdom.ID(p.ID+"-label"), p.Label),
		vdom.Button(vdom.ID(p.ID+"-dec"), vdom.OnClick(dec), "-"),
		vdom.Span(vdom.ID(p.ID+"-value"), vdom.Textf("%d", value)),
		vdom.Button(vdom.ID(p.ID+"-inc"), vdom.OnClick(inc), "+"),
		vdom.Span(vdom.ID(p.ID+"-parity"), vdom.Data("renders", fmt.Sprint(renders.Current())), parity),
	)
})
