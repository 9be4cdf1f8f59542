package demo

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/vango-dev/reconciler/pkg/fiber"
	"github.com/vango-dev/reconciler/pkg/vdom"
)

// ErrNoHandler is returned when the clicked element does not exist or has
// no click handler.
var ErrNoHandler = errors.New("demo: no click handler")

// Click triggers the click handler of the element with the given id in
// the root's current tree. It must run on the root's owner goroutine.
func Click(r *fiber.Root, id string) error {
	n := vdom.FindByID(r.Tree(), id)
	if n == nil || !vdom.Trigger(n, "click") {
		return fmt.Errorf("%w: %q", ErrNoHandler, id)
	}
	return nil
}

// CounterView is the visible state of one counter.
type CounterView struct {
	ID     string
	Label  string
	Value  int
	Parity string
}

// Counters reads the counters shown in tree, in order.
func Counters(tree *vdom.Node) []CounterView {
	list := vdom.FindByID(tree, "counters")
	if list == nil {
		return nil
	}
	var out []CounterView
	for _, n := range list.Children {
		id, _ := n.ElementProps()["id"].(string)
		if id == "" {
			continue
		}
		v, _ := strconv.Atoi(vdom.TextContent(vdom.FindByID(n, id+"-value")))
		out = append(out, CounterView{
			ID:     id,
			Label:  vdom.TextContent(vdom.FindByID(n, id+"-label")),
			Value:  v,
			Parity: vdom.TextContent(vdom.FindByID(n, id+"-parity")),
		})
	}
	return out
}
