package vtest

import (
	"fmt"
	"testing"

	"github.com/vango-dev/reconciler/pkg/fiber"
	"github.com/vango-dev/reconciler/pkg/vdom"
)

var toggle = fiber.Component("Toggle", func(c *fiber.Ctx, id string) *vdom.Node {
	on := fiber.UseState(c, false)
	return vdom.Button(
		vdom.ID(id),
		vdom.OnClick(func() { _ = on.Update(func(v bool) bool { return !v }) }),
		vdom.Text(fmt.Sprintf("on=%v", on.Get())),
	)
})

func TestRenderAssertions(t *testing.T) {
	n := vdom.Div(vdom.Class("box"), vdom.P("hello"))
	ExpectContains(t, n, "hello")
	ExpectNotContains(t, n, "goodbye")
	ExpectElement(t, n, "p")
	ExpectAttribute(t, n, "class", "box")
}

func TestHarnessClick(t *testing.T) {
	h := Mount(t, vdom.Main(toggle.El("t1"), toggle.El("t2")))

	h.ExpectText("t1", "on=false")
	h.Click("t1")
	h.ExpectText("t1", "on=true")
	h.ExpectText("t2", "on=false")
	h.ExpectContains(`<button data-on="click" id="t1">on=true</button>`)

	if got := len(h.Target.Commits()); got != 4 {
		t.Errorf("commits = %d, want 4", got)
	}
	if got := h.Stats().LiveFibers; got != 3 {
		t.Errorf("LiveFibers = %d, want 3", got)
	}
}

func TestHarnessUpdate(t *testing.T) {
	h := Mount(t, vdom.Main(toggle.El("t1"), toggle.El("t2")))
	h.Click("t2")

	h.Update(vdom.Main(toggle.El("t1")))
	h.ExpectNotContains(`id="t2"`)
	if got := len(h.Target.Unmounted()); got != 1 {
		t.Errorf("unmounted = %d, want 1", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 3); got != "abc..." {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("ab", 3); got != "ab" {
		t.Errorf("truncate() = %q", got)
	}
}
