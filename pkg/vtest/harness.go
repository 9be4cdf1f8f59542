package vtest

import (
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/reconciler/pkg/fiber"
	"github.com/vango-dev/reconciler/pkg/target"
	"github.com/vango-dev/reconciler/pkg/vdom"
)

// Harness is a mounted root under test.
type Harness struct {
	t      testing.TB
	Root   *fiber.Root
	Target *target.Memory
}

// Mount mounts node on a new root writing to a memory target. Render
// errors fail the test. The root is closed when the test ends. Options
// are applied after a logger that discards output.
func Mount(t testing.TB, node *vdom.Node, opts ...fiber.Option) *Harness {
	t.Helper()
	mem := target.NewMemory(0)
	opts = append([]fiber.Option{
		fiber.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)

	h := &Harness{t: t, Root: fiber.NewRoot(mem, opts...), Target: mem}
	t.Cleanup(func() { h.Root.Close() })

	if err := h.Root.Mount(node); err != nil {
		t.Fatalf("vtest: mount: %v", err)
	}
	return h
}

// Tree returns the resolved output of the whole tree.
func (h *Harness) Tree() *vdom.Node {
	return h.Root.Tree()
}

// HTML renders the resolved tree.
func (h *Harness) HTML() string {
	return RenderToString(h.Root.Tree())
}

// Find returns the element with the given id, failing the test when it is
// missing.
func (h *Harness) Find(id string) *vdom.Node {
	h.t.Helper()
	n := vdom.FindByID(h.Root.Tree(), id)
	if n == nil {
		h.t.Fatalf("vtest: no element with id %q in:\n%s", id, truncate(h.HTML(), 500))
	}
	return n
}

// Text returns the text content of the element with the given id.
func (h *Harness) Text(id string) string {
	h.t.Helper()
	return vdom.TextContent(h.Find(id))
}

// Trigger invokes the handler for event on the element with the given id.
// State updates made by the handler render before Trigger returns.
func (h *Harness) Trigger(id, event string) {
	h.t.Helper()
	n := h.Find(id)
	if !vdom.Trigger(n, event) {
		h.t.Fatalf("vtest: element %q has no %s handler", id, event)
	}
}

// Click triggers the click handler of the element with the given id.
func (h *Harness) Click(id string) {
	h.t.Helper()
	h.Trigger(id, "click")
}

// Update replaces the root node and renders it.
func (h *Harness) Update(node *vdom.Node) {
	h.t.Helper()
	if err := h.Root.Update(node); err != nil {
		h.t.Fatalf("vtest: update: %v", err)
	}
}

// Stats returns the root's counters.
func (h *Harness) Stats() fiber.Stats {
	return h.Root.Stats()
}

// ExpectContains asserts that the rendered tree contains expected.
func (h *Harness) ExpectContains(expected string) {
	h.t.Helper()
	expectContains(h.t, h.HTML(), expected)
}

// ExpectNotContains asserts that the rendered tree does not contain
// unexpected.
func (h *Harness) ExpectNotContains(unexpected string) {
	h.t.Helper()
	expectNotContains(h.t, h.HTML(), unexpected)
}

// ExpectText asserts the text content of the element with the given id.
func (h *Harness) ExpectText(id, want string) {
	h.t.Helper()
	if got := h.Text(id); got != want {
		h.t.Errorf("text of %q = %q, want %q", id, got, want)
	}
}
