// Package vtest provides testing helpers for components.
//
// Mount renders a node on a fresh root backed by a memory target and
// closes the root when the test ends. The harness exposes the rendered
// markup and triggers event handlers by element id.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.Mount(t, demo.Counter.El(demo.CounterProps{ID: "c"}))
//	    h.Click("c-inc")
//	    h.ExpectContains("Count: 1")
//	}
//
// # Render Assertions
//
// The package-level helpers render a plain node tree without a root:
//
//	vtest.ExpectContains(t, vdom.P("hello"), "hello")
package vtest
