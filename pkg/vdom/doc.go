// Package vdom defines the node model produced by component renders.
//
// A Node is an immutable description of rendered output: an intrinsic
// element, a text leaf, a fragment, or a placeholder for a function
// component. Components never assemble Node values by hand; they go
// through Build (or the element helpers built on it), which is the single
// markup entry point the runtime relies on.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P(Textf("Count: %d", n)),
//	    OnClick(handler),
//	)
//
// # Components
//
// Any value implementing Component can appear in a tree. Intrinsic tags are
// represented by Tag; function components live in package fiber and are
// resolved to child fibers by the runtime, which records the child handle
// on the placeholder node's Fiber field.
package vdom
