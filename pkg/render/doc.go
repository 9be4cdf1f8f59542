// Package render writes node trees as HTML markup.
//
// It renders the resolved output of a fiber.Root (see Root.Tree). Text
// and attribute values are escaped. Event handlers are not rendered; an
// element with handlers carries a data-on attribute naming its events.
// Component placeholders that were not resolved render as comments.
//
// # Basic Usage
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(root.Tree())
//
// # Full Page Rendering
//
//	err := r.RenderPage(w, render.PageData{
//	    Title:      "Demo",
//	    Body:       root.Tree(),
//	    StreamPath: "/ws",
//	})
package render
