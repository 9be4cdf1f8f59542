package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// createElement creates an element node for tag from variadic arguments.
// Arguments can be: nil, Attr, []Attr, EventHandler, *Node, []*Node, string.
func createElement(tag string, args []any) *Node {
	props := make(Props)
	var children []*Node

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue

		case Attr:
			if !v.IsEmpty() {
				props[v.Key] = v.Value
			}

		case []Attr:
			for _, a := range v {
				if !a.IsEmpty() {
					props[a.Key] = a.Value
				}
			}

		case EventHandler:
			props[v.Event] = v.Handler

		case *Node:
			if v != nil {
				children = append(children, v)
			}

		case []*Node:
			children = appendNodes(children, v)

		case string:
			// Shorthand for text node
			children = append(children, Text(v))
		}
	}

	return Build(Tag(tag), props, children...)
}

func appendNodes(dst, src []*Node) []*Node {
	for _, n := range src {
		if n != nil {
			dst = append(dst, n)
		}
	}
	return dst
}

// El creates an element with an arbitrary tag name.
func El(tag string, args ...any) *Node { return createElement(tag, args) }

// Sectioning

func Main(args ...any) *Node    { return createElement("main", args) }
func Header(args ...any) *Node  { return createElement("header", args) }
func Footer(args ...any) *Node  { return createElement("footer", args) }
func Nav(args ...any) *Node     { return createElement("nav", args) }
func Section(args ...any) *Node { return createElement("section", args) }
func H1(args ...any) *Node      { return createElement("h1", args) }
func H2(args ...any) *Node      { return createElement("h2", args) }
func H3(args ...any) *Node      { return createElement("h3", args) }

// Content

func Div(args ...any) *Node  { return createElement("div", args) }
func P(args ...any) *Node    { return createElement("p", args) }
func Span(args ...any) *Node { return createElement("span", args) }
func Pre(args ...any) *Node  { return createElement("pre", args) }
func Ul(args ...any) *Node   { return createElement("ul", args) }
func Ol(args ...any) *Node   { return createElement("ol", args) }
func Li(args ...any) *Node   { return createElement("li", args) }
func Hr(args ...any) *Node   { return createElement("hr", args) }
func Br(args ...any) *Node   { return createElement("br", args) }

// Forms

func Button(args ...any) *Node { return createElement("button", args) }
func Input(args ...any) *Node  { return createElement("input", args) }
func Label(args ...any) *Node  { return createElement("label", args) }
