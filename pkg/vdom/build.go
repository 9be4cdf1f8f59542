package vdom

// Build produces a node for comp with the given props and children.
//
// Intrinsic tags produce element nodes and expect Props (or nil). TagText
// expects a string and TagFragment ignores props. Any other component
// produces a placeholder node carrying the props verbatim; the runtime
// renders it as a child fiber.
//
// The reconciliation key comes from the "key" prop of an element, or from
// props implementing Keyed.
func Build(comp Component, props any, children ...*Node) *Node {
	children = appendNodes(nil, children)

	switch c := comp.(type) {
	case Tag:
		switch c {
		case TagText:
			s, _ := props.(string)
			return Text(s)
		case TagFragment:
			return &Node{Kind: KindFragment, Comp: TagFragment, Children: children}
		}
		p := toProps(props)
		n := &Node{
			Kind:     KindElement,
			Tag:      string(c),
			Comp:     c,
			Props:    p,
			Children: children,
		}
		if k, ok := p["key"].(string); ok {
			n.Key = k
		}
		return n
	}

	n := &Node{
		Kind:     KindComponent,
		Comp:     comp,
		Props:    props,
		Children: children,
	}
	if k, ok := props.(Keyed); ok {
		n.Key = k.GetKey()
	}
	return n
}

func toProps(v any) Props {
	switch p := v.(type) {
	case Props:
		if p == nil {
			return Props{}
		}
		return p
	case map[string]any:
		return Props(p)
	case []Attr:
		out := make(Props, len(p))
		for _, a := range p {
			if !a.IsEmpty() {
				out[a.Key] = a.Value
			}
		}
		return out
	}
	return Props{}
}
