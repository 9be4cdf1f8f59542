package vdom

// Walk visits n and its descendants depth-first in document order. If fn
// returns false the node's children are skipped.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == nil || !fn(cur) {
			continue
		}
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}

// Find returns the first node in document order for which match returns
// true, or nil.
func Find(n *Node, match func(*Node) bool) *Node {
	var found *Node
	Walk(n, func(cur *Node) bool {
		if found != nil {
			return false
		}
		if match(cur) {
			found = cur
			return false
		}
		return true
	})
	return found
}

// FindByID returns the first element with the given id attribute.
func FindByID(n *Node, id string) *Node {
	return Find(n, func(cur *Node) bool {
		v, _ := cur.ElementProps()["id"].(string)
		return v == id
	})
}

// Components returns the component placeholders directly owned by n, that
// is, those reachable without passing through another placeholder.
func Components(n *Node) []*Node {
	var out []*Node
	Walk(n, func(cur *Node) bool {
		if cur.Kind == KindComponent {
			out = append(out, cur)
			return false
		}
		return true
	})
	return out
}

// TextContent concatenates the text of all text nodes under n.
func TextContent(n *Node) string {
	var b []byte
	Walk(n, func(cur *Node) bool {
		if cur.Kind == KindText {
			b = append(b, cur.Text...)
		}
		return true
	})
	return string(b)
}
