package vdom

import "fmt"

// Text creates a text node.
func Text(content string) *Node {
	return &Node{
		Kind: KindText,
		Comp: TagText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *Node {
	return Text(fmt.Sprintf(format, args...))
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *Node {
	var nodes []*Node
	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case *Node:
			if v != nil {
				nodes = append(nodes, v)
			}
		case []*Node:
			nodes = appendNodes(nodes, v)
		case string:
			nodes = append(nodes, Text(v))
		}
	}
	return Build(TagFragment, nil, nodes...)
}

// If returns node if condition is true, nil otherwise.
func If(condition bool, node *Node) *Node {
	if condition {
		return node
	}
	return nil
}

// Range maps a slice to nodes, dropping nil results.
func Range[T any](items []T, fn func(item T, index int) *Node) []*Node {
	result := make([]*Node, 0, len(items))
	for i, item := range items {
		if n := fn(item, i); n != nil {
			result = append(result, n)
		}
	}
	return result
}
