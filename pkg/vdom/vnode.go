package vdom

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement   Kind = iota // <div>, <button>, etc.
	KindText                  // Plain text node
	KindFragment              // Grouping without wrapper
	KindComponent             // Function component placeholder
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// Node is a rendered output node.
type Node struct {
	Kind     Kind      // Node type
	Tag      string    // Element tag name (e.g., "div")
	Comp     Component // Component that produced this node's type
	Key      string    // Reconciliation key
	Props    any       // Props for KindElement, component props for KindComponent
	Children []*Node   // Child nodes
	Text     string    // For KindText

	// Fiber is the packed handle of the child fiber rendering a
	// KindComponent placeholder. Zero until the runtime reconciles it.
	Fiber uint64
}

// Props holds attributes and event handlers of an intrinsic element.
type Props map[string]any

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler attached to an element.
type EventHandler struct {
	Event   string // "click", "input", etc.
	Handler any    // Value invoked by the host (see Invoker)
}

// Invoker is implemented by handler values that can be triggered without
// arguments, such as callbacks produced by the callback hook.
type Invoker interface {
	Invoke()
}

// Component is anything that can appear as the type of a node.
type Component interface {
	ComponentName() string
}

// Keyed is implemented by props that carry a stable reconciliation key.
type Keyed interface {
	GetKey() string
}

// Tag is an intrinsic element component, such as "div".
type Tag string

// ComponentName implements Component.
func (t Tag) ComponentName() string {
	return string(t)
}

// Intrinsic tags with special node kinds.
const (
	TagText     Tag = "#text"
	TagFragment Tag = "#fragment"
)

// ElementProps returns the element props of n, or nil for non-elements.
func (n *Node) ElementProps() Props {
	if n == nil || n.Kind != KindElement {
		return nil
	}
	p, _ := n.Props.(Props)
	return p
}

// Handler returns the handler registered for event (e.g. "click") on an
// element node, or nil.
func (n *Node) Handler(event string) any {
	return n.ElementProps()["on"+event]
}

// IsInteractive returns true if this node has event handlers.
func (n *Node) IsInteractive() bool {
	for key, v := range n.ElementProps() {
		if v != nil && isEventHandler(key) {
			return true
		}
	}
	return false
}

// ComponentName returns the name of the component that produced n.
func (n *Node) ComponentName() string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case KindText:
		return string(TagText)
	case KindFragment:
		return string(TagFragment)
	case KindElement:
		return n.Tag
	}
	if n.Comp == nil {
		return ""
	}
	return n.Comp.ComponentName()
}

func isEventHandler(key string) bool {
	return len(key) > 2 && key[0] == 'o' && key[1] == 'n'
}
