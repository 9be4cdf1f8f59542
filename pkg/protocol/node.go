package protocol

import "github.com/vango-dev/reconciler/pkg/vdom"

// NodeWire is the serializable form of a node. Event handlers and
// component values are dropped; component placeholders keep their name,
// key and fiber handle.
type NodeWire struct {
	Kind     vdom.Kind
	Tag      string // Element tag, or component name for placeholders
	Key      string
	Attrs    []WireAttr // Sorted by key
	Children []*NodeWire
	Text     string
	Fiber    uint64 // Child fiber handle for placeholders
}

// WireAttr is a string attribute.
type WireAttr struct {
	Key   string
	Value string
}

// NodeToWire converts n to its wire form.
func NodeToWire(n *vdom.Node) *NodeWire {
	if n == nil {
		return nil
	}

	w := &NodeWire{
		Kind:  n.Kind,
		Tag:   n.Tag,
		Key:   n.Key,
		Text:  n.Text,
		Fiber: n.Fiber,
	}
	if n.Kind == vdom.KindComponent {
		w.Tag = n.ComponentName()
	}
	for _, a := range vdom.EffectiveAttrs(n) {
		s, _ := a.Value.(string)
		w.Attrs = append(w.Attrs, WireAttr{Key: a.Key, Value: s})
	}
	if len(n.Children) > 0 {
		w.Children = make([]*NodeWire, 0, len(n.Children))
		for _, child := range n.Children {
			if child != nil {
				w.Children = append(w.Children, NodeToWire(child))
			}
		}
	}
	return w
}

const nullNode = 0xFF

// EncodeNode appends the encoding of n to e.
func EncodeNode(e *Encoder, n *NodeWire) {
	if n == nil {
		e.WriteByte(nullNode)
		return
	}

	e.WriteByte(byte(n.Kind))
	switch n.Kind {
	case vdom.KindText:
		e.WriteString(n.Text)
		return
	case vdom.KindElement:
		e.WriteString(n.Tag)
		e.WriteString(n.Key)
		e.WriteUvarint(uint64(len(n.Attrs)))
		for _, a := range n.Attrs {
			e.WriteString(a.Key)
			e.WriteString(a.Value)
		}
	case vdom.KindComponent:
		e.WriteString(n.Tag)
		e.WriteString(n.Key)
		e.WriteUvarint(n.Fiber)
	}
	e.WriteUvarint(uint64(len(n.Children)))
	for _, child := range n.Children {
		EncodeNode(e, child)
	}
}

// DecodeNode decodes a node written by EncodeNode, enforcing MaxNodeDepth.
func DecodeNode(d *Decoder) (*NodeWire, error) {
	return decodeNode(d, 0)
}

func decodeNode(d *Decoder, depth int) (*NodeWire, error) {
	if err := checkDepth(depth, MaxNodeDepth); err != nil {
		return nil, err
	}

	kind, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	if kind == nullNode {
		return nil, nil
	}

	n := &NodeWire{Kind: vdom.Kind(kind)}
	switch n.Kind {
	case vdom.KindText:
		n.Text, err = d.ReadString()
		return n, err
	case vdom.KindElement:
		if n.Tag, err = d.ReadString(); err != nil {
			return nil, err
		}
		if n.Key, err = d.ReadString(); err != nil {
			return nil, err
		}
		count, err := d.ReadCollectionCount()
		if err != nil {
			return nil, err
		}
		if count > 0 {
			n.Attrs = make([]WireAttr, count)
		}
		for i := range n.Attrs {
			if n.Attrs[i].Key, err = d.ReadString(); err != nil {
				return nil, err
			}
			if n.Attrs[i].Value, err = d.ReadString(); err != nil {
				return nil, err
			}
		}
	case vdom.KindComponent:
		if n.Tag, err = d.ReadString(); err != nil {
			return nil, err
		}
		if n.Key, err = d.ReadString(); err != nil {
			return nil, err
		}
		if n.Fiber, err = d.ReadUvarint(); err != nil {
			return nil, err
		}
	case vdom.KindFragment:
	default:
		return nil, ErrInvalidKind
	}

	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}
	if count > 0 {
		n.Children = make([]*NodeWire, 0, count)
	}
	for i := 0; i < count; i++ {
		child, err := decodeNode(d, depth+1)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}
