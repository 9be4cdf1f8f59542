package render

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/vango-dev/reconciler/pkg/vdom"
)

// maxDepth bounds element nesting.
const maxDepth = 256

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string
}

// Renderer writes node trees as HTML. A Renderer holds no per-render
// state and may be used concurrently.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a node tree to a string.
func (r *Renderer) RenderToString(node *vdom.Node) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a node tree to w.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.Node) error {
	bw := bufio.NewWriter(w)
	if err := r.renderNode(bw, node, 0); err != nil {
		return err
	}
	return bw.Flush()
}

func (r *Renderer) renderNode(w *bufio.Writer, node *vdom.Node, depth int) error {
	if node == nil {
		return nil
	}
	if depth > maxDepth {
		return fmt.Errorf("render: tree deeper than %d", maxDepth)
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		w.WriteString(escapeHTML(node.Text))
		return nil
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := r.renderNode(w, child, depth); err != nil {
				return err
			}
		}
		return nil
	case vdom.KindComponent:
		r.writeIndent(w, depth)
		fmt.Fprintf(w, "<!--%s-->", escapeComment(node.ComponentName()))
		r.newline(w, depth)
		return nil
	default:
		return fmt.Errorf("render: unknown node kind %d", node.Kind)
	}
}

func (r *Renderer) renderElement(w *bufio.Writer, node *vdom.Node, depth int) error {
	tag := node.Tag
	if tag == "" || strings.ContainsAny(tag, " \t\n<>\"'/=") {
		return fmt.Errorf("render: invalid tag %q", tag)
	}

	r.writeIndent(w, depth)
	w.WriteByte('<')
	w.WriteString(tag)
	r.renderAttributes(w, node)
	w.WriteByte('>')

	if vdom.IsVoidElement(tag) {
		r.newline(w, depth)
		return nil
	}

	block := r.config.Pretty && depth != inline && len(node.Children) > 0 && !isInlineElement(tag) && !textOnly(node)
	if block {
		w.WriteByte('\n')
	}
	childDepth := depth + 1
	if !block {
		childDepth = inline
	}
	for _, child := range node.Children {
		if err := r.renderNode(w, child, childDepth); err != nil {
			return err
		}
	}
	if block {
		r.writeIndent(w, depth)
	}

	w.WriteString("</")
	w.WriteString(tag)
	w.WriteByte('>')
	r.newline(w, depth)
	return nil
}

func (r *Renderer) renderAttributes(w *bufio.Writer, node *vdom.Node) {
	for _, a := range vdom.EffectiveAttrs(node) {
		s, _ := a.Value.(string)
		if isBooleanAttr(a.Key) && s == "" {
			w.WriteByte(' ')
			w.WriteString(a.Key)
			continue
		}
		fmt.Fprintf(w, ` %s="%s"`, a.Key, escapeAttr(s))
	}
}

// textOnly reports whether every child is a text node.
func textOnly(node *vdom.Node) bool {
	for _, c := range node.Children {
		if c != nil && c.Kind != vdom.KindText {
			return false
		}
	}
	return true
}

// inline is the depth of nodes rendered inside inline content, where
// pretty printing adds no whitespace.
const inline = -1

func (r *Renderer) writeIndent(w *bufio.Writer, depth int) {
	if !r.config.Pretty || depth == inline {
		return
	}
	for i := 0; i < depth; i++ {
		w.WriteString(r.config.Indent)
	}
}

func (r *Renderer) newline(w *bufio.Writer, depth int) {
	if r.config.Pretty && depth != inline {
		w.WriteByte('\n')
	}
}
