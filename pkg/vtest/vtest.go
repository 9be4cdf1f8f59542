package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/reconciler/pkg/render"
	"github.com/vango-dev/reconciler/pkg/vdom"
)

// RenderToString renders a node tree and returns the HTML string. It
// returns "" when rendering fails.
func RenderToString(node *vdom.Node) string {
	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(t testing.TB, node *vdom.Node, expected string) {
	t.Helper()
	expectContains(t, RenderToString(node), expected)
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.Node, unexpected string) {
	t.Helper()
	expectNotContains(t, RenderToString(node), unexpected)
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(t testing.TB, node *vdom.Node, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
func ExpectAttribute(t testing.TB, node *vdom.Node, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

func expectContains(t testing.TB, html, expected string) {
	t.Helper()
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

func expectNotContains(t testing.TB, html, unexpected string) {
	t.Helper()
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
