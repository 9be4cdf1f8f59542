package render

import "strings"

var (
	htmlReplacer = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	attrReplacer = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
		"\n", "&#10;",
		"\r", "&#13;",
		"\t", "&#9;",
	)
)

// escapeHTML escapes text content.
func escapeHTML(s string) string {
	return htmlReplacer.Replace(s)
}

// escapeAttr escapes attribute values. Whitespace control characters are
// escaped as well.
func escapeAttr(s string) string {
	return attrReplacer.Replace(s)
}

// escapeComment keeps s from terminating an HTML comment.
func escapeComment(s string) string {
	return strings.ReplaceAll(s, "--", "- -")
}
