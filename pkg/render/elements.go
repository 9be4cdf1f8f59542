package render

// inlineElements don't get newlines in pretty-printed output.
var inlineElements = map[string]bool{
	"a":      true,
	"abbr":   true,
	"b":      true,
	"button": true,
	"code":   true,
	"em":     true,
	"i":      true,
	"kbd":    true,
	"label":  true,
	"small":  true,
	"span":   true,
	"strong": true,
	"sub":    true,
	"sup":    true,
	"time":   true,
	"u":      true,
}

func isInlineElement(tag string) bool {
	return inlineElements[tag]
}

// booleanAttrs are rendered as a bare name when set.
var booleanAttrs = map[string]bool{
	"autofocus": true,
	"checked":   true,
	"disabled":  true,
	"hidden":    true,
	"multiple":  true,
	"open":      true,
	"readonly":  true,
	"required":  true,
	"selected":  true,
}

func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}
