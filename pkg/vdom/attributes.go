package vdom

import "strings"

// attr creates an attribute with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Key sets the reconciliation key of the element.
func Key(key string) Attr { return attr("key", key) }

// ID sets the element's id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the element's class attribute from one or more class names.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// Data sets a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Role sets the ARIA role.
func Role(role string) Attr { return attr("role", role) }

// TitleAttr sets the title attribute (tooltip).
func TitleAttr(title string) Attr { return attr("title", title) }

// Type sets the type attribute (input, button).
func Type(t string) Attr { return attr("type", t) }

// Value sets the value attribute.
func Value(value string) Attr { return attr("value", value) }

// Disabled marks the element as disabled.
func Disabled() Attr { return attr("disabled", true) }

// Hidden hides the element.
func Hidden() Attr { return attr("hidden", true) }

// AttrIf returns the attribute when cond is true, and an empty attribute
// (ignored by element constructors) otherwise.
func AttrIf(cond bool, a Attr) Attr {
	if !cond {
		return Attr{}
	}
	return a
}
