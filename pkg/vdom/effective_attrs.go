package vdom

import (
	"reflect"
	"sort"
	"strconv"
	"strings"
)

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

// EffectiveAttrs returns the string attributes of an element node, sorted
// by key. Event handlers, the reconciliation key, internal props (prefixed
// with "_") and values with no string form are omitted. Event handlers are
// reported as a data-on attribute listing the handled events.
func EffectiveAttrs(node *Node) []Attr {
	props := node.ElementProps()
	if len(props) == 0 {
		return nil
	}

	attrs := make([]Attr, 0, len(props))
	var events []string
	for key, value := range props {
		if value == nil || key == "key" || strings.HasPrefix(key, "_") {
			continue
		}
		if isEventHandler(key) {
			events = append(events, key[2:])
			continue
		}
		if s, ok := attrValueToString(key, value); ok {
			attrs = append(attrs, Attr{Key: key, Value: s})
		}
	}
	if len(events) > 0 {
		sort.Strings(events)
		attrs = append(attrs, Attr{Key: "data-on", Value: strings.Join(events, " ")})
	}

	sort.Slice(attrs, func(i, j int) bool { return attrs[i].Key < attrs[j].Key })
	return attrs
}

func attrValueToString(key string, value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		if booleanAttrs[strings.ToLower(key)] {
			if v {
				return "", true
			}
			return "", false
		}
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		// Avoid encoding complex structs/maps as attributes unintentionally.
		rv := reflect.ValueOf(value)
		if rv.IsValid() && rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return string(rv.Bytes()), true
		}
		return "", false
	}
}
