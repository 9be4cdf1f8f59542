package vdom

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "click" becomes "onclick").
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// OnClick handles click events.
func OnClick(handler any) EventHandler { return event("click", handler) }

// OnInput handles input events.
func OnInput(handler any) EventHandler { return event("input", handler) }

// OnChange handles change events.
func OnChange(handler any) EventHandler { return event("change", handler) }

// OnSubmit handles form submission.
func OnSubmit(handler any) EventHandler { return event("submit", handler) }

// Trigger invokes the handler registered for event on n. It reports false
// when no handler is registered or the handler has an unsupported shape.
func Trigger(n *Node, event string) bool {
	switch h := n.Handler(event).(type) {
	case Invoker:
		h.Invoke()
	case func():
		h()
	default:
		return false
	}
	return true
}
