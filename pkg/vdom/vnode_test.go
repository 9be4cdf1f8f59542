package vdom

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindComponent, "Component"},
		{Kind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("Kind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNodeIsInteractive(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want bool
	}{
		{"nil node", nil, false},
		{"text node", Text("hello"), false},
		{"element without handlers", Div(Class("test")), false},
		{"element with onclick", Button(OnClick(func() {})), true},
		{"element with nil handler", Button(OnClick(nil)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.IsInteractive(); got != tt.want {
				t.Errorf("IsInteractive() = %v, want %v", got, tt.want)
			}
		})
	}
}

type namedComp string

func (c namedComp) ComponentName() string { return string(c) }

func TestNodeComponentName(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{"nil", nil, ""},
		{"text", Text("x"), "#text"},
		{"fragment", Fragment(), "#fragment"},
		{"element", Div(), "div"},
		{"component", Build(namedComp("Counter"), nil), "Counter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.ComponentName(); got != tt.want {
				t.Errorf("ComponentName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTrigger(t *testing.T) {
	clicks := 0
	btn := Button(OnClick(func() { clicks++ }))

	if !Trigger(btn, "click") {
		t.Fatal("Trigger(click) = false, want true")
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if Trigger(btn, "input") {
		t.Error("Trigger(input) = true for unregistered event")
	}
	if Trigger(Button(OnClick("not a func")), "click") {
		t.Error("Trigger should reject unsupported handler shapes")
	}
}
