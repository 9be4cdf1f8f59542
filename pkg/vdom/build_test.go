package vdom

import "testing"

type keyedProps struct {
	ID string
}

func (p keyedProps) GetKey() string { return p.ID }

func TestBuildElement(t *testing.T) {
	n := Build(Tag("div"), Props{"class": "card", "key": "k1"}, Text("a"), nil, Text("b"))

	if n.Kind != KindElement {
		t.Fatalf("Kind = %v, want Element", n.Kind)
	}
	if n.Tag != "div" {
		t.Errorf("Tag = %q, want div", n.Tag)
	}
	if n.Key != "k1" {
		t.Errorf("Key = %q, want k1", n.Key)
	}
	if len(n.Children) != 2 {
		t.Errorf("len(Children) = %d, want 2 (nil dropped)", len(n.Children))
	}
}

func TestBuildComponentKey(t *testing.T) {
	n := Build(namedComp("Row"), keyedProps{ID: "row-7"})

	if n.Kind != KindComponent {
		t.Fatalf("Kind = %v, want Component", n.Kind)
	}
	if n.Key != "row-7" {
		t.Errorf("Key = %q, want row-7", n.Key)
	}
	if _, ok := n.Props.(keyedProps); !ok {
		t.Errorf("Props = %T, want keyedProps", n.Props)
	}
}

func TestBuildIntrinsics(t *testing.T) {
	if n := Build(TagText, "hi"); n.Kind != KindText || n.Text != "hi" {
		t.Errorf("Build(TagText) = %+v", n)
	}
	if n := Build(TagFragment, nil, Text("a")); n.Kind != KindFragment || len(n.Children) != 1 {
		t.Errorf("Build(TagFragment) = %+v", n)
	}
	if n := Build(Tag("span"), []Attr{ID("x"), {}}); n.ElementProps()["id"] != "x" {
		t.Errorf("Build with []Attr props = %+v", n.Props)
	}
}

func TestCreateElementArgs(t *testing.T) {
	n := Div(
		nil,
		ID("root"),
		[]Attr{Class("a", "b"), AttrIf(false, Hidden())},
		OnClick(func() {}),
		"text",
		[]*Node{Span(), nil},
		Key("main"),
	)

	props := n.ElementProps()
	if props["id"] != "root" {
		t.Errorf("id = %v", props["id"])
	}
	if props["class"] != "a b" {
		t.Errorf("class = %v", props["class"])
	}
	if _, ok := props["hidden"]; ok {
		t.Error("AttrIf(false) should not set hidden")
	}
	if props["onclick"] == nil {
		t.Error("onclick not set")
	}
	if n.Key != "main" {
		t.Errorf("Key = %q, want main", n.Key)
	}
	if len(n.Children) != 2 {
		t.Errorf("len(Children) = %d, want 2", len(n.Children))
	}
}

func TestEffectiveAttrs(t *testing.T) {
	n := Button(
		Class("btn"),
		ID("inc"),
		Disabled(),
		Attr{Key: "_internal", Value: 1},
		Attr{Key: "data-count", Value: 3},
		Attr{Key: "complex", Value: map[string]int{"a": 1}},
		OnClick(func() {}),
		OnInput(func() {}),
		Key("k"),
	)

	got := EffectiveAttrs(n)
	want := []Attr{
		{"class", "btn"},
		{"data-count", "3"},
		{"data-on", "click input"},
		{"disabled", ""},
		{"id", "inc"},
	}
	if len(got) != len(want) {
		t.Fatalf("EffectiveAttrs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("attr[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
