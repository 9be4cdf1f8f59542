package vdom

import "testing"

func TestWalkOrder(t *testing.T) {
	tree := Div(ID("a"),
		Span(ID("b"), Text("x")),
		P(ID("c")),
	)

	var ids []string
	Walk(tree, func(n *Node) bool {
		if id, ok := n.ElementProps()["id"].(string); ok {
			ids = append(ids, id)
		}
		return true
	})

	want := []string{"a", "b", "c"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestComponentsStopsAtPlaceholders(t *testing.T) {
	inner := Build(namedComp("Inner"), nil)
	outer := Build(namedComp("Outer"), nil, inner)
	tree := Div(outer, Ul(Li(Build(namedComp("Item"), nil))))

	got := Components(tree)
	if len(got) != 2 {
		t.Fatalf("len(Components) = %d, want 2", len(got))
	}
	if got[0].ComponentName() != "Outer" || got[1].ComponentName() != "Item" {
		t.Errorf("Components = [%s %s]", got[0].ComponentName(), got[1].ComponentName())
	}
}

func TestFindByIDAndTextContent(t *testing.T) {
	tree := Div(Span(ID("label"), Text("Count: "), Textf("%d", 5)))

	n := FindByID(tree, "label")
	if n == nil {
		t.Fatal("FindByID returned nil")
	}
	if got := TextContent(n); got != "Count: 5" {
		t.Errorf("TextContent = %q, want %q", got, "Count: 5")
	}
	if FindByID(tree, "missing") != nil {
		t.Error("FindByID(missing) should be nil")
	}
}
