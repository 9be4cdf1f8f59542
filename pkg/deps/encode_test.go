package deps

import (
	"bytes"
	"testing"
)

type point struct{ X, Y int }

func TestOfCanonical(t *testing.T) {
	tests := []struct {
		name  string
		a, b  []any
		equal bool
	}{
		{"same ints", []any{1, 2}, []any{1, 2}, true},
		{"different ints", []any{1, 2}, []any{1, 3}, false},
		{"int vs string", []any{1}, []any{"\x01"}, false},
		{"int vs uint", []any{int(1)}, []any{uint(1)}, false},
		{"int widths agree", []any{int8(5)}, []any{int64(5)}, true},
		{"string boundary", []any{"ab", "c"}, []any{"a", "bc"}, false},
		{"nil vs false", []any{nil}, []any{false}, false},
		{"bytes vs string", []any{[]byte("x")}, []any{"x"}, false},
		{"struct fallback", []any{point{1, 2}}, []any{point{1, 2}}, true},
		{"struct fallback differs", []any{point{1, 2}}, []any{point{2, 1}}, false},
		{"empty", nil, []any{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bytes.Equal(Of(tt.a...), Of(tt.b...))
			if got != tt.equal {
				t.Errorf("Of(%v) == Of(%v) is %v, want %v", tt.a, tt.b, got, tt.equal)
			}
		})
	}
}

func TestAppendOfReusesBuffer(t *testing.T) {
	buf := make([]byte, 0, 64)
	out := AppendOf(buf, "step", 3)

	if &out[:1][0] != &buf[:1][0] {
		t.Error("AppendOf did not reuse the provided buffer")
	}
	if !bytes.Equal(out, Of("step", 3)) {
		t.Error("AppendOf and Of disagree")
	}
}

func TestOfWithRetained(t *testing.T) {
	var r Retained
	if !r.Update(Of("a", 1)) {
		t.Error("first update should change")
	}
	if r.Update(Of("a", 1)) {
		t.Error("equal encoded deps should not change")
	}
	if !r.Update(Of("a", 2)) {
		t.Error("different encoded deps should change")
	}
}
