package deps

import (
	"bytes"
	"testing"
)

func TestRetainedUpdate(t *testing.T) {
	tests := []struct {
		name    string
		initial []byte // nil means uninitialized
		next    []byte
		want    bool
	}{
		{"first update changes", nil, []byte{1, 2}, true},
		{"first update empty changes", nil, []byte{}, true},
		{"equal bytes unchanged", []byte{1, 2, 3}, []byte{1, 2, 3}, false},
		{"empty to empty unchanged", []byte{}, []byte{}, false},
		{"same length different bytes", []byte{1, 2, 3}, []byte{1, 9, 3}, true},
		{"shorter", []byte{1, 2, 3}, []byte{1, 2}, true},
		{"longer", []byte{1}, []byte{1, 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Retained
			if tt.initial != nil {
				r.Update(tt.initial)
			}
			if got := r.Update(tt.next); got != tt.want {
				t.Errorf("Update() = %v, want %v", got, tt.want)
			}
			if !bytes.Equal(r.Bytes(), tt.next) {
				t.Errorf("Bytes() = %v, want %v", r.Bytes(), tt.next)
			}
			if !r.Initialized() {
				t.Error("Initialized() = false after Update")
			}
		})
	}
}

func TestRetainedCopiesInput(t *testing.T) {
	var r Retained
	next := []byte{1, 2, 3}
	r.Update(next)

	next[0] = 9
	if r.Bytes()[0] != 1 {
		t.Error("Retained aliases the caller's slice")
	}
	if !r.Update(next) {
		t.Error("mutated caller slice should be reported as changed")
	}
}

func TestRetainedUnchangedDoesNotAllocate(t *testing.T) {
	var r Retained
	d := []byte("count=5")
	r.Update(d)

	allocs := testing.AllocsPerRun(100, func() {
		if r.Update(d) {
			t.Fatal("Update() reported change for equal bytes")
		}
	})
	if allocs != 0 {
		t.Errorf("Update() allocated %v times, want 0", allocs)
	}
}

func TestRetainedSameLengthReusesStorage(t *testing.T) {
	var r Retained
	r.Update([]byte{1, 2, 3})
	before := &r.Bytes()[0]

	r.Update([]byte{4, 5, 6})
	if &r.Bytes()[0] != before {
		t.Error("same-length change reallocated storage")
	}

	r.Update([]byte{4, 5, 6, 7})
	if len(r.Bytes()) != 4 {
		t.Errorf("len(Bytes()) = %d, want 4", len(r.Bytes()))
	}
}

func TestRetainedReset(t *testing.T) {
	var r Retained
	r.Update([]byte{1})
	r.Reset()

	if r.Initialized() || r.Bytes() != nil {
		t.Error("Reset() did not clear state")
	}
	if !r.Update([]byte{1}) {
		t.Error("Update() after Reset() should report a change")
	}
}
