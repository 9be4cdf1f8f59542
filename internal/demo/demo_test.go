package demo

import (
	"errors"
	"testing"

	"github.com/vango-dev/reconciler/pkg/vtest"
)

func TestAppInitialRender(t *testing.T) {
	h := vtest.Mount(t, App.El(AppProps{Title: "Demo"}))

	h.ExpectContains("<h1>Demo</h1>")
	h.ExpectText("summary", "1 counters, step 1")
	h.ExpectText("c1-value", "0")
	h.ExpectText("c1-parity", "even")

	if got := h.Stats().Renders; got != 4 {
		t.Errorf("Renders = %d, want 4 (Root, App, Toolbar, Counter)", got)
	}
}

func TestCounterClicks(t *testing.T) {
	h := vtest.Mount(t, App.El(AppProps{}))

	h.Click("c1-inc")
	h.Click("c1-inc")
	h.Click("c1-inc")
	h.ExpectText("c1-value", "3")
	h.ExpectText("c1-parity", "odd")
	h.Click("c1-dec")
	h.ExpectText("c1-value", "2")
	h.ExpectContains(`data-renders="5"`)

	// Counter renders do not touch the App or the Toolbar.
	if got := h.Stats().Renders; got != 8 {
		t.Errorf("Renders = %d, want 8", got)
	}
}

func TestAddRemoveCounters(t *testing.T) {
	h := vtest.Mount(t, App.El(AppProps{}))
	h.Click("c1-inc")

	h.Click("add")
	h.Click("add")
	h.ExpectText("summary", "3 counters, step 1")
	h.ExpectText("c1-value", "1")
	h.ExpectText("c3-value", "0")

	// Each App render skips the memoized Toolbar and the unchanged
	// counters.
	if got := h.Stats().Skipped; got != 5 {
		t.Errorf("Skipped = %d, want 5", got)
	}

	h.Click("remove")
	h.ExpectText("summary", "2 counters, step 1")
	h.ExpectNotContains(`id="c3"`)
	if got := len(h.Target.Unmounted()); got != 1 {
		t.Errorf("unmounted = %d, want 1", got)
	}

	// Ids keep increasing after a removal.
	h.Click("add")
	h.ExpectText("c4-value", "0")
}

func TestStepChange(t *testing.T) {
	h := vtest.Mount(t, App.El(AppProps{}))
	h.Click("c1-inc")

	h.Update(App.El(AppProps{Step: 5}))
	h.ExpectText("summary", "1 counters, step 5")
	h.Click("c1-inc")
	h.ExpectText("c1-value", "6")
	h.Click("c1-dec")
	h.ExpectText("c1-value", "1")
}

func TestClickHelper(t *testing.T) {
	h := vtest.Mount(t, App.El(AppProps{}))

	if err := Click(h.Root, "c1-inc"); err != nil {
		t.Fatalf("Click() error = %v", err)
	}
	if err := Click(h.Root, "c1-label"); !errors.Is(err, ErrNoHandler) {
		t.Errorf("Click(no handler) error = %v, want ErrNoHandler", err)
	}
	if err := Click(h.Root, "missing"); !errors.Is(err, ErrNoHandler) {
		t.Errorf("Click(missing) error = %v, want ErrNoHandler", err)
	}

	views := Counters(h.Tree())
	if len(views) != 1 {
		t.Fatalf("Counters() = %d, want 1", len(views))
	}
	want := CounterView{ID: "c1", Label: "Counter c1", Value: 1, Parity: "odd"}
	if views[0] != want {
		t.Errorf("Counters()[0] = %+v, want %+v", views[0], want)
	}
}
