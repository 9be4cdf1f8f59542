package fiber

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vango-dev/reconciler/pkg/vdom"
)

func TestDispatchQueueFull(t *testing.T) {
	r, _ := newTestRoot(t, WithDispatchBuffer(1))

	if err := r.Dispatch(func() {}); err != nil {
		t.Fatalf("first Dispatch() = %v", err)
	}
	if err := r.Dispatch(func() {}); !errors.Is(err, ErrDispatchQueueFull) {
		t.Errorf("second Dispatch() = %v, want ErrDispatchQueueFull", err)
	}
}

func TestRunExecutesDispatchedWork(t *testing.T) {
	r, _ := newTestRoot(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	runErr := make(chan error, 1)
	go func() { runErr <- r.Run(ctx) }()

	var count State[int]
	counter := Component("Counter", func(c *Ctx, _ struct{}) *vdom.Node {
		count = UseState(c, 0)
		return vdom.Textf("%d", count.Get())
	})

	if err := r.Do(ctx, func() error { return r.Mount(counter.El(struct{}{})) }); err != nil {
		t.Fatalf("Do(Mount) = %v", err)
	}
	for i := 1; i <= 3; i++ {
		n := i
		if err := r.Do(ctx, func() error { return count.Set(n) }); err != nil {
			t.Fatalf("Do(Set) = %v", err)
		}
	}

	var text string
	if err := r.Do(ctx, func() error {
		text = vdom.TextContent(r.Tree())
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if text != "3" {
		t.Errorf("text = %q, want 3", text)
	}

	wantErr := errors.New("custom")
	if err := r.Do(ctx, func() error { return wantErr }); !errors.Is(err, wantErr) {
		t.Errorf("Do() = %v, want custom error", err)
	}

	// A panicking function does not stop the executor.
	_ = r.Do(ctx, func() error { panic("boom") })
	if err := r.Do(ctx, func() error { return nil }); err != nil {
		t.Errorf("Do() after panic = %v", err)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	select {
	case err := <-runErr:
		if err != nil {
			t.Errorf("Run() = %v, want nil after Close", err)
		}
	case <-ctx.Done():
		t.Fatal("Run did not return after Close")
	}

	if err := r.Dispatch(func() {}); !errors.Is(err, ErrRootClosed) {
		t.Errorf("Dispatch() after Close = %v, want ErrRootClosed", err)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	r, _ := newTestRoot(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := r.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}
