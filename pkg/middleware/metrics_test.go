package middleware

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vango-dev/reconciler/pkg/fiber"
	"github.com/vango-dev/reconciler/pkg/vdom"
)

func TestPrometheusCountsRenders(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := Prometheus(WithRegistry(reg), WithNamespace("test"))
	newRoot(t, m)

	if got := testutil.ToFloat64(m.rendersTotal.WithLabelValues("Label", "success")); got != 2 {
		t.Errorf("renders_total{Label,success} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.rendersTotal.WithLabelValues("Root", "success")); got != 1 {
		t.Errorf("renders_total{Root,success} = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.renderDuration); got != 2 {
		t.Errorf("render_duration series = %d, want 2", got)
	}

	n, err := testutil.GatherAndCount(reg, "test_renders_total")
	if err != nil {
		t.Fatalf("GatherAndCount() error = %v", err)
	}
	if n != 2 {
		t.Errorf("test_renders_total series = %d, want 2", n)
	}
}

func TestPrometheusCountsErrors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := Prometheus(WithRegistry(reg))

	r := fiber.NewRoot(fiber.Discard,
		fiber.WithLogger(quietLogger()),
		fiber.WithMiddleware(m),
	)
	err := r.Mount(vdom.Div(broken.El(struct{}{}), label.El("ok")))
	if !errors.Is(err, fiber.ErrComponentPanic) {
		t.Fatalf("Mount() error = %v, want ErrComponentPanic", err)
	}

	if got := testutil.ToFloat64(m.renderErrors.WithLabelValues("Broken", "panic")); got != 1 {
		t.Errorf("render_errors_total{Broken,panic} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.rendersTotal.WithLabelValues("Broken", "error")); got != 1 {
		t.Errorf("renders_total{Broken,error} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.rendersTotal.WithLabelValues("Label", "success")); got != 1 {
		t.Errorf("renders_total{Label,success} = %v, want 1", got)
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&fiber.HookError{Err: fiber.ErrHookCreatedAfterMount}, "hook_after_mount"},
		{&fiber.HookError{Err: fiber.ErrHookTypeMismatch}, "hook_mismatch"},
		{fmt.Errorf("render: %w", fiber.ErrComponentPanic), "panic"},
		{fiber.ErrInvalidProps, "invalid_props"},
		{fiber.ErrUseAfterUnmount, "use_after_unmount"},
		{context.Canceled, "canceled"},
		{errors.New("disk full"), "internal"},
	}
	for _, tt := range tests {
		if got := categorizeError(tt.err); got != tt.want {
			t.Errorf("categorizeError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestRegisterRootStats(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := newRoot(t)
	if err := RegisterRootStats(reg, "test", r); err != nil {
		t.Fatalf("RegisterRootStats() error = %v", err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	values := make(map[string]float64)
	for _, mf := range families {
		metric := mf.GetMetric()[0]
		if c := metric.GetCounter(); c != nil {
			values[mf.GetName()] = c.GetValue()
		}
		if g := metric.GetGauge(); g != nil {
			values[mf.GetName()] = g.GetValue()
		}
	}

	want := map[string]float64{
		"test_root_commits_total":   3,
		"test_root_passes_total":    1,
		"test_root_live_fibers":     3,
		"test_root_pending_fibers":  0,
		"test_root_destroyed_total": 0,
	}
	for name, v := range want {
		if got, ok := values[name]; !ok || got != v {
			t.Errorf("%s = %v (present %v), want %v", name, got, ok, v)
		}
	}

	if err := RegisterRootStats(reg, "test", r); err == nil {
		t.Error("second RegisterRootStats() on the same registry succeeded")
	}
}
