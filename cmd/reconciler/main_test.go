package main

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vango-dev/reconciler/internal/config"
	"github.com/vango-dev/reconciler/internal/demo"
	"github.com/vango-dev/reconciler/internal/errors"
	"github.com/vango-dev/reconciler/pkg/target"
)

func testApp(t *testing.T, kind string, withStream bool) *app {
	t.Helper()
	cfg, err := loadConfig(t.TempDir(), kind)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	a, err := newApp(cfg, io.Discard, withStream)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(t.TempDir(), "")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Target.Kind != config.TargetMemory {
		t.Errorf("Target.Kind = %q, want memory", cfg.Target.Kind)
	}
	if !cfg.Metrics.Enabled {
		t.Error("metrics should be enabled by default")
	}
}

func TestLoadConfigTargetOverride(t *testing.T) {
	cfg, err := loadConfig(t.TempDir(), "sqlite")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Target.SQL.Driver != "sqlite" || cfg.Target.SQL.DSN != ":memory:" {
		t.Errorf("SQL = %+v, want sqlite :memory:", cfg.Target.SQL)
	}

	_, err = loadConfig(t.TempDir(), "floppy")
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Code != "R102" {
		t.Errorf("unknown kind error = %v, want R102", err)
	}
}

func TestNewAppTargets(t *testing.T) {
	if _, ok := testApp(t, "memory", false).target.(*target.Memory); !ok {
		t.Error("memory kind should build a Memory target")
	}

	sqlApp := testApp(t, "sqlite", false)
	if _, ok := sqlApp.target.(*target.SQL); !ok || sqlApp.db == nil {
		t.Error("sqlite kind should build a SQL target with an open database")
	}

	streamApp := testApp(t, "stream", false)
	if streamApp.stream == nil || streamApp.target != streamApp.stream {
		t.Error("stream kind should use the stream as the target")
	}

	multi, ok := testApp(t, "memory", true).target.(target.Multi)
	if !ok || len(multi) != 2 {
		t.Fatalf("withStream should fan out to memory and stream, got %T", multi)
	}
}

func TestRunDemo(t *testing.T) {
	a := testApp(t, "memory", false)

	var buf bytes.Buffer
	if err := runDemo(a.root, &buf, 3, 2, false); err != nil {
		t.Fatalf("runDemo: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `id="c1-value"`) {
		t.Errorf("markup missing counter value:\n%s", out)
	}

	counters := demo.Counters(a.root.Tree())
	if len(counters) != 1 || counters[0].Value != 6 {
		t.Errorf("counters = %+v, want c1 at 6", counters)
	}

	mem := a.target.(*target.Memory)
	// Mount commits Root, App, Toolbar and Counter; each click one Counter.
	if got := len(mem.Commits()); got != 7 {
		t.Errorf("commits = %d, want 7", got)
	}
}

func TestRunDemoSQLite(t *testing.T) {
	a := testApp(t, "sqlite", false)

	if err := runDemo(a.root, io.Discard, 2, 1, true); err != nil {
		t.Fatalf("runDemo: %v", err)
	}
	n, err := a.target.(*target.SQL).Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 4 {
		t.Errorf("rows = %d, want one per live fiber (4)", n)
	}
}

func TestPrintStats(t *testing.T) {
	a := testApp(t, "memory", false)
	if err := runDemo(a.root, io.Discard, 1, 1, false); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	printStats(&buf, "memory", a.root.Stats())
	if !strings.Contains(buf.String(), "committed to memory target") {
		t.Errorf("stats output = %q", buf.String())
	}
	if strings.Contains(buf.String(), "errors") {
		t.Errorf("no errors expected, got %q", buf.String())
	}
}

func TestRouter(t *testing.T) {
	a := testApp(t, "memory", true)

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		a.root.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-runDone
	})

	if err := a.root.Do(ctx, func() error {
		return a.root.Mount(demo.App.El(demo.AppProps{}))
	}); err != nil {
		t.Fatalf("mount: %v", err)
	}

	router := newRouter(a)
	do := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("healthz", func(t *testing.T) {
		if rec := do("GET", "/healthz"); rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("page", func(t *testing.T) {
		rec := do("GET", "/")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		body := rec.Body.String()
		for _, want := range []string{"<!DOCTYPE html>", `id="c1-inc"`, `data-stream="/ws"`, `data-click="/api/click/"`} {
			if !strings.Contains(body, want) {
				t.Errorf("page missing %q", want)
			}
		}
	})

	t.Run("click", func(t *testing.T) {
		if rec := do("POST", "/api/click/c1-inc"); rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204: %s", rec.Code, rec.Body.String())
		}
		var value int
		a.root.Do(ctx, func() error {
			value = demo.Counters(a.root.Tree())[0].Value
			return nil
		})
		if value != 1 {
			t.Errorf("c1 = %d after click, want 1", value)
		}
	})

	t.Run("click unknown", func(t *testing.T) {
		if rec := do("POST", "/api/click/nope"); rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("metrics", func(t *testing.T) {
		rec := do("GET", "/metrics")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		for _, want := range []string{"reconciler_renders_total", "reconciler_root_commits_total"} {
			if !strings.Contains(rec.Body.String(), want) {
				t.Errorf("metrics missing %s", want)
			}
		}
	})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTUIModel(t *testing.T) {
	a := testApp(t, "memory", false)
	m, err := newTUIModel(a.root)
	if err != nil {
		t.Fatalf("newTUIModel: %v", err)
	}

	m.Update(runes("+"))
	m.Update(runes("+"))
	if got := m.counters[0].Value; got != 2 {
		t.Errorf("c1 = %d, want 2", got)
	}

	m.Update(runes("a"))
	if len(m.counters) != 2 {
		t.Fatalf("counters = %d after add, want 2", len(m.counters))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(runes("-"))
	if got := m.counters[1].Value; got != -1 {
		t.Errorf("c2 = %d, want -1", got)
	}

	m.Update(runes("r"))
	if len(m.counters) != 1 || m.selected != 0 {
		t.Errorf("after remove: %d counters, selected %d", len(m.counters), m.selected)
	}

	if !strings.Contains(m.View(), "Counter c1") {
		t.Errorf("view missing counter label:\n%s", m.View())
	}
}

func TestTUIModelStep(t *testing.T) {
	a := testApp(t, "memory", false)
	m, err := newTUIModel(a.root)
	if err != nil {
		t.Fatalf("newTUIModel: %v", err)
	}

	m.Update(runes("s"))
	if !m.editing {
		t.Fatal("s should start editing the step")
	}
	m.Update(runes("5"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.editing || m.step != 5 {
		t.Fatalf("editing=%v step=%d, want step 5", m.editing, m.step)
	}

	m.Update(runes("+"))
	if got := m.counters[0].Value; got != 5 {
		t.Errorf("c1 = %d, want 5", got)
	}

	m.Update(runes("s"))
	m.Update(runes("x"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.err == nil || m.step != 5 {
		t.Errorf("invalid step should be rejected, err=%v step=%d", m.err, m.step)
	}
}

func TestQuit(t *testing.T) {
	a := testApp(t, "memory", false)
	m, err := newTUIModel(a.root)
	if err != nil {
		t.Fatal(err)
	}
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"demo", "serve", "tui", "version"} {
		if !names[want] {
			t.Errorf("missing command %q", want)
		}
	}
}

func TestVersionOutput(t *testing.T) {
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"targets:", "memory, sqlite, sql, s3, stream", "sqlite"} {
		if !strings.Contains(out, want) {
			t.Errorf("version output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	cmd = newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"version", "--short"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version --short: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != buildVersion() {
		t.Errorf("short version = %q, want %q", got, buildVersion())
	}
}
