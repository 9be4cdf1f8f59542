package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/reconciler/pkg/fiber"
	"github.com/vango-dev/reconciler/pkg/vdom"
)

func TestLoggerLogsErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r := fiber.NewRoot(fiber.Discard,
		fiber.WithLogger(quietLogger()),
		fiber.WithMiddleware(Logger(logger, 0)),
	)
	err := r.Mount(vdom.Div(broken.El(struct{}{}), label.El("x")))
	if !errors.Is(err, fiber.ErrComponentPanic) {
		t.Fatalf("Mount() error = %v", err)
	}

	out := buf.String()
	if strings.Count(out, "render error") != 1 {
		t.Errorf("log = %q, want one render error", out)
	}
	if !strings.Contains(out, "component=Broken") {
		t.Errorf("log = %q, want component=Broken", out)
	}
}

func TestLoggerSlowRenders(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	newRoot(t, Logger(logger, 1))

	if strings.Count(buf.String(), "slow render") != 3 {
		t.Errorf("log = %q, want three slow renders", buf.String())
	}
}
