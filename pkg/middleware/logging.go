package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/vango-dev/reconciler/pkg/fiber"
)

// Logger logs failed renders at warn level and renders slower than slow
// at info level. A zero slow disables slow-render logging.
func Logger(logger *slog.Logger, slow time.Duration) fiber.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return fiber.MiddlewareFunc(func(ctx context.Context, info fiber.RenderInfo, next func(context.Context) error) error {
		start := time.Now()
		err := next(ctx)
		elapsed := time.Since(start)

		switch {
		case err != nil:
			logger.Warn("render error",
				"fiber", info.Fiber.String(),
				"component", info.Component,
				"duration", elapsed,
				"error", err)
		case slow > 0 && elapsed >= slow:
			logger.Info("slow render",
				"fiber", info.Fiber.String(),
				"component", info.Component,
				"duration", elapsed)
		}
		return err
	})
}
