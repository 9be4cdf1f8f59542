// Package middleware provides fiber.Middleware implementations for
// observability.
//
// # Prometheus Metrics
//
// Prometheus counts and times every fiber render, labeled by component:
//   - reconciler_renders_total{component,status}
//   - reconciler_render_duration_seconds{component}
//   - reconciler_render_errors_total{component,error_type}
//
// Register it on a root and expose the registry:
//
//	reg := prometheus.NewRegistry()
//	root := fiber.NewRoot(t, fiber.WithMiddleware(
//	    middleware.Prometheus(middleware.WithRegistry(reg)),
//	))
//	middleware.RegisterRootStats(reg, "reconciler", root)
//
// # OpenTelemetry
//
// OpenTelemetry starts a span around every render. The span context is
// passed down the chain, so components see it through Ctx.Context():
//
//	fiber.WithMiddleware(middleware.OpenTelemetry(
//	    middleware.WithTracerName("my-app"),
//	))
//
// # Logging
//
// Logger logs renders that fail or exceed a duration threshold.
package middleware
