package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/reconciler/pkg/fiber"
)

const defaultTracerName = "github.com/vango-dev/reconciler"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer.
	TracerName string

	// TracerProvider provides the tracer. Default: the global provider.
	TracerProvider trace.TracerProvider

	// Filter determines which renders to trace. If nil, all renders are
	// traced.
	Filter func(info fiber.RenderInfo) bool

	// AttributeExtractor adds custom attributes to each span.
	AttributeExtractor func(info fiber.RenderInfo) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithRenderFilter sets a filter function for renders.
func WithRenderFilter(filter func(info fiber.RenderInfo) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(info fiber.RenderInfo) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// OpenTelemetry creates middleware that starts a span around every fiber
// render. The span's context is passed to the rest of the chain and to
// the component. Errors are recorded on the span.
func OpenTelemetry(opts ...OTelOption) fiber.Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(config.TracerName)

	return fiber.MiddlewareFunc(func(ctx context.Context, info fiber.RenderInfo, next func(context.Context) error) error {
		if config.Filter != nil && !config.Filter(info) {
			return next(ctx)
		}

		attrs := []attribute.KeyValue{
			attribute.String("reconciler.fiber", info.Fiber.String()),
			attribute.String("reconciler.component", info.Component),
			attribute.Bool("reconciler.mounted", info.Mounted),
			attribute.Int("reconciler.depth", info.Depth),
		}
		if info.Key != "" {
			attrs = append(attrs, attribute.String("reconciler.key", info.Key))
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(info)...)
		}

		spanCtx, span := tracer.Start(ctx, "render "+info.Component,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		err := next(spanCtx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		return err
	})
}
