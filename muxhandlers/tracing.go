package muxhandlers

import (
	"net/http"

	"github.com/vitalvas/kroute/mux"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "github.com/vitalvas/kroute/muxhandlers"

type spanKey struct{}

// TracingConfig configures the OpenTelemetry tracing hooks.
type TracingConfig struct {
	// TracerProvider creates the tracer. Defaults to the global provider.
	TracerProvider trace.TracerProvider

	// TracerName is the instrumentation name of the tracer.
	TracerName string
}

// TracingHooks returns a before hook that starts a server span named after
// the resolved endpoint action and an after hook that records the outcome
// and ends it. The span context replaces the request context, so endpoints
// can start child spans from req.Context().
func TracingHooks(cfg TracingConfig) (mux.HookBefore, mux.HookAfter) {
	provider := cfg.TracerProvider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}

	name := cfg.TracerName
	if name == "" {
		name = defaultTracerName
	}

	tracer := provider.Tracer(name)

	before := func(req *mux.Request, _ *mux.Response, endpoint, method string, _ int) error {
		ctx, span := tracer.Start(req.Context(), endpoint+"."+method,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", req.Method),
				attribute.String("url.path", req.Path),
				attribute.String("kroute.endpoint", endpoint),
				attribute.String("kroute.action", method),
			),
		)

		req.SetContext(ctx)
		req.SetValue(spanKey{}, span)

		return nil
	}

	after := func(req *mux.Request, res *mux.Response, success bool, _ string, _ int) {
		span, ok := req.Value(spanKey{}).(trace.Span)
		if !ok {
			return
		}

		span.SetAttributes(
			attribute.Int("http.response.status_code", res.Status),
			attribute.String("kroute.format", res.Format.String()),
		)

		if success {
			span.SetStatus(codes.Ok, "")
		} else {
			span.SetStatus(codes.Error, http.StatusText(res.Status))
		}

		span.End()
	}

	return before, after
}
