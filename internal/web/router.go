// Package web wires HTTP handlers with tracing, metrics and structured
// logging for the analyze server.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/grafana/pyroscope-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type Router struct {
	*http.ServeMux
	logger          *slog.Logger
	requestDuration metric.Int64Histogram
}

func NewRouter(logger *slog.Logger, requestDuration metric.Int64Histogram) *Router {
	return &Router{
		ServeMux:        http.NewServeMux(),
		logger:          logger,
		requestDuration: requestDuration,
	}
}

func (router *Router) HandleWithMiddleware(pattern string, handler http.Handler) {
	router.ServeMux.Handle(pattern, router.middleware(pattern, handler))
}

func (router *Router) HandleFuncWithMiddleware(pattern string, handler http.HandlerFunc) {
	router.ServeMux.Handle(pattern, router.middleware(pattern, handler))
}

func (router *Router) middleware(pattern string, next http.Handler) http.Handler {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		span := trace.SpanFromContext(r.Context())
		contextLogger := router.logger.With(
			slog.String("traceid", span.SpanContext().TraceID().String()),
			slog.String("spanid", span.SpanContext().SpanID().String()),
		)

		slog.SetDefault(contextLogger)

		defer func() {
			if err := recover(); err != nil {
				slog.Error(fmt.Sprintf("%v", err), "stack", string(debug.Stack()))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}

			if err := r.Context().Err(); errors.Is(err, context.Canceled) {
				slog.Debug("client closed connection")
			}
		}()

		pyroscope.TagWrapper(r.Context(), pyroscope.Labels(), func(ctx context.Context) {
			now := time.Now()
			next.ServeHTTP(w, r)
			router.requestDuration.Record(ctx, time.Since(now).Microseconds(), metric.WithAttributes(
				attribute.Key("method").String(r.Method),
				attribute.Key("handler").String(pattern),
			))
		})
	})

	return otelhttp.NewHandler(handler, pattern, otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
		return fmt.Sprintf("%s %s", r.Method, operation)
	}))
}
