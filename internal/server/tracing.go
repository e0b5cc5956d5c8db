package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// SpanEnricher adds the matched route, request id and export parameters to
// the span started by otelhttp.
func SpanEnricher(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)

		span := trace.SpanFromContext(r.Context())
		if !span.IsRecording() {
			return
		}
		attrs := []attribute.KeyValue{
			attribute.String("chatwrap.request_id", middleware.GetReqID(r.Context())),
		}
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				attrs = append(attrs, attribute.String("http.route", pattern))
				span.SetName(r.Method + " " + pattern)
			}
		}
		q := r.URL.Query()
		if f := q.Get("format"); f != "" {
			attrs = append(attrs, attribute.String("chatwrap.export.format", f))
		}
		if t := q.Get("theme"); t != "" {
			attrs = append(attrs, attribute.String("chatwrap.theme", t))
		}
		span.SetAttributes(attrs...)
	})
}
