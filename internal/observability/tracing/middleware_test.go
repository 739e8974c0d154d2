package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// installTestTracer wires an in-memory exporter and rebinds the package
// tracer so spans land in the exporter.
func installTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	tracer = otel.Tracer("subsidy-finder")
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
		tracer = otel.Tracer("subsidy-finder")
	})
	return exporter
}

func TestMiddleware_CreatesSpan(t *testing.T) {
	exporter := installTestTracer(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/subsidies", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /subsidies", spans[0].Name)

	got := map[attribute.Key]attribute.Value{}
	for _, attr := range spans[0].Attributes {
		got[attr.Key] = attr.Value
	}
	assert.Equal(t, int64(http.StatusOK), got["http.status_code"].AsInt64())
	assert.Equal(t, "GET", got["http.method"].AsString())
}

func TestMiddleware_SetsTraceIDHeader(t *testing.T) {
	installTestTracer(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, rec.Header().Get("X-Trace-Id"))
}

func TestMiddleware_MarksServerErrors(t *testing.T) {
	exporter := installTestTracer(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	foundError := false
	for _, attr := range spans[0].Attributes {
		if attr.Key == "error" && attr.Value.AsBool() {
			foundError = true
		}
	}
	assert.True(t, foundError)
}

func TestSetup_DisabledIsNoop(t *testing.T) {
	shutdown := Setup(false)
	defer shutdown()

	_, span := GetTracer().Start(context.Background(), "op")
	defer span.End()

	assert.False(t, span.SpanContext().IsValid())
}
