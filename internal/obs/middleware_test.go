package obs_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/noah-isme/backend-kasir/internal/obs"
)

func TestHTTPMetricsLabels(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := obs.NewHTTPMetrics("kasir", []float64{1, 10}, registry)
	handler := obs.HTTPObs{Metrics: metrics}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	req = req.WithContext(obs.WithRoute(req.Context(), "/health/ready"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)

	require.Equal(t, 1.0, testutil.ToFloat64(metrics.Requests.WithLabelValues(http.MethodGet, "/health/ready", "2xx")))
	require.Positive(t, testutil.CollectAndCount(metrics.Latency))
	require.Zero(t, testutil.ToFloat64(metrics.InFlight))

	again := obs.NewHTTPMetrics("kasir", nil, registry)
	require.Same(t, metrics.Requests, again.Requests)
}

func TestHTTPMetricsUseChiPattern(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := obs.NewHTTPMetrics("kasir", nil, registry)

	r := chi.NewRouter()
	r.Use(obs.HTTPObs{Metrics: metrics}.Middleware)
	r.Get("/api/v1/orders/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/orders/17", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/orders/18", nil))

	require.Equal(t, 2.0, testutil.ToFloat64(metrics.Requests.WithLabelValues(http.MethodGet, "/api/v1/orders/{id}", "4xx")))
}

func TestParseBuckets(t *testing.T) {
	require.Equal(t, []float64{5, 25, 100}, obs.ParseBuckets("100, 5,abc,-1,25,5"))
	require.Nil(t, obs.ParseBuckets(" "))
}

func TestRouteSpansNamesSpanAfterRouting(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx, span := provider.Tracer("test").Start(req.Context(), req.Method+" "+req.URL.Path)
			defer span.End()
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Use(obs.RouteSpans)
	r.Get("/api/v1/giftcards/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/giftcards/gc_1", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "GET /api/v1/giftcards/{id}", spans[0].Name())
}

func TestDomainMetricsHelpers(t *testing.T) {
	registry := prometheus.NewRegistry()
	obs.MustRegisterDomainMetrics("kasir", registry)

	obs.RecordSettlement("giftcard", "insufficient_funds", 12)
	obs.RecordGiftcardDebit("insufficient_funds")
	obs.RecordCardRollback()

	if got := testutil.ToFloat64(obs.OrderSettlementTotal.WithLabelValues("giftcard", "insufficient_funds")); got != 1 {
		t.Fatalf("expected settlement counter 1, got %v", got)
	}
	if got := testutil.ToFloat64(obs.GiftcardDebitTotal.WithLabelValues("insufficient_funds")); got != 1 {
		t.Fatalf("expected debit counter 1, got %v", got)
	}
	if got := testutil.ToFloat64(obs.CardSettlementRollbackTotal); got != 1 {
		t.Fatalf("expected rollback counter 1, got %v", got)
	}
}
