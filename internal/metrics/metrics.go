package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// httpRequests counts finished requests by route pattern, method and status
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "collections_http_requests_total",
		Help: "Total HTTP requests by route, method and status code",
	}, []string{"route", "method", "status"})

	// httpDuration tracks request latency by route pattern
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "collections_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
	}, []string{"route", "method"})

	interestRecalculations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "collections_interest_recalculations_total",
		Help: "Interest recalculations by outcome (updated, unchanged)",
	}, []string{"outcome"})

	exportJobs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "collections_export_jobs_total",
		Help: "Workbook export jobs by event (started, ready, failed)",
	}, []string{"event"})
)

// Middleware records request counts and latency. Routes are labelled by
// their chi pattern so ids do not blow up cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func InterestRecalculated(changed bool) {
	if changed {
		interestRecalculations.WithLabelValues("updated").Inc()
		return
	}
	interestRecalculations.WithLabelValues("unchanged").Inc()
}

func ExportJob(event string) {
	exportJobs.WithLabelValues(event).Inc()
}
