package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus implements every hook interface on top of a Prometheus
// registry.
//
// Metrics:
//   - pjv_validations_total{spec,outcome}: manifests validated; outcome is
//     "valid" or "invalid"
//   - pjv_validation_duration_seconds{spec}: time spent validating
//   - pjv_validation_errors{spec}: error messages per manifest
//   - pjv_cache_events_total{event}: result cache hits and misses
//   - pjv_http_requests_total{method,route,code}: served requests
//   - pjv_http_request_duration_seconds{method,route}: request latency
type Prometheus struct {
	registry *prometheus.Registry

	validations     *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	errors          *prometheus.HistogramVec
	cacheEvents     *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpRequestTime *prometheus.HistogramVec
}

// NewPrometheus creates the metrics and registers them with registry. A nil
// registry gets a fresh one.
func NewPrometheus(registry *prometheus.Registry) *Prometheus {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	p := &Prometheus{
		registry: registry,
		validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pjv",
				Name:      "validations_total",
				Help:      "Total number of manifests validated",
			},
			[]string{"spec", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "pjv",
				Name:      "validation_duration_seconds",
				Help:      "Time spent validating a manifest",
				// Validation is pure CPU work; most manifests finish well under 1ms.
				Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.005, 0.01, 0.05},
			},
			[]string{"spec"},
		),
		errors: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "pjv",
				Name:      "validation_errors",
				Help:      "Number of error messages reported per manifest",
				Buckets:   []float64{0, 1, 2, 5, 10, 25},
			},
			[]string{"spec"},
		),
		cacheEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pjv",
				Name:      "cache_events_total",
				Help:      "Result cache hits and misses",
			},
			[]string{"event"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pjv",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"method", "route", "code"},
		),
		httpRequestTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "pjv",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	registry.MustRegister(
		p.validations,
		p.duration,
		p.errors,
		p.cacheEvents,
		p.httpRequests,
		p.httpRequestTime,
	)
	return p
}

// Registry returns the registry the metrics are registered with.
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}

func (p *Prometheus) OnValidateStart(context.Context, string) {}

func (p *Prometheus) OnValidateComplete(_ context.Context, spec string, valid bool, errCount int, duration time.Duration) {
	outcome := "invalid"
	if valid {
		outcome = "valid"
	}
	p.validations.WithLabelValues(spec, outcome).Inc()
	p.duration.WithLabelValues(spec).Observe(duration.Seconds())
	p.errors.WithLabelValues(spec).Observe(float64(errCount))
}

func (p *Prometheus) OnCacheHit(context.Context, string) {
	p.cacheEvents.WithLabelValues("hit").Inc()
}

func (p *Prometheus) OnCacheMiss(context.Context, string) {
	p.cacheEvents.WithLabelValues("miss").Inc()
}

func (p *Prometheus) OnResponse(_ context.Context, method, route string, statusCode int, duration time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	p.httpRequestTime.WithLabelValues(method, route).Observe(duration.Seconds())
}

var (
	_ ValidationHooks = (*Prometheus)(nil)
	_ CacheHooks      = (*Prometheus)(nil)
	_ HTTPHooks       = (*Prometheus)(nil)
)
