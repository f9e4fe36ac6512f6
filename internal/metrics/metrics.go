package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultOK          = "ok"
	ResultLoadError   = "load_error"
	ResultSchemaError = "schema_error"
	ResultConfigError = "config_error"
	ResultError       = "error"
)

// Quotes counts and times quote calculations by kind (quote|schedule) and result.
type Quotes struct {
	registry *prometheus.Registry
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewQuotes() *Quotes {
	q := &Quotes{
		registry: prometheus.NewRegistry(),
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "service_calc",
			Name:      "quotes_total",
			Help:      "Quote calculations by kind and result.",
		}, []string{"kind", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "service_calc",
			Name:      "quote_duration_seconds",
			Help:      "Time spent loading and pricing a model sheet.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1},
		}, []string{"kind"}),
	}

	q.registry.MustRegister(q.total, q.duration)

	return q
}

// Observe is a no-op on a nil *Quotes.
func (q *Quotes) Observe(kind, result string, started time.Time) {
	if q == nil {
		return
	}
	q.total.WithLabelValues(kind, result).Inc()
	q.duration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
}

func (q *Quotes) Handler() http.Handler {
	return promhttp.HandlerFor(q.registry, promhttp.HandlerOpts{})
}
