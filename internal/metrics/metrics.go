// Package metrics exposes Prometheus collectors for record fetches.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Registry holds every collector of this service plus the Go and process collectors.
var Registry = prometheus.NewRegistry()

var (
	fetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "records_fetches_total",
			Help: "Total number of provider fetches",
		},
		[]string{"provider", "result"},
	)

	fetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "records_fetch_duration_seconds",
			Help:    "Duration of provider fetches",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	cachedRecords = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "records_cached",
			Help: "Number of records currently held in the service cache",
		},
		[]string{"provider"},
	)
)

func init() {
	Registry.MustRegister(
		fetchesTotal,
		fetchDuration,
		cachedRecords,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// RecordFetch records one provider fetch outcome and its duration.
func RecordFetch(provider string, err error, elapsed time.Duration) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	fetchesTotal.WithLabelValues(provider, result).Inc()
	fetchDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// SetCachedRecords publishes the cache size for provider.
func SetCachedRecords(provider string, n int) {
	cachedRecords.WithLabelValues(provider).Set(float64(n))
}

// Handler serves Registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
