// Package metrics provides Prometheus metrics for the ainvestfeed API, worker and scraper.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ainvestfeed"

var (
	// CacheLookups counts read-through cache lookups by key namespace and HIT/MISS.
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Total number of read cache lookups",
		},
		[]string{"namespace", "status"},
	)

	// IngestTotal counts ingestion attempts by outcome (created, duplicate, error).
	IngestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_total",
			Help:      "Total number of article ingestion attempts",
		},
		[]string{"source", "outcome"},
	)

	// HTTPRequestDuration measures request latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// ScrapeItems counts feed items seen per scraping run.
	ScrapeItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scrape_items_total",
			Help:      "Total number of feed items fetched by the scraper",
		},
		[]string{"config", "status"},
	)

	// ErrorsTotal counts errors by operation.
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Total number of errors",
		},
		[]string{"operation"},
	)
)

// RecordCacheLookup records a cache lookup for the given key namespace.
func RecordCacheLookup(ns, status string) {
	CacheLookups.WithLabelValues(ns, status).Inc()
}

// RecordIngest records the outcome of one ingestion attempt.
func RecordIngest(source, outcome string) {
	IngestTotal.WithLabelValues(source, outcome).Inc()
}

// RecordRequest records one handled HTTP request.
func RecordRequest(method, route, status string, seconds float64) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(seconds)
}

// RecordScrape records the items fetched for a config in a single run.
func RecordScrape(config, status string, items int) {
	ScrapeItems.WithLabelValues(config, status).Add(float64(items))
}

// RecordError records an error for operation.
func RecordError(operation string) {
	ErrorsTotal.WithLabelValues(operation).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
