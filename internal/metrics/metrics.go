// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pantrychef"

var (
	// Registry holds the application collectors. It is separate from the
	// global default registry so tests can read counters in isolation.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "route"},
	)

	recipesSynthesized = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "recipes",
			Name:      "synthesized_total",
			Help:      "Recipes generated from leftovers, by family and cooking method.",
		},
		[]string{"family", "method"},
	)

	priceComparisons = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pricing",
			Name:      "comparisons_total",
			Help:      "Grocery list price comparisons, by recommended store.",
		},
		[]string{"best_store"},
	)

	unmatchedItems = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pricing",
			Name:      "unmatched_items_total",
			Help:      "Grocery items with no catalog price during comparisons.",
		},
	)

	leftoversExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pantry",
			Name:      "leftovers_expired_total",
			Help:      "Leftovers observed crossing into expired status.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		recipesSynthesized,
		priceComparisons,
		unmatchedItems,
		leftoversExpired,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one handled HTTP request. route should be the mux
// pattern rather than the raw path to keep label cardinality bounded.
func ObserveRequest(method, route string, status int, d time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func RecipeSynthesized(family, method string) {
	recipesSynthesized.WithLabelValues(family, method).Inc()
}

// PricesCompared records a comparison. An empty bestStore means nothing on the
// list matched the catalog.
func PricesCompared(bestStore string, unmatched int) {
	if bestStore == "" {
		bestStore = "none"
	}
	priceComparisons.WithLabelValues(bestStore).Inc()
	if unmatched > 0 {
		unmatchedItems.Add(float64(unmatched))
	}
}

func LeftoversExpired(n int) {
	if n > 0 {
		leftoversExpired.Add(float64(n))
	}
}
