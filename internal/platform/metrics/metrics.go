package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP

var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"method", "route", "status"},
)

var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"method", "route"},
)

// Catalog

var CatalogSearches = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_searches_total",
		Help: "Total number of catalog searches by outcome",
	},
	[]string{"outcome"}, // ok, no_results, empty_query, fetch_failed
)

var CatalogFetchDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "catalog_fetch_duration_seconds",
		Help:    "Duration of calls to the external catalog",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"kind"}, // page, volume
)

// Reviews

var ReviewsSubmitted = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "reviews_submitted_total",
		Help: "Total number of accepted review submissions",
	},
	[]string{"result"}, // created, updated
)

var ReviewsRating = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "reviews_rating",
		Help:    "Distribution of submitted review ratings",
		Buckets: []float64{1, 2, 3, 4, 5},
	},
)

// Sessions

var Logins = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "session_logins_total",
		Help: "Total number of login attempts",
	},
	[]string{"status"}, // success, rejected, error
)

// Events

var ReviewEventsPublished = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "review_events_published_total",
		Help: "Total number of review change events handed to the broker",
	},
	[]string{"status"}, // success, failed, dropped
)

func ObserveHTTP(method, route string, status int, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

type FetchTimer struct {
	kind  string
	start time.Time
}

func NewFetchTimer(kind string) *FetchTimer {
	return &FetchTimer{kind: kind, start: time.Now()}
}

func (t *FetchTimer) ObserveDuration() {
	CatalogFetchDuration.WithLabelValues(t.kind).Observe(time.Since(t.start).Seconds())
}
