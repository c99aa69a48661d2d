package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SearchesStarted counts venue search invocations.
	SearchesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "venue_searches_started_total",
		Help: "Number of venue searches started",
	})

	// SearchOutcomes counts terminal search states (success, empty, failed).
	SearchOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "venue_search_outcomes_total",
		Help: "Number of venue searches by terminal outcome",
	}, []string{"status"})

	// RadiusEscalations counts retries at a wider search radius after an
	// empty first pass.
	RadiusEscalations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "venue_search_radius_escalations_total",
		Help: "Number of search retries at an escalated radius",
	})
)

var (
	VenuesPerSearch = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "venue_search_result_count",
		Help:    "Number of deduplicated venues returned per search",
		Buckets: prometheus.ExponentialBuckets(1, 2, 8),
	})

	MidpointsComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "midpoints_computed_total",
		Help: "Number of midpoint calculations served",
	})
)

var (
	// OutgoingLatency observes the duration of outgoing HTTP requests to the
	// places provider, labeled by URL, method and response status.
	OutgoingLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "outgoing_request_duration_seconds",
		Help:    "Duration of outgoing provider HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"url", "method", "status"})
)
