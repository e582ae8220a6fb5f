// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Remote call metrics track traffic to the country directory, weather and news sources
var (
	// RemoteCallsTotal counts outbound calls by service and outcome
	RemoteCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "explorer_remote_calls_total",
			Help: "Total number of calls to remote data sources",
		},
		[]string{"service", "outcome"}, // outcome: success, http_error, network_error, timeout, decode_error, circuit_open, missing_key
	)

	// RemoteCallDuration measures outbound call latency in seconds
	RemoteCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "explorer_remote_call_duration_seconds",
			Help:    "Remote data source call duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
		[]string{"service"},
	)

	// CircuitBreakerState exposes the breaker state per service (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "explorer_circuit_breaker_state",
			Help: "Circuit breaker state per remote service (0=closed, 1=half-open, 2=open)",
		},
		[]string{"service"},
	)
)

// Chain metrics track the directory and detail fetch chains
var (
	// ChainsTotal counts finished chains by kind and outcome
	ChainsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "explorer_chains_total",
			Help: "Total number of fetch chains by kind and outcome",
		},
		[]string{"chain", "outcome"}, // chain: directory, detail
	)

	// ChainDuration measures end-to-end chain duration
	ChainDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "explorer_chain_duration_seconds",
			Help:    "Fetch chain duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"chain"},
	)

	// StageOutcomesTotal counts detail chain stage results
	StageOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "explorer_detail_stage_outcomes_total",
			Help: "Total number of detail chain stage outcomes",
		},
		[]string{"stage", "status"}, // status: ok, skipped, failed, not_run
	)

	// StaleResultsDiscardedTotal counts chain results dropped because a newer navigation began
	StaleResultsDiscardedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "explorer_stale_results_discarded_total",
			Help: "Total number of detail results discarded because they were superseded",
		},
	)
)

// Favorites and listing metrics track user-facing state
var (
	// FavoritesTogglesTotal counts favorite toggles by resulting action
	FavoritesTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "explorer_favorites_toggles_total",
			Help: "Total number of favorite toggles",
		},
		[]string{"action"}, // action: added, removed
	)

	// FavoritesPersistenceFailuresTotal counts absorbed persistence failures
	FavoritesPersistenceFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "explorer_favorites_persistence_failures_total",
			Help: "Total number of favorites load/save failures absorbed by the store",
		},
		[]string{"operation"}, // operation: load, save
	)

	// FavoritesCount tracks the current number of favorites
	FavoritesCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "explorer_favorites_count",
			Help: "Current number of favorite countries",
		},
	)

	// ListingQueriesTotal counts engine evaluations by view
	ListingQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "explorer_listing_queries_total",
			Help: "Total number of filter/sort/paginate evaluations",
		},
		[]string{"view", "sort"},
	)

	// ListingMatches measures how many countries survive filtering
	ListingMatches = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "explorer_listing_matches",
			Help:    "Number of countries matching the current query",
			Buckets: []float64{0, 1, 5, 12, 24, 50, 100, 150, 200, 250},
		},
	)
)

// Storage metrics track the favorites slot backends
var (
	// SlotOperationDuration measures slot store operation duration
	SlotOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "explorer_slot_operation_duration_seconds",
			Help:    "Durable slot store operation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"backend", "operation"},
	)
)
