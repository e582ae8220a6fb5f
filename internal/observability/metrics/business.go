package metrics

import (
	"time"
)

// RecordRemoteCall records the outcome and latency of one outbound call.
func RecordRemoteCall(service, outcome string, duration time.Duration) {
	RemoteCallsTotal.WithLabelValues(service, outcome).Inc()
	RemoteCallDuration.WithLabelValues(service).Observe(duration.Seconds())
}

// SetCircuitBreakerState publishes the breaker state for a service.
// State values follow gobreaker: 0=closed, 1=half-open, 2=open.
func SetCircuitBreakerState(service string, state int) {
	CircuitBreakerState.WithLabelValues(service).Set(float64(state))
}

// RecordChain records a finished directory or detail chain.
func RecordChain(chain string, success bool, duration time.Duration) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	ChainsTotal.WithLabelValues(chain, outcome).Inc()
	ChainDuration.WithLabelValues(chain).Observe(duration.Seconds())
}

// RecordStageOutcome records the status a detail chain stage finished with.
func RecordStageOutcome(stage, status string) {
	StageOutcomesTotal.WithLabelValues(stage, status).Inc()
}

// RecordStaleResultDiscarded records a superseded detail result being dropped.
func RecordStaleResultDiscarded() {
	StaleResultsDiscardedTotal.Inc()
}

// RecordFavoriteToggle records a toggle and the resulting favorites count.
func RecordFavoriteToggle(added bool, count int) {
	action := "removed"
	if added {
		action = "added"
	}
	FavoritesTogglesTotal.WithLabelValues(action).Inc()
	FavoritesCount.Set(float64(count))
}

// RecordFavoritesPersistenceFailure records a load or save failure that the store absorbed.
func RecordFavoritesPersistenceFailure(operation string) {
	FavoritesPersistenceFailuresTotal.WithLabelValues(operation).Inc()
}

// UpdateFavoritesCount sets the favorites gauge, typically after the initial load.
func UpdateFavoritesCount(count int) {
	FavoritesCount.Set(float64(count))
}

// RecordListingQuery records one engine evaluation and how many countries matched.
func RecordListingQuery(view, sortKey string, matches int) {
	ListingQueriesTotal.WithLabelValues(view, sortKey).Inc()
	ListingMatches.Observe(float64(matches))
}

// RecordSlotOperation records the duration of a slot store read or write.
func RecordSlotOperation(backend, operation string, duration time.Duration) {
	SlotOperationDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
}
