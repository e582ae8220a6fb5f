package explore

import (
	"log/slog"
	"sync"

	"country-explorer/internal/observability/metrics"
)

// Ticket tags one detail chain invocation.
type Ticket struct {
	Generation uint64
	Code       string
}

// Tracker remembers which detail chain is current so that a response for a
// superseded request is dropped instead of overwriting the view.
type Tracker struct {
	mu      sync.Mutex
	current Ticket
	logger  *slog.Logger
}

// NewTracker creates a Tracker. logger may be nil to use slog.Default().
func NewTracker(logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{logger: logger}
}

// Begin starts a new generation for code. Every earlier ticket becomes stale.
func (t *Tracker) Begin(code string) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = Ticket{Generation: t.current.Generation + 1, Code: code}
	return t.current
}

// Current returns the latest ticket. The zero Ticket means nothing was requested yet.
func (t *Tracker) Current() Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// IsCurrent reports whether ticket is the latest one.
func (t *Tracker) IsCurrent(ticket Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return ticket == t.current
}

// Deliver calls apply if ticket is still current and reports whether it did.
// apply runs under the tracker's lock, so no Begin can interleave; it must
// not call back into the Tracker.
func (t *Tracker) Deliver(ticket Ticket, apply func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if ticket != t.current {
		metrics.RecordStaleResultDiscarded()
		t.logger.Debug("discarding stale detail result",
			slog.String("code", ticket.Code),
			slog.Uint64("generation", ticket.Generation),
			slog.String("current_code", t.current.Code),
			slog.Uint64("current_generation", t.current.Generation))
		return false
	}
	apply()
	return true
}
