package explore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"country-explorer/internal/observability/metrics"
	"country-explorer/internal/usecase/explore"
)

func TestTracker_LatestTicketWins(t *testing.T) {
	tr := explore.NewTracker(nil)

	first := tr.Begin("FRA")
	second := tr.Begin("JPN")

	assert.False(t, tr.IsCurrent(first))
	assert.True(t, tr.IsCurrent(second))
	assert.Equal(t, second, tr.Current())

	before := testutil.ToFloat64(metrics.StaleResultsDiscardedTotal)
	applied := tr.Deliver(first, func() { t.Error("stale result applied") })
	assert.False(t, applied)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.StaleResultsDiscardedTotal))

	var got string
	assert.True(t, tr.Deliver(second, func() { got = "JPN" }))
	assert.Equal(t, "JPN", got)
}

func TestTracker_SameCodeNewGeneration(t *testing.T) {
	tr := explore.NewTracker(nil)

	first := tr.Begin("FRA")
	retry := tr.Begin("FRA")

	assert.NotEqual(t, first, retry)
	assert.False(t, tr.IsCurrent(first), "a retry supersedes the earlier chain")
}

/* ───────── Navigator ───────── */

// gatedRunner blocks each chain until its code is released.
type gatedRunner struct {
	mu    sync.Mutex
	gates map[string]chan struct{}
}

func newGatedRunner(codes ...string) *gatedRunner {
	g := &gatedRunner{gates: make(map[string]chan struct{})}
	for _, c := range codes {
		g.gates[c] = make(chan struct{})
	}
	return g
}

func (g *gatedRunner) release(code string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	close(g.gates[code])
}

func (g *gatedRunner) RunDetailChain(_ context.Context, code string) explore.DetailResult {
	g.mu.Lock()
	gate := g.gates[code]
	g.mu.Unlock()
	<-gate
	return explore.DetailResult{Code: code}
}

type recordingSink struct {
	mu      sync.Mutex
	results []string
}

func (r *recordingSink) sink(_ explore.Ticket, res explore.DetailResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res.Code)
}

func (r *recordingSink) got() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.results...)
}

func TestNavigator_StaleResponseIsDiscarded(t *testing.T) {
	runner := newGatedRunner("FRA", "JPN")
	rec := &recordingSink{}
	nav := explore.NewNavigator(runner, explore.NewTracker(nil), rec.sink)

	nav.Navigate(context.Background(), "FRA")
	nav.Navigate(context.Background(), "JPN")

	// JPN answers first, then the stale FRA response arrives.
	runner.release("JPN")
	require.Eventually(t, func() bool { return len(rec.got()) == 1 }, time.Second, time.Millisecond)
	runner.release("FRA")
	nav.Wait()

	assert.Equal(t, []string{"JPN"}, rec.got())
}

func TestNavigator_OutOfOrderCompletion(t *testing.T) {
	runner := newGatedRunner("FRA", "JPN")
	rec := &recordingSink{}
	nav := explore.NewNavigator(runner, explore.NewTracker(nil), rec.sink)

	nav.Navigate(context.Background(), "FRA")
	nav.Navigate(context.Background(), "JPN")

	runner.release("FRA")
	runner.release("JPN")
	nav.Wait()

	assert.Equal(t, []string{"JPN"}, rec.got())
}

func TestNavigator_WithService(t *testing.T) {
	f := newFixture()
	svc := f.service(explore.Config{})

	var (
		mu     sync.Mutex
		detail *explore.Detail
		err    error
	)
	nav := explore.NewNavigator(svc, explore.NewTracker(nil), func(_ explore.Ticket, res explore.DetailResult) {
		mu.Lock()
		defer mu.Unlock()
		detail, err = res.Fold()
	})

	ticket := nav.Navigate(context.Background(), "FRA")
	nav.Wait()

	assert.Equal(t, "FRA", ticket.Code)
	mu.Lock()
	defer mu.Unlock()
	require.NoError(t, err)
	assert.Equal(t, "France", detail.Country.CommonName)
}
