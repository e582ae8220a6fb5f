package explore

import (
	"context"
	"sync"
)

// DetailRunner runs one detail chain. *Service implements it.
type DetailRunner interface {
	RunDetailChain(ctx context.Context, code string) DetailResult
}

// Sink receives the result of the current detail chain.
type Sink func(ticket Ticket, result DetailResult)

// Navigator runs detail chains in the background and hands only the latest
// one's result to the sink. Superseded chains are not cancelled; their
// results are dropped on arrival.
type Navigator struct {
	runner  DetailRunner
	tracker *Tracker
	sink    Sink
	wg      sync.WaitGroup
}

func NewNavigator(runner DetailRunner, tracker *Tracker, sink Sink) *Navigator {
	return &Navigator{runner: runner, tracker: tracker, sink: sink}
}

// Navigate starts a chain for code and returns its ticket immediately.
// Navigating to the same code again is a retry.
func (n *Navigator) Navigate(ctx context.Context, code string) Ticket {
	ticket := n.tracker.Begin(code)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		result := n.runner.RunDetailChain(ctx, code)
		n.tracker.Deliver(ticket, func() {
			n.sink(ticket, result)
		})
	}()
	return ticket
}

// Wait blocks until every started chain has finished.
func (n *Navigator) Wait() {
	n.wg.Wait()
}
