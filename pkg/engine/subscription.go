package engine

import (
	"context"

	"github.com/cperrin88/mirrorget/pkg/orchestrator"
)

// EventBuffer is the capacity of a subscription's event channel.
const EventBuffer = 256

// Subscription delivers the events of one download run.
type Subscription struct {
	ID string

	ctx     context.Context
	events  chan orchestrator.Event
	done    chan struct{}
	cancel  context.CancelFunc
	outcome orchestrator.Outcome
}

func newSubscription(ctx context.Context, id string, cancel context.CancelFunc) *Subscription {
	return &Subscription{
		ID:     id,
		ctx:    ctx,
		events: make(chan orchestrator.Event, EventBuffer),
		done:   make(chan struct{}),
		cancel: cancel,
	}
}

// Events returns the run's events in emission order. The channel is closed
// after the outcome event. Progress events are dropped while the buffer is
// full; other events wait for the reader until the run is cancelled and are
// dropped after that. Callers that only use Wait must cancel the run or drain
// the channel, otherwise the run stalls once the buffer is full.
func (s *Subscription) Events() <-chan orchestrator.Event {
	return s.events
}

// Done is closed when the run has finished.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the run has finished and returns its outcome.
func (s *Subscription) Wait() orchestrator.Outcome {
	<-s.done
	return s.outcome
}

// Cancel cancels this run.
func (s *Subscription) Cancel() {
	s.cancel()
}

func (s *Subscription) send(e orchestrator.Event) {
	if e.Kind == orchestrator.EventProgress {
		select {
		case s.events <- e:
		default:
		}
		return
	}
	select {
	case s.events <- e:
		return
	default:
	}
	select {
	case s.events <- e:
	case <-s.ctx.Done():
	}
}

func (s *Subscription) finish(out orchestrator.Outcome) {
	s.outcome = out
	close(s.events)
	close(s.done)
}
