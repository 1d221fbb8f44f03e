// Package orchestrator runs one download across the ordered mirror candidates
// of a catalog item, stopping at the first success.
package orchestrator

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/cperrin88/mirrorget/internal/logger"
	"github.com/cperrin88/mirrorget/pkg/catalog"
	"github.com/cperrin88/mirrorget/pkg/download"
)

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// run holds the mutable state of one Run call.
type run struct {
	o       *Orchestrator
	state   State
	attempt int
	total   int
	url     string
	bytes   int64
}

// Run resolves the candidates of req against cat and tries them in order.
// Cancellation of ctx is observed before every attempt and inside transfers.
// Run never panics and emits exactly one EventOutcome, as its last event.
func (o *Orchestrator) Run(ctx context.Context, cat *catalog.Catalog, req Request) Outcome {
	r := &run{o: o, state: StateIdle}
	started := time.Now()
	if o.Metrics != nil {
		o.Metrics.RunStarted()
	}

	out := r.execute(ctx, cat, req)

	if o.Metrics != nil {
		o.Metrics.RunFinished(out.Label(), time.Since(started))
	}
	logger.Debug("download finished", logger.Fields{
		"item":     req.Item,
		"outcome":  out.Label(),
		"attempts": out.Attempts,
	})
	r.emit(Event{Kind: EventOutcome, Outcome: &out})
	return out
}

func (r *run) execute(ctx context.Context, cat *catalog.Catalog, req Request) Outcome {
	r.set(StateResolving)
	r.log("Starting download for: %s (%s)", req.Item, req.OS)

	candidates := catalog.Resolve(cat, req.MirrorList, req.Item, req.OS)
	r.total = len(candidates)
	if r.total == 0 {
		r.set(StateExhausted)
		r.log("No mirrors found for '%s' on %s.", req.Item, req.OS)
		r.status("No mirrors available for %s on %s.", req.Item, req.OS)
		return Outcome{Kind: OutcomeExhausted}
	}
	r.log("Found %d mirror(s). Trying in order.", r.total)

	out := Outcome{Kind: OutcomeExhausted}
	cancelled := false
	for i, candidate := range candidates {
		if ctx.Err() != nil {
			cancelled = true
			break
		}
		r.set(StateAttempting)
		r.attempt = i + 1
		r.url = candidate
		host := hostOf(candidate)
		r.status("Trying mirror %d/%d: %s", r.attempt, r.total, host)

		out.Attempts++
		attemptStart := time.Now()
		path, err := r.transfer(ctx, download.Request{
			URL:        candidate,
			Dir:        req.Dir,
			OnStart:    func(name string) { r.log("Downloading '%s' from %s", name, host) },
			OnProgress: r.progress,
			OnLog:      func(msg string) { r.log("%s", msg) },
		})
		r.recordAttempt(err, time.Since(attemptStart))

		if err == nil {
			r.set(StateSucceeded)
			r.log("Success from: %s", candidate)
			r.status("Successfully downloaded %s!", req.Item)
			out.Kind = OutcomeSuccess
			out.Path = path
			return out
		}
		if download.IsCancelled(err) || ctx.Err() != nil {
			cancelled = true
			break
		}
		out.Failures = append(out.Failures, AttemptFailure{URL: candidate, Err: err})
		r.log("Mirror failed: %s: %v", candidate, err)
	}

	if cancelled || ctx.Err() != nil {
		r.set(StateCancelled)
		r.log("Download cancelled by user.")
		r.status("Download cancelled.")
		out.Kind = OutcomeCancelled
		return out
	}

	r.set(StateExhausted)
	r.status("All mirrors failed for the selected download.")
	r.log("All mirrors failed.")
	return out
}

// transfer calls the Downloader and turns a panic into a KindOther failure.
func (r *run) transfer(ctx context.Context, req download.Request) (path string, err error) {
	defer func() {
		if p := recover(); p != nil {
			path = ""
			err = &download.TransferError{Kind: download.KindOther, URL: req.URL, Err: fmt.Errorf("unexpected failure: %v", p)}
		}
	}()
	return r.o.DL.Transfer(ctx, req)
}

func (r *run) recordAttempt(err error, elapsed time.Duration) {
	if r.o.Metrics == nil {
		return
	}
	result := "success"
	if err != nil {
		result = download.KindOf(err).String()
	}
	r.o.Metrics.AttemptFinished(result, elapsed)
}

func (r *run) progress(p download.Progress) {
	if r.o.Metrics != nil && p.Downloaded > r.bytes {
		r.o.Metrics.BytesTransferred(p.Downloaded - r.bytes)
	}
	r.bytes = p.Downloaded
	r.emit(Event{Kind: EventProgress, Progress: p})
}

// set moves the state machine forward. A new attempt resets the byte counter.
func (r *run) set(s State) {
	if r.state.Terminal() {
		return
	}
	r.state = s
	r.bytes = 0
}

func (r *run) log(format string, args ...interface{}) {
	r.emit(Event{Kind: EventLog, Message: fmt.Sprintf(format, args...)})
}

func (r *run) status(format string, args ...interface{}) {
	r.emit(Event{Kind: EventStatus, Message: fmt.Sprintf(format, args...)})
}

func (r *run) emit(e Event) {
	e.Time = time.Now()
	e.State = r.state
	e.Attempt = r.attempt
	e.Total = r.total
	if e.URL == "" {
		e.URL = r.url
	}
	emit(r.o.Hooks, e)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
