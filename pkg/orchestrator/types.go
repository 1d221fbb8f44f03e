//go:generate mockgen -destination=./mocks/orchestrator.go . Downloader,Recorder

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cperrin88/mirrorget/pkg/download"
	"github.com/cperrin88/mirrorget/pkg/errutils"
	"github.com/cperrin88/mirrorget/pkg/platform"
)

// Downloader transfers a single candidate URL.
type Downloader interface {
	Transfer(ctx context.Context, req download.Request) (string, error)
}

// Recorder receives run and attempt measurements. It is optional.
type Recorder interface {
	RunStarted()
	RunFinished(outcome string, elapsed time.Duration)
	AttemptFinished(result string, elapsed time.Duration)
	BytesTransferred(n int64)
}

// Orchestrator drives a Downloader across the resolved candidates of one item.
type Orchestrator struct {
	DL      Downloader
	Metrics Recorder // optional
	Hooks   Hooks    // Hooks for progress and event notifications
}

// Request identifies what to download and where to put it.
type Request struct {
	MirrorList string
	Item       string
	OS         platform.OS
	Dir        string
}

// State is a step of the run state machine:
// Idle -> Resolving -> Attempting(i) -> {Attempting(i+1) | Succeeded | Cancelled | Exhausted}.
type State int

const (
	StateIdle State = iota
	StateResolving
	StateAttempting
	StateSucceeded
	StateCancelled
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateResolving:
		return "resolving"
	case StateAttempting:
		return "attempting"
	case StateSucceeded:
		return "succeeded"
	case StateCancelled:
		return "cancelled"
	case StateExhausted:
		return "exhausted"
	default:
		return "idle"
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateCancelled || s == StateExhausted
}

// OutcomeKind tags an Outcome.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeCancelled
	OutcomeExhausted
)

// AttemptFailure records why one candidate failed.
type AttemptFailure struct {
	URL string
	Err error
}

// Outcome is the terminal result of a run.
type Outcome struct {
	Kind     OutcomeKind
	Path     string           // final file, for OutcomeSuccess
	Attempts int              // transfers started
	Failures []AttemptFailure // one per failed candidate, in order
}

// NoMirrors reports an exhaustion caused by an empty candidate list.
func (o Outcome) NoMirrors() bool {
	return o.Kind == OutcomeExhausted && o.Attempts == 0
}

// Label is a short machine-friendly name used for metrics.
func (o Outcome) Label() string {
	switch {
	case o.Kind == OutcomeSuccess:
		return "success"
	case o.Kind == OutcomeCancelled:
		return "cancelled"
	case o.NoMirrors():
		return "no_mirrors"
	default:
		return "exhausted"
	}
}

// Err converts the outcome to an error; nil on success.
func (o Outcome) Err() error {
	switch {
	case o.Kind == OutcomeSuccess:
		return nil
	case o.Kind == OutcomeCancelled:
		return errutils.ErrDownloadCancelled
	case o.NoMirrors():
		return errutils.ErrNoMirrorsAvailable
	}
	errs := make([]error, 0, len(o.Failures))
	for _, f := range o.Failures {
		errs = append(errs, fmt.Errorf("%s: %w", f.URL, f.Err))
	}
	return fmt.Errorf("%w: all %d mirror(s) failed: %w", errutils.ErrDownloadFailed, len(o.Failures), errors.Join(errs...))
}

// EventKind classifies an Event.
type EventKind string

const (
	EventLog      EventKind = "log"      // timestamped log line
	EventStatus   EventKind = "status"   // replaces the current status line
	EventProgress EventKind = "progress" // transfer progress of the current attempt
	EventOutcome  EventKind = "outcome"  // final event of a run
)

// Event is a notification from a running download.
type Event struct {
	Kind     EventKind
	Time     time.Time
	State    State
	Attempt  int // 1-based index of the current candidate, 0 before the first attempt
	Total    int // number of candidates
	URL      string
	Message  string
	Progress download.Progress
	Outcome  *Outcome
}

// LogLine renders a log event as "HH:MM:SS: message".
func (e Event) LogLine() string {
	return e.Time.Format("15:04:05") + ": " + e.Message
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}
