package survey

import (
	"errors"
	"sync"
	"time"

	appErrors "tutor-router/pkg/errors"
)

// Outcome is how polling one host ended.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeUnreachable
	OutcomeLoginFailed
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeUnreachable:
		return "unreachable"
	case OutcomeLoginFailed:
		return "login failed"
	default:
		return "failed"
	}
}

func classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, appErrors.ErrNotFound):
		return OutcomeUnreachable
	case errors.Is(err, appErrors.ErrLoginFailed):
		return OutcomeLoginFailed
	default:
		return OutcomeFailed
	}
}

// Progress counts hosts polled so far. Failed includes LoginFailures.
type Progress struct {
	Total         int
	Polled        int
	Reachable     int
	Unreachable   int
	LoginFailures int
	Failed        int
	LastHost      string
	LastOutcome   Outcome
	Elapsed       time.Duration
}

func (p Progress) Done() bool {
	return p.Polled >= p.Total
}

// ProgressTracker follows one survey run at a time. Listeners run on the
// polling goroutine after each host, outside the tracker's lock, so they
// may call Snapshot.
type ProgressTracker struct {
	mu        sync.Mutex
	started   time.Time
	progress  Progress
	listeners []func(Progress)
}

func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{}
}

// OnChange registers fn to receive a snapshot after every polled host.
func (t *ProgressTracker) OnChange(fn func(Progress)) {
	if fn == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, fn)
}

func (t *ProgressTracker) Snapshot() Progress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress
}

func (t *ProgressTracker) begin(total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.started = time.Now()
	t.progress = Progress{Total: total}
}

func (t *ProgressTracker) record(host string, outcome Outcome) {
	t.mu.Lock()
	p := &t.progress
	p.Polled++
	p.LastHost = host
	p.LastOutcome = outcome
	p.Elapsed = time.Since(t.started)
	switch outcome {
	case OutcomeOK:
		p.Reachable++
	case OutcomeUnreachable:
		p.Unreachable++
	case OutcomeLoginFailed:
		p.LoginFailures++
		p.Failed++
	default:
		p.Failed++
	}
	snapshot := *p
	listeners := t.listeners
	t.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}
