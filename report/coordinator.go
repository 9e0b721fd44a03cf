package report

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// State is the coordinator's fetch state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// AggregateFunc produces a RangeReport for a user and range.
type AggregateFunc func(ctx context.Context, userID string, rng TimeRange) (*RangeReport, error)

// Coordinator owns the date-range selection state for one report view. Each
// Request supersedes any in-flight one: only the most recently issued request
// may publish its result, late results from superseded requests are dropped
// on arrival. There is no composite "previous report + loading" state; a new
// request discards the prior report or error immediately.
type Coordinator struct {
	aggregate AggregateFunc

	mu      sync.Mutex
	state   State
	report  *RangeReport
	err     error
	current uuid.UUID
	userID  string
}

func NewCoordinator(fn AggregateFunc) *Coordinator {
	return &Coordinator{aggregate: fn, state: StateIdle}
}

// Request starts a fetch for the given user and range and returns the token
// identifying it. The fetch runs asynchronously; observe it via Snapshot.
func (c *Coordinator) Request(ctx context.Context, userID string, rng TimeRange) uuid.UUID {
	token := uuid.New()

	c.mu.Lock()
	c.current = token
	c.userID = userID
	c.state = StateLoading
	c.report = nil
	c.err = nil
	c.mu.Unlock()

	go func() {
		rep, err := c.aggregate(ctx, userID, rng)
		c.publish(token, rep, err)
	}()

	return token
}

// publish records a fetch result unless the request has been superseded.
func (c *Coordinator) publish(token uuid.UUID, rep *RangeReport, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.current {
		return
	}
	if err != nil {
		c.state = StateFailed
		c.report = nil
		c.err = err
		return
	}
	c.state = StateReady
	c.report = rep
	c.err = nil
}

// Snapshot returns the current state with the report or error, if any.
func (c *Coordinator) Snapshot() (State, *RangeReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.report, c.err
}

// Report returns the current report and the user it was requested for when
// the coordinator is Ready. The user ID is bound to the request token under
// the same lock as the token itself, so a ready report can never be paired
// with the subject of a different request. Callers that export must check ok
// and treat anything else as a no-op.
func (c *Coordinator) Report() (*RangeReport, string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReady {
		return nil, "", false
	}
	return c.report, c.userID, true
}
