package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestToken(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

func blockedAggregate(release <-chan struct{}, rep *RangeReport, err error) AggregateFunc {
	return func(ctx context.Context, userID string, rng TimeRange) (*RangeReport, error) {
		<-release
		return rep, err
	}
}

func rangeFor(t *testing.T, start, end string) TimeRange {
	t.Helper()
	rng, err := NewTimeRange(start, end)
	require.NoError(t, err)
	return rng
}

func TestCoordinatorStartsIdle(t *testing.T) {
	c := NewCoordinator(nil)
	state, rep, err := c.Snapshot()
	assert.Equal(t, StateIdle, state)
	assert.Nil(t, rep)
	assert.NoError(t, err)

	_, _, ok := c.Report()
	assert.False(t, ok, "export must be a no-op before any request")
}

func TestCoordinatorLoadingToReady(t *testing.T) {
	release := make(chan struct{})
	want := &RangeReport{StartDate: "2024-06-01", EndDate: "2024-06-30"}
	c := NewCoordinator(blockedAggregate(release, want, nil))

	c.Request(context.Background(), "42", rangeFor(t, "2024-06-01", "2024-06-30"))

	state, rep, err := c.Snapshot()
	assert.Equal(t, StateLoading, state)
	assert.Nil(t, rep, "no stale report while loading")
	assert.NoError(t, err)

	close(release)
	require.Eventually(t, func() bool {
		state, _, _ := c.Snapshot()
		return state == StateReady
	}, time.Second, time.Millisecond)

	_, rep, _ = c.Snapshot()
	assert.Equal(t, want, rep)

	got, userID, ok := c.Report()
	assert.True(t, ok)
	assert.Equal(t, want, got)
	assert.Equal(t, "42", userID, "ready report carries the user it was requested for")
}

func TestCoordinatorLoadingToFailed(t *testing.T) {
	release := make(chan struct{})
	c := NewCoordinator(blockedAggregate(release, nil, errors.New("upstream down")))

	c.Request(context.Background(), "42", rangeFor(t, "2024-06-01", "2024-06-30"))
	close(release)

	require.Eventually(t, func() bool {
		state, _, _ := c.Snapshot()
		return state == StateFailed
	}, time.Second, time.Millisecond)

	_, rep, err := c.Snapshot()
	assert.Nil(t, rep)
	assert.EqualError(t, err, "upstream down")

	_, _, ok := c.Report()
	assert.False(t, ok, "failed state must not expose a report")
}

// request(rangeA) then request(rangeB): when A's fetch resolves after B's,
// the final state must reflect B only.
func TestCoordinatorSupersession(t *testing.T) {
	c := NewCoordinator(nil)

	repA := &RangeReport{StartDate: "2024-05-01", EndDate: "2024-05-31"}
	repB := &RangeReport{StartDate: "2024-06-01", EndDate: "2024-06-30"}

	c.mu.Lock()
	tokenA := newTestToken(t)
	c.current = tokenA
	c.state = StateLoading
	c.mu.Unlock()

	c.mu.Lock()
	tokenB := newTestToken(t)
	c.current = tokenB
	c.mu.Unlock()

	// B resolves first, then A arrives late.
	c.publish(tokenB, repB, nil)
	c.publish(tokenA, repA, nil)

	state, rep, err := c.Snapshot()
	assert.Equal(t, StateReady, state)
	assert.Equal(t, repB, rep)
	assert.NoError(t, err)
}

func TestCoordinatorSupersededFailureIgnored(t *testing.T) {
	c := NewCoordinator(nil)

	repB := &RangeReport{StartDate: "2024-06-01", EndDate: "2024-06-30"}

	c.mu.Lock()
	tokenA := newTestToken(t)
	c.current = tokenA
	c.state = StateLoading
	c.mu.Unlock()

	c.mu.Lock()
	tokenB := newTestToken(t)
	c.current = tokenB
	c.mu.Unlock()

	c.publish(tokenB, repB, nil)
	c.publish(tokenA, nil, errors.New("timeout"))

	state, rep, err := c.Snapshot()
	assert.Equal(t, StateReady, state, "late failure from superseded request must not flip state")
	assert.Equal(t, repB, rep)
	assert.NoError(t, err)
}

// Two overlapping requests for different users: even when the later request's
// fetch resolves first and the earlier one lands late, the ready report must
// stay paired with the user of the request that published it. Pairing the
// report with a user recorded anywhere outside the token's critical section
// would let the late interleaving export one user's hours under another
// user's name.
func TestCoordinatorReportBoundToRequestUser(t *testing.T) {
	c := NewCoordinator(nil)

	repA := &RangeReport{StartDate: "2024-05-01", EndDate: "2024-05-31"}
	repB := &RangeReport{StartDate: "2024-06-01", EndDate: "2024-06-30"}

	c.mu.Lock()
	tokenA := newTestToken(t)
	c.current = tokenA
	c.userID = "7"
	c.state = StateLoading
	c.mu.Unlock()

	c.mu.Lock()
	tokenB := newTestToken(t)
	c.current = tokenB
	c.userID = "9"
	c.mu.Unlock()

	c.publish(tokenB, repB, nil)
	c.publish(tokenA, repA, nil)

	rep, userID, ok := c.Report()
	require.True(t, ok)
	assert.Equal(t, repB, rep)
	assert.Equal(t, "9", userID)
}

func TestCoordinatorNewRequestDiscardsPreviousResult(t *testing.T) {
	release := make(chan struct{})
	first := &RangeReport{StartDate: "2024-05-01", EndDate: "2024-05-31"}
	c := NewCoordinator(blockedAggregate(release, first, nil))

	c.Request(context.Background(), "42", rangeFor(t, "2024-05-01", "2024-05-31"))
	close(release)
	require.Eventually(t, func() bool {
		state, _, _ := c.Snapshot()
		return state == StateReady
	}, time.Second, time.Millisecond)

	// A new request immediately drops the prior report.
	blocked := make(chan struct{})
	c.aggregate = blockedAggregate(blocked, nil, nil)
	c.Request(context.Background(), "42", rangeFor(t, "2024-06-01", "2024-06-30"))

	state, rep, err := c.Snapshot()
	assert.Equal(t, StateLoading, state)
	assert.Nil(t, rep)
	assert.NoError(t, err)
	close(blocked)
}
