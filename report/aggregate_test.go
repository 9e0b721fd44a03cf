package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	raw   []RawSession
	err   error
	calls int
}

func (f *fakeProvider) FetchEvents(ctx context.Context, userID string, rng TimeRange) ([]RawSession, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.raw, nil
}

func mustRange(t *testing.T, start, end string) TimeRange {
	t.Helper()
	rng, err := NewTimeRange(start, end)
	require.NoError(t, err)
	return rng
}

func dayAt(day, hour, min int) time.Time {
	return time.Date(2024, 6, day, hour, min, 0, 0, time.UTC)
}

// Two sessions on one day: 4.0h worked / 0.5h break and 3.0h worked / 0.25h
// break must sum to 7.0 / 0.75 / 6.25, and 6.25 renders as "6h 15m".
func TestAggregateDayTotals(t *testing.T) {
	p := &fakeProvider{raw: []RawSession{
		{
			ClockIn:  ptr(dayAt(3, 9, 0)),
			ClockOut: ptr(dayAt(3, 13, 0)),
			Breaks:   []BreakInterval{{BreakStartTime: dayAt(3, 10, 0), BreakEndTime: ptr(dayAt(3, 10, 30))}},
		},
		{
			ClockIn:  ptr(dayAt(3, 14, 0)),
			ClockOut: ptr(dayAt(3, 17, 0)),
			Breaks:   []BreakInterval{{BreakStartTime: dayAt(3, 15, 0), BreakEndTime: ptr(dayAt(3, 15, 15))}},
		},
	}}

	rep, err := Aggregate(context.Background(), p, "42", mustRange(t, "2024-06-01", "2024-06-30"), reportNow)
	require.NoError(t, err)

	require.Len(t, rep.Report, 1)
	day := rep.Report[0]
	assert.Equal(t, 7.0, day.TotalWorkedHours)
	assert.Equal(t, 0.75, day.TotalBreakHours)
	assert.Equal(t, 6.25, day.NetHoursWorked)
	assert.Equal(t, "6h 15m", FormatHours(day.NetHoursWorked))
	assert.Equal(t, 1, rep.TotalDays)
}

func TestAggregateDayTotalsEqualSessionSums(t *testing.T) {
	p := &fakeProvider{raw: []RawSession{
		{ClockIn: ptr(dayAt(3, 9, 0)), ClockOut: ptr(dayAt(3, 12, 7))},
		{ClockIn: ptr(dayAt(3, 13, 0)), ClockOut: ptr(dayAt(3, 17, 41))},
		{ClockIn: ptr(dayAt(4, 8, 30)), ClockOut: ptr(dayAt(4, 16, 3))},
	}}

	rep, err := Aggregate(context.Background(), p, "42", mustRange(t, "2024-06-01", "2024-06-30"), reportNow)
	require.NoError(t, err)

	for _, day := range rep.Report {
		var worked, brk, net float64
		for _, s := range day.Sessions {
			worked += s.TotalWorkedHours
			brk += s.TotalBreakHours
			net += s.NetHoursWorked
		}
		// Exact equality: day totals are sums over the rendered sessions,
		// never recomputed from instants.
		assert.Equal(t, worked, day.TotalWorkedHours)
		assert.Equal(t, brk, day.TotalBreakHours)
		assert.Equal(t, net, day.NetHoursWorked)
	}
}

func TestAggregateGroupsAndOrdersDays(t *testing.T) {
	p := &fakeProvider{raw: []RawSession{
		{ClockIn: ptr(dayAt(10, 9, 0)), ClockOut: ptr(dayAt(10, 17, 0))},
		{ClockIn: ptr(dayAt(3, 9, 0)), ClockOut: ptr(dayAt(3, 17, 0))},
		{ClockIn: ptr(dayAt(3, 18, 0)), ClockOut: ptr(dayAt(3, 19, 0))},
	}}

	rep, err := Aggregate(context.Background(), p, "42", mustRange(t, "2024-06-01", "2024-06-30"), reportNow)
	require.NoError(t, err)

	require.Len(t, rep.Report, 2)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), rep.Report[0].Date)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), rep.Report[1].Date)
	assert.Len(t, rep.Report[0].Sessions, 2)
	assert.Equal(t, 2, rep.TotalDays, "days without sessions are omitted, not zero-filled")
}

func TestAggregateEmptyRangeIsValid(t *testing.T) {
	p := &fakeProvider{}

	rep, err := Aggregate(context.Background(), p, "42", mustRange(t, "2024-06-01", "2024-06-30"), reportNow)
	require.NoError(t, err, "zero activity is a valid outcome, not an error")

	assert.Empty(t, rep.Report)
	assert.Equal(t, 0, rep.TotalDays)
	assert.Equal(t, "2024-06-01", rep.StartDate)
	assert.Equal(t, "2024-06-30", rep.EndDate)
}

func TestAggregateProviderFailure(t *testing.T) {
	p := &fakeProvider{err: errors.New("connection refused")}

	rep, err := Aggregate(context.Background(), p, "42", mustRange(t, "2024-06-01", "2024-06-30"), reportNow)
	require.Error(t, err)
	assert.Nil(t, rep)
}

func TestAggregateMalformedRecordSkipped(t *testing.T) {
	p := &fakeProvider{raw: []RawSession{
		{ClockOut: ptr(dayAt(3, 13, 0))}, // no clock-in
		{ClockIn: ptr(dayAt(3, 14, 0)), ClockOut: ptr(dayAt(3, 17, 0))},
	}}

	rep, err := Aggregate(context.Background(), p, "42", mustRange(t, "2024-06-01", "2024-06-30"), reportNow)
	require.NoError(t, err)
	require.Len(t, rep.Report, 1)
	assert.Len(t, rep.Report[0].Sessions, 1)
}

// Closed sessions against unchanged upstream data must aggregate to
// structurally equal reports.
func TestAggregateIdempotent(t *testing.T) {
	p := &fakeProvider{raw: []RawSession{
		{
			ClockIn:  ptr(dayAt(3, 9, 0)),
			ClockOut: ptr(dayAt(3, 17, 0)),
			Breaks:   []BreakInterval{{BreakStartTime: dayAt(3, 12, 0), BreakEndTime: ptr(dayAt(3, 12, 30))}},
		},
	}}
	rng := mustRange(t, "2024-06-01", "2024-06-30")

	first, err := Aggregate(context.Background(), p, "42", rng, reportNow)
	require.NoError(t, err)
	second, err := Aggregate(context.Background(), p, "42", rng, reportNow)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, p.calls)
}

func TestCalculateTotals(t *testing.T) {
	rep := &RangeReport{Report: []DayReport{
		{TotalWorkedHours: 7.0, TotalBreakHours: 0.75, NetHoursWorked: 6.25},
		{TotalWorkedHours: 8.0, TotalBreakHours: 1.0, NetHoursWorked: 7.0},
	}}

	totals := CalculateTotals(rep)
	assert.Equal(t, 15.0, totals.TotalWorkedHours)
	assert.Equal(t, 1.75, totals.TotalBreakHours)
	assert.Equal(t, 13.25, totals.NetHoursWorked)
}

func TestNewTimeRangeValidation(t *testing.T) {
	_, err := NewTimeRange("2024-06-30", "2024-06-01")
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = NewTimeRange("not-a-date", "2024-06-01")
	assert.Error(t, err)

	rng, err := NewTimeRange("2024-06-01", "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, rng.Start, rng.End, "single-day range is valid")
}
