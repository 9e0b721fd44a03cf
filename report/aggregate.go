package report

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Totals is the range-level summation over day reports. It is computed at
// the call sites that need it via CalculateTotals, never stored on the
// report, so every consumer applies the same summation.
type Totals struct {
	TotalWorkedHours float64 `json:"totalWorkedHours"`
	TotalBreakHours  float64 `json:"totalBreakHours"`
	NetHoursWorked   float64 `json:"netHoursWorked"`
}

// Aggregate fetches raw attendance records for the inclusive range and builds
// the RangeReport. Day totals are sums over the session totals actually kept,
// not re-derived from instants. A provider failure yields an error; a range
// with zero activity yields a valid report with an empty Report slice.
func Aggregate(ctx context.Context, p Provider, userID string, rng TimeRange, now time.Time) (*RangeReport, error) {
	raw, err := p.FetchEvents(ctx, userID, rng)
	if err != nil {
		return nil, fmt.Errorf("fetch attendance events: %w", err)
	}

	byDay := make(map[time.Time][]RawSession)
	for _, r := range raw {
		if r.ClockIn == nil {
			continue
		}
		ci := r.ClockIn.UTC()
		day := time.Date(ci.Year(), ci.Month(), ci.Day(), 0, 0, 0, 0, time.UTC)
		byDay[day] = append(byDay[day], r)
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	rep := &RangeReport{
		StartDate: rng.Start.Format(dayLayout),
		EndDate:   rng.End.Format(dayLayout),
		Report:    make([]DayReport, 0, len(days)),
	}
	for _, day := range days {
		sessions := BuildSessions(byDay[day], now)
		if len(sessions) == 0 {
			continue
		}
		dr := DayReport{Date: day, Sessions: sessions}
		for _, s := range sessions {
			dr.TotalWorkedHours += s.TotalWorkedHours
			dr.TotalBreakHours += s.TotalBreakHours
			dr.NetHoursWorked += s.NetHoursWorked
		}
		rep.Report = append(rep.Report, dr)
	}
	rep.TotalDays = len(rep.Report)

	return rep, nil
}

// CalculateTotals sums worked, break and net hours over a report's days.
func CalculateTotals(rep *RangeReport) Totals {
	var t Totals
	for _, day := range rep.Report {
		t.TotalWorkedHours += day.TotalWorkedHours
		t.TotalBreakHours += day.TotalBreakHours
		t.NetHoursWorked += day.NetHoursWorked
	}
	return t
}
