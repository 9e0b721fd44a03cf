package report

import (
	"sort"
	"time"
)

// BuildSessions reconstructs ordered sessions from raw attendance records.
// Records without a clock-in are invalid and skipped; everything else is kept
// even when the stored numbers look provisional. Open sessions and open
// breaks are measured up to now. The result is ordered by clock-in ascending.
func BuildSessions(raw []RawSession, now time.Time) []Session {
	sessions := make([]Session, 0, len(raw))
	for _, r := range raw {
		if r.ClockIn == nil {
			continue
		}
		sessions = append(sessions, buildSession(r, now))
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ClockIn.Before(sessions[j].ClockIn)
	})
	return sessions
}

func buildSession(r RawSession, now time.Time) Session {
	clockIn := *r.ClockIn
	end := now
	if r.ClockOut != nil {
		end = *r.ClockOut
	}

	worked := end.Sub(clockIn).Hours()
	if worked < 0 {
		worked = 0
	}

	breaks := make([]BreakInterval, 0, len(r.Breaks))
	breaks = append(breaks, r.Breaks...)
	sort.Slice(breaks, func(i, j int) bool {
		return breaks[i].BreakStartTime.Before(breaks[j].BreakStartTime)
	})

	var breakHours float64
	for _, b := range breaks {
		breakHours += breakDuration(b, clockIn, end, now)
	}

	net := worked - breakHours
	if net < 0 {
		net = 0
	}

	return Session{
		ClockIn:          clockIn,
		ClockOut:         r.ClockOut,
		Breaks:           breaks,
		TotalWorkedHours: worked,
		TotalBreakHours:  breakHours,
		NetHoursWorked:   net,
	}
}

// breakDuration counts only the part of a break that falls inside the session
// window. An open break runs until now.
func breakDuration(b BreakInterval, clockIn, sessionEnd, now time.Time) float64 {
	start := b.BreakStartTime
	if start.Before(clockIn) {
		start = clockIn
	}
	end := now
	if b.BreakEndTime != nil {
		end = *b.BreakEndTime
	}
	if end.After(sessionEnd) {
		end = sessionEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start).Hours()
}
