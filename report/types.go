// Package report implements the attendance report pipeline: it rebuilds
// per-day work sessions from raw clock and break records, aggregates them
// over a date range, and projects the result into table rows and a printable
// PDF document.
package report

import (
	"context"
	"errors"
	"time"
)

const dayLayout = "2006-01-02"

// ErrInvalidRange is returned when a requested date range ends before it starts.
var ErrInvalidRange = errors.New("start date must not be after end date")

// TimeRange is an inclusive calendar-day interval in UTC.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange parses two YYYY-MM-DD calendar-day strings into a TimeRange.
func NewTimeRange(startDate, endDate string) (TimeRange, error) {
	start, err := time.ParseInLocation(dayLayout, startDate, time.UTC)
	if err != nil {
		return TimeRange{}, err
	}
	end, err := time.ParseInLocation(dayLayout, endDate, time.UTC)
	if err != nil {
		return TimeRange{}, err
	}
	if end.Before(start) {
		return TimeRange{}, ErrInvalidRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// BreakInterval is one break inside a session. A nil BreakEndTime means the
// break was still open when the report was generated.
type BreakInterval struct {
	BreakStartTime time.Time  `json:"breakStartTime"`
	BreakEndTime   *time.Time `json:"breakEndTime,omitempty"`
}

// Session is one clock-in-to-clock-out span of work. A nil ClockOut means the
// session was still open when the report was generated.
type Session struct {
	ClockIn          time.Time       `json:"clockIn"`
	ClockOut         *time.Time      `json:"clockOut,omitempty"`
	Breaks           []BreakInterval `json:"breaks"`
	TotalWorkedHours float64         `json:"totalWorkedHours"`
	TotalBreakHours  float64         `json:"totalBreakHours"`
	NetHoursWorked   float64         `json:"netHoursWorked"`
}

// DayReport holds one calendar day's sessions and their summed totals.
type DayReport struct {
	Date             time.Time `json:"date"`
	Sessions         []Session `json:"sessions"`
	TotalWorkedHours float64   `json:"totalWorkedHours"`
	TotalBreakHours  float64   `json:"totalBreakHours"`
	NetHoursWorked   float64   `json:"netHoursWorked"`
}

// RangeReport is the aggregated attendance summary for one user over one
// queried date interval. Days without any session are omitted from Report,
// not zero-filled, and TotalDays counts only the days present.
type RangeReport struct {
	StartDate string      `json:"startDate"`
	EndDate   string      `json:"endDate"`
	TotalDays int         `json:"totalDays"`
	Report    []DayReport `json:"report"`
}

// UserProfile is read-only reference data about the reported user.
type UserProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RawSession is one attendance record as stored upstream, before validation.
// ClockIn may be nil for malformed records; those are dropped during
// reconstruction.
type RawSession struct {
	ClockIn  *time.Time
	ClockOut *time.Time
	Breaks   []BreakInterval
}

// Provider supplies raw attendance records for a user over an inclusive
// calendar-day range. Returning an empty slice is a valid, non-error outcome.
type Provider interface {
	FetchEvents(ctx context.Context, userID string, rng TimeRange) ([]RawSession, error)
}
