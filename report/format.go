package report

import (
	"fmt"
	"math"
	"time"
)

// FormatCalendarDate renders a date in long form, e.g. "Jun 3rd 2024".
func FormatCalendarDate(d time.Time) string {
	return fmt.Sprintf("%s %s %d", d.Month().String()[:3], ordinal(d.Day()), d.Year())
}

func ordinal(day int) string {
	suffix := "th"
	if day%100 < 11 || day%100 > 13 {
		switch day % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", day, suffix)
}

// FormatClockTime renders an instant as h:mm:ss AM/PM.
func FormatClockTime(t time.Time) string {
	return t.Format("3:04:05 PM")
}

// FormatHours converts a fractional-hour duration into "{H}h {M}m". The value
// is rounded to whole minutes first and only then split into hours and
// minutes; splitting before rounding disagrees at half-minute boundaries.
func FormatHours(hours float64) string {
	minutes := int(math.Round(hours * 60))
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
