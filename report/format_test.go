package report

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCalendarDate(t *testing.T) {
	cases := []struct {
		date time.Time
		want string
	}{
		{time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), "Jun 3rd 2024"},
		{time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC), "Nov 1st 2024"},
		{time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), "Jan 2nd 2024"},
		{time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), "Jan 11th 2024"},
		{time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC), "Jan 12th 2024"},
		{time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC), "Jan 13th 2024"},
		{time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC), "Jan 21st 2024"},
		{time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC), "Jan 22nd 2024"},
		{time.Date(2024, 1, 23, 0, 0, 0, 0, time.UTC), "Jan 23rd 2024"},
		{time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), "Dec 31st 2024"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatCalendarDate(tc.date))
	}
}

func TestFormatClockTime(t *testing.T) {
	assert.Equal(t, "9:05:07 AM", FormatClockTime(time.Date(2024, 6, 3, 9, 5, 7, 0, time.UTC)))
	assert.Equal(t, "3:04:05 PM", FormatClockTime(time.Date(2024, 6, 3, 15, 4, 5, 0, time.UTC)))
	assert.Equal(t, "12:00:00 AM", FormatClockTime(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)))
}

func TestFormatHours(t *testing.T) {
	cases := []struct {
		hours float64
		want  string
	}{
		{0, "0h 0m"},
		{0.25, "0h 15m"},
		{1.0, "1h 0m"},
		{6.25, "6h 15m"},
		{8.999, "9h 0m"},
		{23.983333333333334, "23h 59m"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatHours(tc.hours), "hours=%v", tc.hours)
	}
}

// 1h 59.5m sits exactly on the half-minute boundary: rounding the total
// minutes first gives 120, so the output must be "2h 0m", never "1h 60m" or
// "1h 59m".
func TestFormatHoursRoundsBeforeSplitting(t *testing.T) {
	assert.Equal(t, "2h 0m", FormatHours(119.5/60))
}

func TestFormatHoursMinutesStayInRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		h := float64(i) * 0.0173
		out := FormatHours(h)

		var hrs, mins int
		_, err := fmt.Sscanf(out, "%dh %dm", &hrs, &mins)
		require.NoError(t, err, "output %q", out)
		assert.GreaterOrEqual(t, mins, 0)
		assert.LessOrEqual(t, mins, 59)

		rebuilt := float64(hrs) + float64(mins)/60
		assert.LessOrEqual(t, math.Abs(rebuilt-h), 1.0/60+1e-9, "output %q", out)
	}
}

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"John Doe", "John_Doe"},
		{"../../etc/passwd", ".._.._etc_passwd"},
		{`a\b:c*d?e"f<g>h|i`, "a_b_c_d_e_f_g_h_i"},
		{"plain-name.1", "plain-name.1"},
	}
	for _, tc := range cases {
		got := SanitizeName(tc.in)
		assert.Equal(t, tc.want, got)
		assert.False(t, strings.ContainsAny(got, `/\:*?"<>| `), "sanitized %q", got)
	}
}
