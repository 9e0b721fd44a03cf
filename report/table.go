package report

// Row is one table row of the rendered report. The first row of each day
// carries the date label and a RowSpan covering the day's sessions; rows for
// further sessions of the same day leave Date empty. The final row is the
// synthetic totals row.
type Row struct {
	Date       string   `json:"date"`
	RowSpan    int      `json:"rowSpan"`
	DaySummary string   `json:"daySummary,omitempty"`
	ClockIn    string   `json:"clockIn"`
	ClockOut   string   `json:"clockOut"`
	Worked     string   `json:"worked"`
	Break      string   `json:"break"`
	Net        string   `json:"net"`
	Breaks     []string `json:"breaks"`
	Total      bool     `json:"total,omitempty"`
}

// BuildRows projects a report into a flat, order-preserving row sequence:
// day order matches the report, session order matches each day, and a totals
// row computed with CalculateTotals is appended.
func BuildRows(rep *RangeReport) []Row {
	rows := make([]Row, 0, len(rep.Report)+1)
	for _, day := range rep.Report {
		for i, s := range day.Sessions {
			row := Row{
				ClockIn: FormatClockTime(s.ClockIn),
				Worked:  FormatHours(s.TotalWorkedHours),
				Break:   FormatHours(s.TotalBreakHours),
				Net:     FormatHours(s.NetHoursWorked),
				Breaks:  formatBreaks(s.Breaks),
			}
			if s.ClockOut != nil {
				row.ClockOut = FormatClockTime(*s.ClockOut)
			}
			if i == 0 {
				row.Date = FormatCalendarDate(day.Date)
				row.RowSpan = len(day.Sessions)
				if len(day.Sessions) > 1 {
					row.DaySummary = FormatHours(day.NetHoursWorked)
				}
			}
			rows = append(rows, row)
		}
	}

	totals := CalculateTotals(rep)
	rows = append(rows, Row{
		Date:    "Total",
		RowSpan: 1,
		Worked:  FormatHours(totals.TotalWorkedHours),
		Break:   FormatHours(totals.TotalBreakHours),
		Net:     FormatHours(totals.NetHoursWorked),
		Breaks:  []string{},
		Total:   true,
	})
	return rows
}

// formatBreaks renders each break as "{start} - {end}", end left blank for an
// open break.
func formatBreaks(breaks []BreakInterval) []string {
	out := make([]string, 0, len(breaks))
	for _, b := range breaks {
		end := ""
		if b.BreakEndTime != nil {
			end = FormatClockTime(*b.BreakEndTime)
		}
		out = append(out, FormatClockTime(b.BreakStartTime)+" - "+end)
	}
	return out
}
