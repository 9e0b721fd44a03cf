package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// pageBreakAt is the Y position (mm) past which no further row is started on
// the current page; A4 is 297mm tall and rows vary in height with their break
// lines, so the page budget is accumulated height, not a row count.
const pageBreakAt = 270.0

var pdfHeaders = []string{"Date", "Clock In", "Clock Out", "Worked", "Break", "Net", "Breaks"}
var pdfColWidths = []float64{32, 24, 24, 18, 18, 18, 48}

// ExportPDF serializes a report into a paginated PDF and returns the document
// bytes together with the derived filename. The report is read-only input;
// row content matches BuildRows exactly.
func ExportPDF(rep *RangeReport, user UserProfile) ([]byte, string, error) {
	rows := BuildRows(rep)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Header metadata
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "Attendance Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 6, fmt.Sprintf("Name: %s", user.Name))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Email: %s", user.Email))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s - %s",
		formatDayString(rep.StartDate), formatDayString(rep.EndDate)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total Days: %d", rep.TotalDays))
	pdf.Ln(9)

	writeTableHeader(pdf)

	pdf.SetFont("Arial", "", 8)
	for _, row := range rows {
		if pdf.GetY()+rowHeight(row) > pageBreakAt {
			pdf.AddPage()
			writeTableHeader(pdf)
			pdf.SetFont("Arial", "", 8)
		}
		if row.Total {
			pdf.SetFont("Arial", "B", 8)
		}
		writeRow(pdf, row)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("generate PDF: %w", err)
	}

	filename := fmt.Sprintf("attendance_report_%s_%s_%s.pdf",
		SanitizeName(user.Name), rep.StartDate, rep.EndDate)
	return buf.Bytes(), filename, nil
}

func writeTableHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(220, 220, 220)
	for i, h := range pdfHeaders {
		pdf.CellFormat(pdfColWidths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

// rowHeight is the printed height of a row: breaks are newline-joined inside
// a single cell, so the row grows by one 6mm line per break.
func rowHeight(row Row) float64 {
	lines := len(row.Breaks)
	if lines == 0 {
		lines = 1
	}
	return float64(lines) * 6
}

func writeRow(pdf *gofpdf.Fpdf, row Row) {
	height := rowHeight(row)

	cells := []string{row.Date, row.ClockIn, row.ClockOut, row.Worked, row.Break, row.Net}
	for i, cell := range cells {
		pdf.CellFormat(pdfColWidths[i], height, cell, "1", 0, "L", false, 0, "")
	}
	x, y := pdf.GetXY()
	pdf.MultiCell(pdfColWidths[6], 6, strings.Join(row.Breaks, "\n"), "1", "L", false)
	pdf.SetXY(x-sumWidths(pdfColWidths[:6]), y)
	pdf.Ln(height)
}

func sumWidths(widths []float64) float64 {
	total := 0.0
	for _, w := range widths {
		total += w
	}
	return total
}

func formatDayString(day string) string {
	d, err := time.ParseInLocation(dayLayout, day, time.UTC)
	if err != nil {
		return day
	}
	return FormatCalendarDate(d)
}

// SanitizeName makes an untrusted user name safe for use in a filename.
// Anything outside letters, digits, dot and dash becomes an underscore.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
