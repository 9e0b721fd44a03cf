package controller

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/hridoy-islam/attendanceadmin/middleware"
	"github.com/hridoy-islam/attendanceadmin/model"
	"github.com/hridoy-islam/attendanceadmin/model/response"
	"github.com/hridoy-islam/attendanceadmin/report"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GormAttendanceProvider serves raw attendance records from PostgreSQL. It
// implements report.Provider; the stored instants are already normalized to
// UTC by convention.
type GormAttendanceProvider struct {
	DB *gorm.DB
}

func (p *GormAttendanceProvider) FetchEvents(ctx context.Context, userID string, rng report.TimeRange) ([]report.RawSession, error) {
	endExclusive := rng.End.AddDate(0, 0, 1)

	var records []model.AttendanceRecord
	err := p.DB.WithContext(ctx).
		Preload("Breaks", func(db *gorm.DB) *gorm.DB {
			return db.Order("break_start_time ASC")
		}).
		Where("user_id = ? AND clock_in >= ? AND clock_in < ?", userID, rng.Start, endExclusive).
		Order("clock_in ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	raw := make([]report.RawSession, 0, len(records))
	for _, rec := range records {
		rs := report.RawSession{ClockIn: rec.ClockIn, ClockOut: rec.ClockOut}
		for _, b := range rec.Breaks {
			rs.Breaks = append(rs.Breaks, report.BreakInterval{
				BreakStartTime: b.BreakStartTime,
				BreakEndTime:   b.BreakEndTime,
			})
		}
		raw = append(raw, rs)
	}
	return raw, nil
}

func aggregateAttendance(ctx context.Context, userID string, rng report.TimeRange) (*report.RangeReport, error) {
	provider := &GormAttendanceProvider{DB: middleware.DBConn}
	return report.Aggregate(ctx, provider, userID, rng, time.Now().UTC())
}

// Each viewer gets one coordinator so rapid range changes supersede each
// other instead of racing. The coordinator itself tracks which user the
// in-flight request is for; nothing about the target is stored beside it.
var (
	coordMu      sync.Mutex
	coordinators = make(map[uint]*report.Coordinator)
)

func coordinatorFor(viewerID uint) *report.Coordinator {
	coordMu.Lock()
	defer coordMu.Unlock()
	coord, ok := coordinators[viewerID]
	if !ok {
		coord = report.NewCoordinator(aggregateAttendance)
		coordinators[viewerID] = coord
	}
	return coord
}

func parseReportQuery(c *fiber.Ctx) (string, report.TimeRange, error) {
	userID := c.Query("userId")
	if userID == "" {
		return "", report.TimeRange{}, fmt.Errorf("userId is required")
	}
	rng, err := report.NewTimeRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		return "", report.TimeRange{}, err
	}
	return userID, rng, nil
}

// GetAttendanceReport builds the range report synchronously. Zero sessions in
// range is a valid empty report, not an error.
func GetAttendanceReport(c *fiber.Ctx) error {
	userID, rng, err := parseReportQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	rep, err := aggregateAttendance(c.Context(), userID, rng)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to build attendance report",
			"error":   err.Error(),
		})
	}

	return c.JSON(response.ResponseModel{
		RetCode: "200",
		Message: "Attendance report generated successfully.",
		Data:    rep,
	})
}

// GetAttendanceRows returns the flat row projection used by the report table.
func GetAttendanceRows(c *fiber.Ctx) error {
	userID, rng, err := parseReportQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	rep, err := aggregateAttendance(c.Context(), userID, rng)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to build attendance report",
			"error":   err.Error(),
		})
	}

	return c.JSON(response.ResponseModel{
		RetCode: "200",
		Message: "Attendance rows generated successfully.",
		Data:    report.BuildRows(rep),
	})
}

type attendanceRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

// RequestAttendanceReport starts an asynchronous report fetch for the viewer.
// A new request while one is loading supersedes it.
func RequestAttendanceReport(c *fiber.Ctx) error {
	viewerID, ok := c.Locals("user_id").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	var req attendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid JSON format",
			"error":   err.Error(),
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	rng, err := report.NewTimeRange(req.StartDate, req.EndDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	token := coordinatorFor(viewerID).Request(context.Background(), req.UserID, rng)

	return c.JSON(response.ResponseModel{
		RetCode: "200",
		Message: "Report request accepted.",
		Data: fiber.Map{
			"token": token.String(),
			"state": report.StateLoading.String(),
		},
	})
}

// GetAttendanceReportStatus reports the viewer's coordinator state and, when
// ready, the report itself.
func GetAttendanceReportStatus(c *fiber.Ctx) error {
	viewerID, ok := c.Locals("user_id").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	state, rep, err := coordinatorFor(viewerID).Snapshot()
	data := fiber.Map{"state": state.String()}
	if rep != nil {
		data["report"] = rep
		data["totals"] = report.CalculateTotals(rep)
	}
	if err != nil {
		data["error"] = err.Error()
	}

	return c.JSON(response.ResponseModel{
		RetCode: "200",
		Message: "Report status fetched successfully.",
		Data:    data,
	})
}

// ExportAttendancePDF streams the viewer's current report as a PDF. Exporting
// is only valid when a report is ready; otherwise this is a guarded no-op.
func ExportAttendancePDF(c *fiber.Ctx) error {
	viewerID, ok := c.Locals("user_id").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	rep, targetID, ready := coordinatorFor(viewerID).Report()
	if !ready {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "No report available to export",
		})
	}

	var user model.User
	if err := middleware.DBConn.First(&user, "id = ?", targetID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}

	profile := report.UserProfile{
		ID:    strconv.FormatUint(uint64(user.ID), 10),
		Name:  user.Name,
		Email: user.Email,
	}

	doc, filename, err := report.ExportPDF(rep, profile)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to generate PDF",
			"error":   err.Error(),
		})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(doc)
}
