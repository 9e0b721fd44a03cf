package routes

import (
	"github.com/hridoy-islam/attendanceadmin/controller"
	"github.com/hridoy-islam/attendanceadmin/middleware"

	"github.com/gofiber/fiber/v2"
)

func AppRoutes(app *fiber.App) {
	// SAMPLE ENDPOINT
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Attendance Admin API")
	})

	// LOGIN PAGE
	app.Post("/login", controller.Login)

	// FORGOT PASSWORD
	app.Post("/forgot-password", controller.ForgotPassword)
	app.Post("/verify-code", controller.VerifyResetCode)
	app.Post("/reset-password", controller.ResetPassword)

	// Grouped routes (token required)
	api := app.Group("/api", middleware.JWTMiddleware())

	api.Post("/logout", controller.Logout)

	// USERS
	api.Post("/users", controller.CreateUser)
	api.Get("/users", controller.GetAllUsers)
	api.Get("/users/:id", controller.GetSingleUser)
	api.Patch("/users/:id", controller.UpdateUser)

	// TASKS
	api.Post("/task", controller.CreateTask)
	api.Patch("/task/:id", controller.UpdateTask)
	api.Get("/task/duetasks/:id", controller.GetDueTasks)
	api.Post("/task/:id/comments", controller.CreateComment)
	api.Get("/task/:id/comments", controller.GetTaskComments)

	// ATTENDANCE REPORT
	api.Get("/attendance", controller.GetAttendanceReport)
	api.Get("/attendance/rows", controller.GetAttendanceRows)
	api.Post("/attendance/request", controller.RequestAttendanceReport)
	api.Get("/attendance/status", controller.GetAttendanceReportStatus)
	api.Get("/attendance/export", controller.ExportAttendancePDF)
}
