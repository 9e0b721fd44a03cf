package main

import (
	"log"

	"github.com/hridoy-islam/attendanceadmin/config"
	"github.com/hridoy-islam/attendanceadmin/middleware"
	"github.com/hridoy-islam/attendanceadmin/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}

	if middleware.ConnectDB() {
		log.Fatal("Failed to connect to database")
	}

	config.InitializeFirebase()

	app := fiber.New(fiber.Config{
		AppName: "Attendance Admin API",
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowCredentials: true,
		AllowOriginsFunc: func(origin string) bool { return true },
	}))

	routes.AppRoutes(app)

	port := middleware.GetEnv("API_PORT")
	if port == "" {
		port = "8080"
	}
	log.Fatal(app.Listen(":" + port))
}
