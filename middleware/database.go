package middleware

import (
	"fmt"
	"log"

	"github.com/hridoy-islam/attendanceadmin/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	DBConn *gorm.DB
	DBErr  error
)

// ConnectDB initializes the connection to the PostgreSQL database using
// environment variables for configuration and assigns the connection
// to the global variable DBConn. It returns true if there was an error
// establishing the connection, otherwise false.
func ConnectDB() bool {
	dns := fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=%s TimeZone=%s",
		GetEnv("DB_HOST"), GetEnv("DB_PORT"), GetEnv("DB_NAME"),
		GetEnv("DB_UNME"), GetEnv("DB_PWRD"), GetEnv("DB_SSLM"),
		GetEnv("DB_TMEZ"))

	DBConn, DBErr = gorm.Open(postgres.Open(dns), &gorm.Config{})
	if DBErr != nil {
		log.Println("Failed to connect to database:", DBErr)
		return true
	}

	MigrateDB()

	return false
}

func MigrateDB() {
	if DBConn == nil {
		log.Fatal("Database connection is not initialized")
		return
	}

	err := DBConn.AutoMigrate(
		&model.User{},
		&model.Task{},
		&model.Comment{},
		&model.AttendanceRecord{},
		&model.BreakRecord{},
	)
	if err != nil {
		log.Fatal("Migration failed:", err)
	} else {
		fmt.Println("Database migration completed successfully!")
	}
}
