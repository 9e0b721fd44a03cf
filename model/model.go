package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name            string `json:"name"`
	Email           string `gorm:"unique" json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password" gorm:"-"`
	Role            string `json:"role"` // admin or user
	IsDeleted       bool   `json:"is_deleted"`
	FCMToken        string `json:"fcm_token"`

	Tasks             []Task             `gorm:"foreignKey:AuthorID"`
	AttendanceRecords []AttendanceRecord `gorm:"foreignKey:UserID"`
}

type Task struct {
	gorm.Model
	TaskName   string     `json:"task_name"`
	AuthorID   uint       `json:"author_id"`
	AssignedID *uint      `json:"assigned_id"`
	DueDate    *time.Time `json:"due_date"`
	Important  bool       `json:"important"`
	Status     string     `json:"status"` // pending or completed

	Author   User      `gorm:"foreignKey:AuthorID"`
	Assigned *User     `gorm:"foreignKey:AssignedID"`
	Comments []Comment `gorm:"foreignKey:TaskID"`
}

type Comment struct {
	gorm.Model
	TaskID   uint   `json:"task_id"`
	AuthorID uint   `json:"author_id"`
	Content  string `json:"content"`

	Author User `gorm:"foreignKey:AuthorID"`
}

// AttendanceRecord is one clock-in/clock-out span for a user. ClockIn is
// nullable because upstream capture occasionally writes a record without one;
// such records are dropped during report aggregation.
type AttendanceRecord struct {
	gorm.Model
	UserID   uint       `json:"user_id"`
	ClockIn  *time.Time `json:"clock_in"`
	ClockOut *time.Time `json:"clock_out"`

	Breaks []BreakRecord `gorm:"foreignKey:AttendanceRecordID"`
}

// BreakRecord is a break inside an attendance record. A null BreakEndTime
// means the break is still open.
type BreakRecord struct {
	gorm.Model
	AttendanceRecordID uint       `json:"attendance_record_id"`
	BreakStartTime     time.Time  `json:"break_start_time"`
	BreakEndTime       *time.Time `json:"break_end_time"`
}
