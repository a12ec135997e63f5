package models

import "time"

// Attendance statuses accepted when marking a student.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
)

// Attendance is one marking event for a student.
type Attendance struct {
	ID        int64     `db:"id" json:"id"`
	StudentID int64     `db:"student_id" json:"student_id"`
	Status    string    `db:"status" json:"status"`
	Date      time.Time `db:"date" json:"date"`
}

// DailyActivity is a free-text note about a student's day.
type DailyActivity struct {
	ID          int64     `db:"id" json:"id"`
	StudentID   int64     `db:"student_id" json:"student_id"`
	Date        time.Time `db:"date" json:"date"`
	Description string    `db:"description" json:"description"`
	Notes       *string   `db:"notes" json:"notes,omitempty"`
}

// ActivityFilter narrows daily activity listings; bounds are inclusive.
type ActivityFilter struct {
	StudentID int64
	StartDate *time.Time
	EndDate   *time.Time
}
