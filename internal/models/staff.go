package models

import "time"

// MinStaffAge is the youngest age accepted for staff and parents.
const MinStaffAge = 15

// Staff represents a preschool employee.
type Staff struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Age          int       `db:"age" json:"age"`
	GenderID     int64     `db:"gender_id" json:"gender_id"`
	Address      string    `db:"address" json:"address"`
	Email        string    `db:"email" json:"email"`
	Phone        string    `db:"phone" json:"phone"`
	PasswordHash string    `db:"password_hash" json:"-"`
	DepartmentID int64     `db:"department_id" json:"department_id"`
	RoleID       int64     `db:"role_id" json:"role_id"`
	Image        string    `db:"image" json:"image"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// StaffDetail adds department and role names for responses.
type StaffDetail struct {
	Staff
	DepartmentName string `db:"department_name" json:"department_name"`
	RoleName       string `db:"role_name" json:"role_name"`
}

// StaffFilter encapsulates allowed search parameters for listing staff.
type StaffFilter struct {
	Search       string
	DepartmentID int64
	RoleID       int64
	Page         int
	PageSize     int
}

// Teacher is the 1:1 teaching extension of a staff record.
type Teacher struct {
	ID      int64 `db:"id" json:"id"`
	StaffID int64 `db:"staff_id" json:"staff_id"`
}

// TeacherClassAssignment links a teacher to a class, optionally as assistant.
type TeacherClassAssignment struct {
	TeacherID          int64  `db:"teacher_id" json:"teacher_id"`
	ClassID            int64  `db:"class_id" json:"class_id"`
	AssistantTeacherID *int64 `db:"assistant_teacher_id" json:"assistant_teacher_id,omitempty"`
}

// Schedule is a recurring time block worked by a staff member.
type Schedule struct {
	ID        int64     `db:"id" json:"id"`
	StaffID   int64     `db:"staff_id" json:"staff_id"`
	DayOfWeek string    `db:"day_of_week" json:"day_of_week"`
	StartTime time.Time `db:"start_time" json:"start_time"`
	EndTime   time.Time `db:"end_time" json:"end_time"`
}
