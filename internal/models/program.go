package models

import "time"

// Program is an enrollment track offered by the preschool.
type Program struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Class is a group of students inside a program.
type Class struct {
	ID                 int64     `db:"id" json:"id"`
	Name               string    `db:"name" json:"name"`
	Description        string    `db:"description" json:"description"`
	ProgramID          int64     `db:"program_id" json:"program_id"`
	ClassTeacherID     *int64    `db:"class_teacher_id" json:"class_teacher_id,omitempty"`
	AssistantTeacherID *int64    `db:"assistant_teacher_id" json:"assistant_teacher_id,omitempty"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// ClassDetail carries the class with program context.
type ClassDetail struct {
	Class
	ProgramName string `db:"program_name" json:"program_name"`
}

// ClassRosterEntry is one enrolled student in a class listing.
type ClassRosterEntry struct {
	StudentID int64  `db:"student_id" json:"student_id"`
	Name      string `db:"name" json:"name"`
	Age       int    `db:"age" json:"age"`
	Gender    string `db:"gender" json:"gender"`
}
