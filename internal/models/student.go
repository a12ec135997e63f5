package models

import "time"

// MaxStudentAge is the oldest age accepted at registration.
const MaxStudentAge = 10

// Student represents a child registered at the preschool.
type Student struct {
	ID                 int64     `db:"id" json:"id"`
	Name               string    `db:"name" json:"name"`
	Age                int       `db:"age" json:"age"`
	Address            string    `db:"address" json:"address"`
	GenderID           int64     `db:"gender_id" json:"gender_id"`
	EmergencyContactID *int64    `db:"emergency_contact_id" json:"emergency_contact_id,omitempty"`
	ClassTeacherID     *int64    `db:"class_teacher_id" json:"class_teacher_id,omitempty"`
	AssistantTeacherID *int64    `db:"assistant_teacher_id" json:"assistant_teacher_id,omitempty"`
	IsDisabled         bool      `db:"is_disabled" json:"is_disabled"`
	Image              string    `db:"image" json:"image"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// StudentDetail adds gender context for list/detail responses.
type StudentDetail struct {
	Student
	GenderName string `db:"gender_name" json:"gender_name"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search    string
	ClassID   int64
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
