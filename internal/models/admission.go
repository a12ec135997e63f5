package models

import "time"

// Admission records a student's enrollment into a program.
type Admission struct {
	ID            int64     `db:"id" json:"id"`
	StudentID     int64     `db:"student_id" json:"student_id"`
	ProgramID     int64     `db:"program_id" json:"program_id"`
	StudentNumber string    `db:"student_number" json:"student_number"`
	Date          time.Time `db:"date" json:"date"`
}

// AdmissionDetail adds student and program names for listings.
type AdmissionDetail struct {
	Admission
	StudentName string `db:"student_name" json:"student_name"`
	ProgramName string `db:"program_name" json:"program_name"`
}
