package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/oduyemi/preschool-api/internal/models"
)

// AttendanceRepository manages persistence for attendance markings.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Create inserts a marking event and assigns its ID.
func (r *AttendanceRepository) Create(ctx context.Context, attendance *models.Attendance) error {
	if attendance.Date.IsZero() {
		attendance.Date = time.Now().UTC()
	}
	const query = `INSERT INTO attendance (student_id, status, date) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.GetContext(ctx, &attendance.ID, query,
		attendance.StudentID, attendance.Status, attendance.Date); err != nil {
		return fmt.Errorf("create attendance: %w", err)
	}
	return nil
}

// ListByStudent returns a student's markings, newest first, optionally bounded
// by an inclusive date range.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID int64, start, end *time.Time) ([]models.Attendance, error) {
	query := `SELECT id, student_id, status, date FROM attendance WHERE student_id = $1`
	args := []interface{}{studentID}
	if start != nil {
		query += fmt.Sprintf(" AND date >= $%d", len(args)+1)
		args = append(args, *start)
	}
	if end != nil {
		query += fmt.Sprintf(" AND date <= $%d", len(args)+1)
		args = append(args, *end)
	}
	query += " ORDER BY date DESC"

	var records []models.Attendance
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}
