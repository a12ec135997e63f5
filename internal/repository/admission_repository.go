package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/oduyemi/preschool-api/internal/models"
)

// AdmissionRepository manages persistence for admission records.
type AdmissionRepository struct {
	db *sqlx.DB
}

// NewAdmissionRepository constructs an AdmissionRepository.
func NewAdmissionRepository(db *sqlx.DB) *AdmissionRepository {
	return &AdmissionRepository{db: db}
}

// List returns admissions with student and program context, newest first.
func (r *AdmissionRepository) List(ctx context.Context) ([]models.AdmissionDetail, error) {
	const query = `SELECT a.id, a.student_id, a.program_id, a.student_number, a.date,
        s.name AS student_name, p.name AS program_name
        FROM admissions a
        JOIN students s ON s.id = a.student_id
        JOIN programs p ON p.id = a.program_id
        ORDER BY a.date DESC`
	var admissions []models.AdmissionDetail
	if err := r.db.SelectContext(ctx, &admissions, query); err != nil {
		return nil, fmt.Errorf("list admissions: %w", err)
	}
	return admissions, nil
}

// FindByID fetches an admission with context by ID.
func (r *AdmissionRepository) FindByID(ctx context.Context, id int64) (*models.AdmissionDetail, error) {
	const query = `SELECT a.id, a.student_id, a.program_id, a.student_number, a.date,
        s.name AS student_name, p.name AS program_name
        FROM admissions a
        JOIN students s ON s.id = a.student_id
        JOIN programs p ON p.id = a.program_id
        WHERE a.id = $1`
	var detail models.AdmissionDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Create inserts an admission record and assigns its ID.
func (r *AdmissionRepository) Create(ctx context.Context, admission *models.Admission) error {
	if admission.Date.IsZero() {
		admission.Date = time.Now().UTC()
	}
	const query = `INSERT INTO admissions (student_id, program_id, student_number, date)
        VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.GetContext(ctx, &admission.ID, query,
		admission.StudentID, admission.ProgramID, admission.StudentNumber, admission.Date); err != nil {
		return fmt.Errorf("create admission: %w", err)
	}
	return nil
}
