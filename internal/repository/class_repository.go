package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/oduyemi/preschool-api/internal/models"
)

// ClassRepository manages persistence for classes and their rosters.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// List returns classes with program context, optionally filtered by program.
func (r *ClassRepository) List(ctx context.Context, programID int64) ([]models.ClassDetail, error) {
	query := `SELECT c.id, c.name, c.description, c.program_id, c.class_teacher_id, c.assistant_teacher_id,
        c.created_at, c.updated_at, p.name AS program_name
        FROM classes c
        JOIN programs p ON p.id = c.program_id`
	var args []interface{}
	if programID > 0 {
		query += " WHERE c.program_id = $1"
		args = append(args, programID)
	}
	query += " ORDER BY c.name ASC"

	var classes []models.ClassDetail
	if err := r.db.SelectContext(ctx, &classes, query, args...); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// FindByID fetches a class with program context.
func (r *ClassRepository) FindByID(ctx context.Context, id int64) (*models.ClassDetail, error) {
	const query = `SELECT c.id, c.name, c.description, c.program_id, c.class_teacher_id, c.assistant_teacher_id,
        c.created_at, c.updated_at, p.name AS program_name
        FROM classes c
        JOIN programs p ON p.id = c.program_id
        WHERE c.id = $1`
	var detail models.ClassDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ExistsByName checks for a case-insensitive name match, optionally excluding an ID.
func (r *ClassRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM classes WHERE LOWER(name) = LOWER($1)"
	args := []interface{}{name}
	if excludeID > 0 {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check class name: %w", err)
	}
	return true, nil
}

// Create inserts a new class and assigns its ID.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	now := time.Now().UTC()
	class.CreatedAt = now
	class.UpdatedAt = now
	const query = `INSERT INTO classes (name, description, program_id, class_teacher_id, assistant_teacher_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := r.db.GetContext(ctx, &class.ID, query,
		class.Name, class.Description, class.ProgramID, class.ClassTeacherID, class.AssistantTeacherID,
		class.CreatedAt, class.UpdatedAt); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// Update modifies an existing class.
func (r *ClassRepository) Update(ctx context.Context, class *models.Class) error {
	class.UpdatedAt = time.Now().UTC()
	const query = `UPDATE classes SET name = :name, description = :description, program_id = :program_id,
        class_teacher_id = :class_teacher_id, assistant_teacher_id = :assistant_teacher_id, updated_at = :updated_at
        WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, class); err != nil {
		return fmt.Errorf("update class: %w", err)
	}
	return nil
}

// Delete removes a class and its roster links.
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM class_students WHERE class_id = $1`, id); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("delete class roster: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM classes WHERE id = $1`, id); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("delete class: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit class delete: %w", err)
	}
	return nil
}

// EnrollStudent adds a student to the class roster.
func (r *ClassRepository) EnrollStudent(ctx context.Context, classID, studentID int64) error {
	const query = `INSERT INTO class_students (class_id, student_id) VALUES ($1, $2)
        ON CONFLICT (class_id, student_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, classID, studentID); err != nil {
		return fmt.Errorf("enroll student: %w", err)
	}
	return nil
}

// UnenrollStudent removes a student from the class roster.
func (r *ClassRepository) UnenrollStudent(ctx context.Context, classID, studentID int64) error {
	const query = `DELETE FROM class_students WHERE class_id = $1 AND student_id = $2`
	if _, err := r.db.ExecContext(ctx, query, classID, studentID); err != nil {
		return fmt.Errorf("unenroll student: %w", err)
	}
	return nil
}

// Roster lists the students enrolled in a class.
func (r *ClassRepository) Roster(ctx context.Context, classID int64) ([]models.ClassRosterEntry, error) {
	const query = `SELECT s.id AS student_id, s.name, s.age, g.name AS gender
        FROM class_students cs
        JOIN students s ON s.id = cs.student_id
        JOIN genders g ON g.id = s.gender_id
        WHERE cs.class_id = $1
        ORDER BY s.name ASC`
	var roster []models.ClassRosterEntry
	if err := r.db.SelectContext(ctx, &roster, query, classID); err != nil {
		return nil, fmt.Errorf("list class roster: %w", err)
	}
	return roster, nil
}
