package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/oduyemi/preschool-api/internal/models"
)

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students matching the provided filters.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error) {
	base := `FROM students s JOIN genders g ON g.id = s.gender_id`
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.ClassID > 0 {
		base += " JOIN class_students cs ON cs.student_id = s.id"
		conditions = append(conditions, fmt.Sprintf("cs.class_id = $%d", len(args)+1))
		args = append(args, filter.ClassID)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(s.name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	allowedSorts := map[string]string{
		"name":       "s.name",
		"age":        "s.age",
		"created_at": "s.created_at",
	}
	column, ok := allowedSorts[filter.SortBy]
	if !ok {
		column = "s.created_at"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT s.id, s.name, s.age, s.address, s.gender_id, s.emergency_contact_id,
        s.class_teacher_id, s.assistant_teacher_id, s.is_disabled, s.image, s.created_at, s.updated_at,
        g.name AS gender_name
        %s ORDER BY %s %s LIMIT %d OFFSET %d`, base, column, order, size, offset)

	var students []models.StudentDetail
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(DISTINCT s.id) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// FindByID fetches a student detail by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.StudentDetail, error) {
	const query = `SELECT s.id, s.name, s.age, s.address, s.gender_id, s.emergency_contact_id,
        s.class_teacher_id, s.assistant_teacher_id, s.is_disabled, s.image, s.created_at, s.updated_at,
        g.name AS gender_name
        FROM students s
        JOIN genders g ON g.id = s.gender_id
        WHERE s.id = $1`
	var detail models.StudentDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Create inserts a new student record and assigns its ID.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now
	const query = `INSERT INTO students (name, age, address, gender_id, emergency_contact_id,
        class_teacher_id, assistant_teacher_id, is_disabled, image, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	if err := r.db.GetContext(ctx, &student.ID, query,
		student.Name, student.Age, student.Address, student.GenderID, student.EmergencyContactID,
		student.ClassTeacherID, student.AssistantTeacherID, student.IsDisabled, student.Image,
		student.CreatedAt, student.UpdatedAt); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update modifies an existing student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET name = :name, age = :age, address = :address, gender_id = :gender_id,
        emergency_contact_id = :emergency_contact_id, class_teacher_id = :class_teacher_id,
        assistant_teacher_id = :assistant_teacher_id, is_disabled = :is_disabled, image = :image,
        updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// Delete removes a student together with association rows.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	for _, query := range []string{
		`DELETE FROM class_students WHERE student_id = $1`,
		`DELETE FROM student_medical_conditions WHERE student_id = $1`,
		`DELETE FROM students WHERE id = $1`,
	} {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("delete student: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit student delete: %w", err)
	}
	return nil
}

// AddMedicalCondition links a condition to a student.
func (r *StudentRepository) AddMedicalCondition(ctx context.Context, studentID, conditionID int64) error {
	const query = `INSERT INTO student_medical_conditions (student_id, medical_condition_id)
        VALUES ($1, $2) ON CONFLICT (student_id, medical_condition_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, studentID, conditionID); err != nil {
		return fmt.Errorf("add medical condition: %w", err)
	}
	return nil
}

// RemoveMedicalCondition unlinks a condition from a student.
func (r *StudentRepository) RemoveMedicalCondition(ctx context.Context, studentID, conditionID int64) error {
	const query = `DELETE FROM student_medical_conditions WHERE student_id = $1 AND medical_condition_id = $2`
	if _, err := r.db.ExecContext(ctx, query, studentID, conditionID); err != nil {
		return fmt.Errorf("remove medical condition: %w", err)
	}
	return nil
}

// ListMedicalConditions returns the conditions linked to a student.
func (r *StudentRepository) ListMedicalConditions(ctx context.Context, studentID int64) ([]models.MedicalConditionDetail, error) {
	const query = `SELECT mc.id, mc.name, mc.category_id, cat.name AS category_name
        FROM student_medical_conditions smc
        JOIN medical_conditions mc ON mc.id = smc.medical_condition_id
        JOIN medical_categories cat ON cat.id = mc.category_id
        WHERE smc.student_id = $1
        ORDER BY mc.name ASC`
	var conditions []models.MedicalConditionDetail
	if err := r.db.SelectContext(ctx, &conditions, query, studentID); err != nil {
		return nil, fmt.Errorf("list student conditions: %w", err)
	}
	return conditions, nil
}
