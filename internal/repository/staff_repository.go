package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/oduyemi/preschool-api/internal/models"
)

// StaffRepository manages persistence for staff, teachers and assignments.
type StaffRepository struct {
	db *sqlx.DB
}

// NewStaffRepository constructs a StaffRepository.
func NewStaffRepository(db *sqlx.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// List returns staff matching the provided filters.
func (r *StaffRepository) List(ctx context.Context, filter models.StaffFilter) ([]models.StaffDetail, int, error) {
	base := `FROM staff st
        JOIN departments d ON d.id = st.department_id
        JOIN roles ro ON ro.id = st.role_id`
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.DepartmentID > 0 {
		conditions = append(conditions, fmt.Sprintf("st.department_id = $%d", len(args)+1))
		args = append(args, filter.DepartmentID)
	}
	if filter.RoleID > 0 {
		conditions = append(conditions, fmt.Sprintf("st.role_id = $%d", len(args)+1))
		args = append(args, filter.RoleID)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(st.name) LIKE $%d OR LOWER(st.email) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT st.id, st.name, st.age, st.gender_id, st.address, st.email, st.phone,
        st.password_hash, st.department_id, st.role_id, st.image, st.created_at, st.updated_at,
        d.name AS department_name, ro.name AS role_name
        %s ORDER BY st.name ASC LIMIT %d OFFSET %d`, base, size, offset)

	var staff []models.StaffDetail
	if err := r.db.SelectContext(ctx, &staff, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list staff: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count staff: %w", err)
	}
	return staff, total, nil
}

// FindByID fetches a staff detail by ID.
func (r *StaffRepository) FindByID(ctx context.Context, id int64) (*models.StaffDetail, error) {
	const query = `SELECT st.id, st.name, st.age, st.gender_id, st.address, st.email, st.phone,
        st.password_hash, st.department_id, st.role_id, st.image, st.created_at, st.updated_at,
        d.name AS department_name, ro.name AS role_name
        FROM staff st
        JOIN departments d ON d.id = st.department_id
        JOIN roles ro ON ro.id = st.role_id
        WHERE st.id = $1`
	var detail models.StaffDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// FindByEmail fetches a staff detail by email for authentication.
func (r *StaffRepository) FindByEmail(ctx context.Context, email string) (*models.StaffDetail, error) {
	const query = `SELECT st.id, st.name, st.age, st.gender_id, st.address, st.email, st.phone,
        st.password_hash, st.department_id, st.role_id, st.image, st.created_at, st.updated_at,
        d.name AS department_name, ro.name AS role_name
        FROM staff st
        JOIN departments d ON d.id = st.department_id
        JOIN roles ro ON ro.id = st.role_id
        WHERE LOWER(st.email) = LOWER($1)`
	var detail models.StaffDetail
	if err := r.db.GetContext(ctx, &detail, query, email); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ExistsByEmail checks whether an email is taken, optionally excluding an ID.
func (r *StaffRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM staff WHERE LOWER(email) = LOWER($1)"
	args := []interface{}{email}
	if excludeID > 0 {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check staff email: %w", err)
	}
	return true, nil
}

// Create inserts a new staff record and assigns its ID.
func (r *StaffRepository) Create(ctx context.Context, staff *models.Staff) error {
	now := time.Now().UTC()
	staff.CreatedAt = now
	staff.UpdatedAt = now
	const query = `INSERT INTO staff (name, age, gender_id, address, email, phone, password_hash,
        department_id, role_id, image, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	if err := r.db.GetContext(ctx, &staff.ID, query,
		staff.Name, staff.Age, staff.GenderID, staff.Address, staff.Email, staff.Phone, staff.PasswordHash,
		staff.DepartmentID, staff.RoleID, staff.Image, staff.CreatedAt, staff.UpdatedAt); err != nil {
		return fmt.Errorf("create staff: %w", err)
	}
	return nil
}

// Update modifies an existing staff record.
func (r *StaffRepository) Update(ctx context.Context, staff *models.Staff) error {
	staff.UpdatedAt = time.Now().UTC()
	const query = `UPDATE staff SET name = :name, age = :age, gender_id = :gender_id, address = :address,
        email = :email, phone = :phone, department_id = :department_id, role_id = :role_id,
        image = :image, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, staff); err != nil {
		return fmt.Errorf("update staff: %w", err)
	}
	return nil
}

// Delete removes a staff record and the teaching extension if present.
func (r *StaffRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	for _, query := range []string{
		`DELETE FROM teacher_classes WHERE teacher_id IN (SELECT id FROM teachers WHERE staff_id = $1)`,
		`DELETE FROM teachers WHERE staff_id = $1`,
		`DELETE FROM schedules WHERE staff_id = $1`,
		`DELETE FROM staff WHERE id = $1`,
	} {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("delete staff: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit staff delete: %w", err)
	}
	return nil
}

// PromoteTeacher creates the teaching extension for a staff member.
func (r *StaffRepository) PromoteTeacher(ctx context.Context, staffID int64) (*models.Teacher, error) {
	const query = `INSERT INTO teachers (staff_id) VALUES ($1)
        ON CONFLICT (staff_id) DO UPDATE SET staff_id = EXCLUDED.staff_id
        RETURNING id, staff_id`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, staffID); err != nil {
		return nil, fmt.Errorf("promote teacher: %w", err)
	}
	return &teacher, nil
}

// FindTeacherByStaffID returns the teaching extension for a staff member.
func (r *StaffRepository) FindTeacherByStaffID(ctx context.Context, staffID int64) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, `SELECT id, staff_id FROM teachers WHERE staff_id = $1`, staffID); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// AssignClass links a teacher to a class.
func (r *StaffRepository) AssignClass(ctx context.Context, assignment *models.TeacherClassAssignment) error {
	const query = `INSERT INTO teacher_classes (teacher_id, class_id, assistant_teacher_id)
        VALUES (:teacher_id, :class_id, :assistant_teacher_id)
        ON CONFLICT (teacher_id, class_id) DO UPDATE SET assistant_teacher_id = EXCLUDED.assistant_teacher_id`
	if _, err := r.db.NamedExecContext(ctx, query, assignment); err != nil {
		return fmt.Errorf("assign teacher class: %w", err)
	}
	return nil
}

// UnassignClass removes a teacher/class link.
func (r *StaffRepository) UnassignClass(ctx context.Context, teacherID, classID int64) error {
	const query = `DELETE FROM teacher_classes WHERE teacher_id = $1 AND class_id = $2`
	if _, err := r.db.ExecContext(ctx, query, teacherID, classID); err != nil {
		return fmt.Errorf("unassign teacher class: %w", err)
	}
	return nil
}

// ListAssignments returns the class assignments for a teacher.
func (r *StaffRepository) ListAssignments(ctx context.Context, teacherID int64) ([]models.TeacherClassAssignment, error) {
	const query = `SELECT teacher_id, class_id, assistant_teacher_id FROM teacher_classes WHERE teacher_id = $1`
	var assignments []models.TeacherClassAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher assignments: %w", err)
	}
	return assignments, nil
}
