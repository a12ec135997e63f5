package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/oduyemi/preschool-api/internal/models"
)

// LookupRepository manages the small reference tables: departments, roles,
// genders, emergency contacts and the medical catalogue.
type LookupRepository struct {
	db *sqlx.DB
}

// NewLookupRepository constructs a LookupRepository.
func NewLookupRepository(db *sqlx.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

func (r *LookupRepository) existsByName(ctx context.Context, table, name string) (bool, error) {
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE LOWER(name) = LOWER($1) LIMIT 1", table)
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, name); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check %s name: %w", table, err)
	}
	return true, nil
}

// ListDepartments returns all departments ordered by name.
func (r *LookupRepository) ListDepartments(ctx context.Context) ([]models.Department, error) {
	var items []models.Department
	if err := r.db.SelectContext(ctx, &items, `SELECT id, name FROM departments ORDER BY name ASC`); err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return items, nil
}

// DepartmentExists reports whether a department name is taken.
func (r *LookupRepository) DepartmentExists(ctx context.Context, name string) (bool, error) {
	return r.existsByName(ctx, "departments", name)
}

// CreateDepartment inserts a department and assigns its ID.
func (r *LookupRepository) CreateDepartment(ctx context.Context, department *models.Department) error {
	const query = `INSERT INTO departments (name) VALUES ($1) RETURNING id`
	if err := r.db.GetContext(ctx, &department.ID, query, department.Name); err != nil {
		return fmt.Errorf("create department: %w", err)
	}
	return nil
}

// DeleteDepartment removes a department.
func (r *LookupRepository) DeleteDepartment(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM departments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	return nil
}

// FindDepartmentByID fetches a department by ID.
func (r *LookupRepository) FindDepartmentByID(ctx context.Context, id int64) (*models.Department, error) {
	var item models.Department
	if err := r.db.GetContext(ctx, &item, `SELECT id, name FROM departments WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// ListRoles returns all roles ordered by name.
func (r *LookupRepository) ListRoles(ctx context.Context) ([]models.Role, error) {
	var items []models.Role
	if err := r.db.SelectContext(ctx, &items, `SELECT id, name FROM roles ORDER BY name ASC`); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return items, nil
}

// RoleExists reports whether a role name is taken.
func (r *LookupRepository) RoleExists(ctx context.Context, name string) (bool, error) {
	return r.existsByName(ctx, "roles", name)
}

// CreateRole inserts a role and assigns its ID.
func (r *LookupRepository) CreateRole(ctx context.Context, role *models.Role) error {
	const query = `INSERT INTO roles (name) VALUES ($1) RETURNING id`
	if err := r.db.GetContext(ctx, &role.ID, query, role.Name); err != nil {
		return fmt.Errorf("create role: %w", err)
	}
	return nil
}

// DeleteRole removes a role.
func (r *LookupRepository) DeleteRole(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	return nil
}

// FindRoleByID fetches a role by ID.
func (r *LookupRepository) FindRoleByID(ctx context.Context, id int64) (*models.Role, error) {
	var item models.Role
	if err := r.db.GetContext(ctx, &item, `SELECT id, name FROM roles WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// ListGenders returns all genders ordered by name.
func (r *LookupRepository) ListGenders(ctx context.Context) ([]models.Gender, error) {
	var items []models.Gender
	if err := r.db.SelectContext(ctx, &items, `SELECT id, name FROM genders ORDER BY name ASC`); err != nil {
		return nil, fmt.Errorf("list genders: %w", err)
	}
	return items, nil
}

// GenderExists reports whether a gender name is taken.
func (r *LookupRepository) GenderExists(ctx context.Context, name string) (bool, error) {
	return r.existsByName(ctx, "genders", name)
}

// CreateGender inserts a gender and assigns its ID.
func (r *LookupRepository) CreateGender(ctx context.Context, gender *models.Gender) error {
	const query = `INSERT INTO genders (name) VALUES ($1) RETURNING id`
	if err := r.db.GetContext(ctx, &gender.ID, query, gender.Name); err != nil {
		return fmt.Errorf("create gender: %w", err)
	}
	return nil
}

// DeleteGender removes a gender.
func (r *LookupRepository) DeleteGender(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM genders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete gender: %w", err)
	}
	return nil
}

// FindGenderByID fetches a gender by ID.
func (r *LookupRepository) FindGenderByID(ctx context.Context, id int64) (*models.Gender, error) {
	var item models.Gender
	if err := r.db.GetContext(ctx, &item, `SELECT id, name FROM genders WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// ListEmergencyContacts returns all emergency contacts ordered by name.
func (r *LookupRepository) ListEmergencyContacts(ctx context.Context) ([]models.Emergency, error) {
	var items []models.Emergency
	if err := r.db.SelectContext(ctx, &items, `SELECT id, name, phone FROM emergency_contacts ORDER BY name ASC`); err != nil {
		return nil, fmt.Errorf("list emergency contacts: %w", err)
	}
	return items, nil
}

// CreateEmergencyContact inserts an emergency contact and assigns its ID.
func (r *LookupRepository) CreateEmergencyContact(ctx context.Context, contact *models.Emergency) error {
	const query = `INSERT INTO emergency_contacts (name, phone) VALUES ($1, $2) RETURNING id`
	if err := r.db.GetContext(ctx, &contact.ID, query, contact.Name, contact.Phone); err != nil {
		return fmt.Errorf("create emergency contact: %w", err)
	}
	return nil
}

// DeleteEmergencyContact removes an emergency contact.
func (r *LookupRepository) DeleteEmergencyContact(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM emergency_contacts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete emergency contact: %w", err)
	}
	return nil
}

// FindEmergencyContactByID fetches an emergency contact by ID.
func (r *LookupRepository) FindEmergencyContactByID(ctx context.Context, id int64) (*models.Emergency, error) {
	var item models.Emergency
	if err := r.db.GetContext(ctx, &item, `SELECT id, name, phone FROM emergency_contacts WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// ListMedicalCategories returns all medical categories ordered by name.
func (r *LookupRepository) ListMedicalCategories(ctx context.Context) ([]models.MedicalCategory, error) {
	var items []models.MedicalCategory
	if err := r.db.SelectContext(ctx, &items, `SELECT id, name FROM medical_categories ORDER BY name ASC`); err != nil {
		return nil, fmt.Errorf("list medical categories: %w", err)
	}
	return items, nil
}

// CreateMedicalCategory inserts a medical category and assigns its ID.
func (r *LookupRepository) CreateMedicalCategory(ctx context.Context, category *models.MedicalCategory) error {
	const query = `INSERT INTO medical_categories (name) VALUES ($1) RETURNING id`
	if err := r.db.GetContext(ctx, &category.ID, query, category.Name); err != nil {
		return fmt.Errorf("create medical category: %w", err)
	}
	return nil
}

// FindMedicalCategoryByID fetches a medical category by ID.
func (r *LookupRepository) FindMedicalCategoryByID(ctx context.Context, id int64) (*models.MedicalCategory, error) {
	var item models.MedicalCategory
	if err := r.db.GetContext(ctx, &item, `SELECT id, name FROM medical_categories WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteMedicalCategory removes a medical category.
func (r *LookupRepository) DeleteMedicalCategory(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM medical_categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete medical category: %w", err)
	}
	return nil
}

// ListMedicalConditions returns all conditions with their category names.
func (r *LookupRepository) ListMedicalConditions(ctx context.Context) ([]models.MedicalConditionDetail, error) {
	const query = `SELECT mc.id, mc.name, mc.category_id, cat.name AS category_name
        FROM medical_conditions mc
        JOIN medical_categories cat ON cat.id = mc.category_id
        ORDER BY mc.name ASC`
	var items []models.MedicalConditionDetail
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list medical conditions: %w", err)
	}
	return items, nil
}

// CreateMedicalCondition inserts a condition and assigns its ID.
func (r *LookupRepository) CreateMedicalCondition(ctx context.Context, condition *models.MedicalCondition) error {
	const query = `INSERT INTO medical_conditions (name, category_id) VALUES ($1, $2) RETURNING id`
	if err := r.db.GetContext(ctx, &condition.ID, query, condition.Name, condition.CategoryID); err != nil {
		return fmt.Errorf("create medical condition: %w", err)
	}
	return nil
}

// FindMedicalConditionByID fetches a condition by ID.
func (r *LookupRepository) FindMedicalConditionByID(ctx context.Context, id int64) (*models.MedicalCondition, error) {
	var item models.MedicalCondition
	if err := r.db.GetContext(ctx, &item, `SELECT id, name, category_id FROM medical_conditions WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteMedicalCondition removes a condition and its student links.
func (r *LookupRepository) DeleteMedicalCondition(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM student_medical_conditions WHERE medical_condition_id = $1`, id); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("delete condition links: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM medical_conditions WHERE id = $1`, id); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("delete medical condition: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit condition delete: %w", err)
	}
	return nil
}
