package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/oduyemi/preschool-api/internal/models"
)

// ParentRepository manages persistence for parent accounts.
type ParentRepository struct {
	db *sqlx.DB
}

// NewParentRepository constructs a ParentRepository.
func NewParentRepository(db *sqlx.DB) *ParentRepository {
	return &ParentRepository{db: db}
}

// List returns all parents ordered by name.
func (r *ParentRepository) List(ctx context.Context) ([]models.Parent, error) {
	const query = `SELECT id, name, age, gender_id, address, email, phone, password_hash, created_at, updated_at
        FROM parents ORDER BY name ASC`
	var parents []models.Parent
	if err := r.db.SelectContext(ctx, &parents, query); err != nil {
		return nil, fmt.Errorf("list parents: %w", err)
	}
	return parents, nil
}

// FindByID fetches a parent by ID.
func (r *ParentRepository) FindByID(ctx context.Context, id int64) (*models.Parent, error) {
	const query = `SELECT id, name, age, gender_id, address, email, phone, password_hash, created_at, updated_at
        FROM parents WHERE id = $1`
	var parent models.Parent
	if err := r.db.GetContext(ctx, &parent, query, id); err != nil {
		return nil, err
	}
	return &parent, nil
}

// FindByEmail fetches a parent by email for authentication.
func (r *ParentRepository) FindByEmail(ctx context.Context, email string) (*models.Parent, error) {
	const query = `SELECT id, name, age, gender_id, address, email, phone, password_hash, created_at, updated_at
        FROM parents WHERE LOWER(email) = LOWER($1)`
	var parent models.Parent
	if err := r.db.GetContext(ctx, &parent, query, email); err != nil {
		return nil, err
	}
	return &parent, nil
}

// ExistsByEmail checks whether an email is taken, optionally excluding an ID.
func (r *ParentRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM parents WHERE LOWER(email) = LOWER($1)"
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
		return false, fmt.Errorf("check parent email: %w", err)
	}
	return true, nil
}

// Create inserts a new parent record and assigns its ID.
func (r *ParentRepository) Create(ctx context.Context, parent *models.Parent) error {
	now := time.Now().UTC()
	parent.CreatedAt = now
	parent.UpdatedAt = now
	const query = `INSERT INTO parents (name, age, gender_id, address, email, phone, password_hash, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	if err := r.db.GetContext(ctx, &parent.ID, query,
		parent.Name, parent.Age, parent.GenderID, parent.Address, parent.Email, parent.Phone,
		parent.PasswordHash, parent.CreatedAt, parent.UpdatedAt); err != nil {
		return fmt.Errorf("create parent: %w", err)
	}
	return nil
}

// Update modifies an existing parent record.
func (r *ParentRepository) Update(ctx context.Context, parent *models.Parent) error {
	parent.UpdatedAt = time.Now().UTC()
	const query = `UPDATE parents SET name = :name, age = :age, gender_id = :gender_id, address = :address,
        email = :email, phone = :phone, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, parent); err != nil {
		return fmt.Errorf("update parent: %w", err)
	}
	return nil
}

// Delete removes a parent record.
func (r *ParentRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM parents WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete parent: %w", err)
	}
	return nil
}
