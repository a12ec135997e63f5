package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/oduyemi/preschool-api/internal/models"
)

// ActivityRepository manages persistence for daily activity notes.
type ActivityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository constructs an ActivityRepository.
func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create inserts a daily activity note and assigns its ID.
func (r *ActivityRepository) Create(ctx context.Context, activity *models.DailyActivity) error {
	if activity.Date.IsZero() {
		activity.Date = time.Now().UTC()
	}
	const query = `INSERT INTO daily_activities (student_id, date, description, notes)
        VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.GetContext(ctx, &activity.ID, query,
		activity.StudentID, activity.Date, activity.Description, activity.Notes); err != nil {
		return fmt.Errorf("create daily activity: %w", err)
	}
	return nil
}

// FindByID fetches a daily activity note by ID.
func (r *ActivityRepository) FindByID(ctx context.Context, id int64) (*models.DailyActivity, error) {
	const query = `SELECT id, student_id, date, description, notes FROM daily_activities WHERE id = $1`
	var activity models.DailyActivity
	if err := r.db.GetContext(ctx, &activity, query, id); err != nil {
		return nil, err
	}
	return &activity, nil
}

// List returns a student's activities newest first. Range bounds are inclusive.
func (r *ActivityRepository) List(ctx context.Context, filter models.ActivityFilter) ([]models.DailyActivity, error) {
	query := `SELECT id, student_id, date, description, notes FROM daily_activities WHERE student_id = $1`
	args := []interface{}{filter.StudentID}
	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", len(args)+1)
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND date <= $%d", len(args)+1)
		args = append(args, *filter.EndDate)
	}
	query += " ORDER BY date DESC"

	var activities []models.DailyActivity
	if err := r.db.SelectContext(ctx, &activities, query, args...); err != nil {
		return nil, fmt.Errorf("list daily activities: %w", err)
	}
	return activities, nil
}

// Delete removes a daily activity note.
func (r *ActivityRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM daily_activities WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete daily activity: %w", err)
	}
	return nil
}
