package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/oduyemi/preschool-api/internal/models"
)

// ScheduleRepository manages persistence for staff schedules.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs a ScheduleRepository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Create inserts a schedule block and assigns its ID.
func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.Schedule) error {
	const query = `INSERT INTO schedules (staff_id, day_of_week, start_time, end_time)
        VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.GetContext(ctx, &schedule.ID, query,
		schedule.StaffID, schedule.DayOfWeek, schedule.StartTime, schedule.EndTime); err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}
	return nil
}

// ListByStaff returns a staff member's blocks ordered by day then start time.
func (r *ScheduleRepository) ListByStaff(ctx context.Context, staffID int64) ([]models.Schedule, error) {
	const query = `SELECT id, staff_id, day_of_week, start_time, end_time
        FROM schedules WHERE staff_id = $1
        ORDER BY CASE day_of_week
            WHEN 'monday' THEN 1 WHEN 'tuesday' THEN 2 WHEN 'wednesday' THEN 3
            WHEN 'thursday' THEN 4 WHEN 'friday' THEN 5 WHEN 'saturday' THEN 6
            ELSE 7 END, start_time ASC`
	var schedules []models.Schedule
	if err := r.db.SelectContext(ctx, &schedules, query, staffID); err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return schedules, nil
}

// FindByID fetches a schedule block by ID.
func (r *ScheduleRepository) FindByID(ctx context.Context, id int64) (*models.Schedule, error) {
	const query = `SELECT id, staff_id, day_of_week, start_time, end_time FROM schedules WHERE id = $1`
	var schedule models.Schedule
	if err := r.db.GetContext(ctx, &schedule, query, id); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// Delete removes a schedule block.
func (r *ScheduleRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}
