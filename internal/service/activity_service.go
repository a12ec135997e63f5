package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oduyemi/preschool-api/internal/models"
	appErrors "github.com/oduyemi/preschool-api/pkg/errors"
)

type activityRepository interface {
	Create(ctx context.Context, activity *models.DailyActivity) error
	FindByID(ctx context.Context, id int64) (*models.DailyActivity, error)
	List(ctx context.Context, filter models.ActivityFilter) ([]models.DailyActivity, error)
	Delete(ctx context.Context, id int64) error
}

// CreateActivityRequest records a daily note about a student.
type CreateActivityRequest struct {
	StudentID   int64   `json:"student_id" validate:"required,gt=0"`
	Date        string  `json:"date" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Notes       *string `json:"notes"`
}

// ActivityService handles daily activity notes.
type ActivityService struct {
	repo      activityRepository
	students  studentChecker
	validator *validator.Validate
	logger    *zap.Logger
}

// NewActivityService constructs the activity service.
func NewActivityService(repo activityRepository, students studentChecker, validate *validator.Validate, logger *zap.Logger) *ActivityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{repo: repo, students: students, validator: validate, logger: logger}
}

// Create records a daily activity for an existing student.
func (s *ActivityService) Create(ctx context.Context, req CreateActivityRequest) (*models.DailyActivity, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid activity payload")
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must use the YYYY-MM-DD format")
	}
	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "student does not exist")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	activity := &models.DailyActivity{
		StudentID:   req.StudentID,
		Date:        date,
		Description: req.Description,
		Notes:       req.Notes,
	}
	if err := s.repo.Create(ctx, activity); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create activity")
	}
	return activity, nil
}

// Get returns a single activity note.
func (s *ActivityService) Get(ctx context.Context, id int64) (*models.DailyActivity, error) {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "activity not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load activity")
	}
	return activity, nil
}

// List returns activities for one student with inclusive date bounds.
func (s *ActivityService) List(ctx context.Context, filter models.ActivityFilter) ([]models.DailyActivity, error) {
	if filter.StudentID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end date precedes start date")
	}
	activities, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list activities")
	}
	return activities, nil
}

// Delete removes an activity note, returning the prior state.
func (s *ActivityService) Delete(ctx context.Context, id int64) (*models.DailyActivity, error) {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "activity not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load activity")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete activity")
	}
	return activity, nil
}
