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

type attendanceRepository interface {
	Create(ctx context.Context, attendance *models.Attendance) error
	ListByStudent(ctx context.Context, studentID int64, start, end *time.Time) ([]models.Attendance, error)
}

// MarkAttendanceRequest records one attendance event.
type MarkAttendanceRequest struct {
	StudentID int64     `json:"student_id" validate:"required,gt=0"`
	Status    string    `json:"status" validate:"required,oneof=present absent"`
	Date      time.Time `json:"date"`
}

// AttendanceService handles attendance marking and history.
type AttendanceService struct {
	repo      attendanceRepository
	students  studentChecker
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo attendanceRepository, students studentChecker, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, students: students, validator: validate, logger: logger, now: time.Now}
}

// Mark stores an attendance event. A zero date defaults to today.
func (s *AttendanceService) Mark(ctx context.Context, req MarkAttendanceRequest) (*models.Attendance, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "student does not exist")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	date := req.Date
	if date.IsZero() {
		date = s.now()
	}
	attendance := &models.Attendance{
		StudentID: req.StudentID,
		Status:    req.Status,
		Date:      date,
	}
	if err := s.repo.Create(ctx, attendance); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record attendance")
	}
	return attendance, nil
}

// History returns a student's attendance, optionally bounded by dates.
func (s *AttendanceService) History(ctx context.Context, studentID int64, start, end *time.Time) ([]models.Attendance, error) {
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	records, err := s.repo.ListByStudent(ctx, studentID, start, end)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	return records, nil
}
