package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oduyemi/preschool-api/internal/models"
	appErrors "github.com/oduyemi/preschool-api/pkg/errors"
)

// programCodes maps a program id to its two-letter admission code.
var programCodes = map[int64]string{
	1: "AA",
	2: "BB",
	3: "CC",
	4: "DD",
	5: "EE",
	6: "FF",
}

// GenerateStudentNumber builds the admission student number from the
// admission year, the program code, and the zero-padded student id,
// for example "24BB/007".
func GenerateStudentNumber(studentID, programID int64, year int) string {
	code, ok := programCodes[programID]
	if !ok {
		code = "XX"
	}
	return fmt.Sprintf("%02d%s/%03d", year%100, code, studentID)
}

type admissionRepository interface {
	List(ctx context.Context) ([]models.AdmissionDetail, error)
	FindByID(ctx context.Context, id int64) (*models.AdmissionDetail, error)
	Create(ctx context.Context, admission *models.Admission) error
}

type studentChecker interface {
	FindByID(ctx context.Context, id int64) (*models.StudentDetail, error)
}

type programChecker interface {
	FindByID(ctx context.Context, id int64) (*models.Program, error)
}

// CreateAdmissionRequest enrolls a student into a program.
type CreateAdmissionRequest struct {
	StudentID int64 `json:"student_id" validate:"required,gt=0"`
	ProgramID int64 `json:"program_id" validate:"required,gt=0"`
}

// AdmissionService handles enrollment use-cases.
type AdmissionService struct {
	repo      admissionRepository
	students  studentChecker
	programs  programChecker
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAdmissionService constructs the admission service.
func NewAdmissionService(repo admissionRepository, students studentChecker, programs programChecker, validate *validator.Validate, logger *zap.Logger) *AdmissionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdmissionService{repo: repo, students: students, programs: programs, validator: validate, logger: logger, now: time.Now}
}

// List returns admissions with student and program names, newest first.
func (s *AdmissionService) List(ctx context.Context) ([]models.AdmissionDetail, error) {
	admissions, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list admissions")
	}
	return admissions, nil
}

// Get returns a single admission record.
func (s *AdmissionService) Get(ctx context.Context, id int64) (*models.AdmissionDetail, error) {
	admission, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "admission not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load admission")
	}
	return admission, nil
}

// Create enrolls a student and derives the student number.
func (s *AdmissionService) Create(ctx context.Context, req CreateAdmissionRequest) (*models.Admission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid admission payload")
	}
	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if _, err := s.programs.FindByID(ctx, req.ProgramID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "program not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load program")
	}
	now := s.now()
	admission := &models.Admission{
		StudentID:     req.StudentID,
		ProgramID:     req.ProgramID,
		StudentNumber: GenerateStudentNumber(req.StudentID, req.ProgramID, now.Year()),
		Date:          now,
	}
	if err := s.repo.Create(ctx, admission); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create admission")
	}
	return admission, nil
}
