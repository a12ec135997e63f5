package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oduyemi/preschool-api/internal/models"
	appErrors "github.com/oduyemi/preschool-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error)
	FindByID(ctx context.Context, id int64) (*models.StudentDetail, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
	AddMedicalCondition(ctx context.Context, studentID, conditionID int64) error
	RemoveMedicalCondition(ctx context.Context, studentID, conditionID int64) error
	ListMedicalConditions(ctx context.Context, studentID int64) ([]models.MedicalConditionDetail, error)
}

type genderReader interface {
	FindGenderByID(ctx context.Context, id int64) (*models.Gender, error)
}

type conditionReader interface {
	FindMedicalConditionByID(ctx context.Context, id int64) (*models.MedicalCondition, error)
}

// CreateStudentRequest holds payload for creating or updating students.
type CreateStudentRequest struct {
	Name               string `json:"name" validate:"required"`
	Age                int    `json:"age" validate:"required,gt=0"`
	Address            string `json:"address"`
	GenderID           int64  `json:"gender_id" validate:"required,gt=0"`
	EmergencyContactID *int64 `json:"emergency_contact_id"`
	IsDisabled         bool   `json:"is_disabled"`
	Image              string `json:"image"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo       studentRepository
	genders    genderReader
	conditions conditionReader
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, genders genderReader, conditions conditionReader, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, genders: genders, conditions: conditions, validator: validate, logger: logger}
}

// List returns students and pagination metadata.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, *models.Pagination, error) {
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return students, pagination, nil
}

// Get returns detailed student information.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.StudentDetail, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

func (s *StudentService) checkAge(age int) error {
	if age > models.MaxStudentAge {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("student age must be %d or younger", models.MaxStudentAge))
	}
	return nil
}

func (s *StudentService) checkGender(ctx context.Context, genderID int64) error {
	if _, err := s.genders.FindGenderByID(ctx, genderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrValidation, "gender does not exist")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load gender")
	}
	return nil
}

// Create registers a new student. Age must be at most ten.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if err := s.checkAge(req.Age); err != nil {
		return nil, err
	}
	if err := s.checkGender(ctx, req.GenderID); err != nil {
		return nil, err
	}
	student := &models.Student{
		Name:               req.Name,
		Age:                req.Age,
		Address:            req.Address,
		GenderID:           req.GenderID,
		EmergencyContactID: req.EmergencyContactID,
		IsDisabled:         req.IsDisabled,
		Image:              req.Image,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	return student, nil
}

// Update modifies an existing student record.
func (s *StudentService) Update(ctx context.Context, id int64, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if err := s.checkAge(req.Age); err != nil {
		return nil, err
	}
	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if err := s.checkGender(ctx, req.GenderID); err != nil {
		return nil, err
	}
	student := detail.Student
	student.Name = req.Name
	student.Age = req.Age
	student.Address = req.Address
	student.GenderID = req.GenderID
	student.EmergencyContactID = req.EmergencyContactID
	student.IsDisabled = req.IsDisabled
	student.Image = req.Image
	if err := s.repo.Update(ctx, &student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return &student, nil
}

// Delete removes a student and association rows, returning the prior state.
func (s *StudentService) Delete(ctx context.Context, id int64) (*models.StudentDetail, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	return student, nil
}

// AddMedicalCondition links a condition to a student.
func (s *StudentService) AddMedicalCondition(ctx context.Context, studentID, conditionID int64) error {
	if _, err := s.repo.FindByID(ctx, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if _, err := s.conditions.FindMedicalConditionByID(ctx, conditionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "medical condition not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load medical condition")
	}
	if err := s.repo.AddMedicalCondition(ctx, studentID, conditionID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add medical condition")
	}
	return nil
}

// RemoveMedicalCondition unlinks a condition from a student.
func (s *StudentService) RemoveMedicalCondition(ctx context.Context, studentID, conditionID int64) error {
	if _, err := s.repo.FindByID(ctx, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if err := s.repo.RemoveMedicalCondition(ctx, studentID, conditionID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove medical condition")
	}
	return nil
}

// ListMedicalConditions returns the conditions linked to a student.
func (s *StudentService) ListMedicalConditions(ctx context.Context, studentID int64) ([]models.MedicalConditionDetail, error) {
	if _, err := s.repo.FindByID(ctx, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	conditions, err := s.repo.ListMedicalConditions(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list medical conditions")
	}
	return conditions, nil
}
