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

type lookupRepository interface {
	ListDepartments(ctx context.Context) ([]models.Department, error)
	DepartmentExists(ctx context.Context, name string) (bool, error)
	CreateDepartment(ctx context.Context, department *models.Department) error
	FindDepartmentByID(ctx context.Context, id int64) (*models.Department, error)
	DeleteDepartment(ctx context.Context, id int64) error

	ListRoles(ctx context.Context) ([]models.Role, error)
	RoleExists(ctx context.Context, name string) (bool, error)
	CreateRole(ctx context.Context, role *models.Role) error
	FindRoleByID(ctx context.Context, id int64) (*models.Role, error)
	DeleteRole(ctx context.Context, id int64) error

	ListGenders(ctx context.Context) ([]models.Gender, error)
	GenderExists(ctx context.Context, name string) (bool, error)
	CreateGender(ctx context.Context, gender *models.Gender) error
	FindGenderByID(ctx context.Context, id int64) (*models.Gender, error)
	DeleteGender(ctx context.Context, id int64) error

	ListEmergencyContacts(ctx context.Context) ([]models.Emergency, error)
	CreateEmergencyContact(ctx context.Context, contact *models.Emergency) error
	FindEmergencyContactByID(ctx context.Context, id int64) (*models.Emergency, error)
	DeleteEmergencyContact(ctx context.Context, id int64) error

	ListMedicalCategories(ctx context.Context) ([]models.MedicalCategory, error)
	CreateMedicalCategory(ctx context.Context, category *models.MedicalCategory) error
	FindMedicalCategoryByID(ctx context.Context, id int64) (*models.MedicalCategory, error)
	DeleteMedicalCategory(ctx context.Context, id int64) error

	ListMedicalConditions(ctx context.Context) ([]models.MedicalConditionDetail, error)
	CreateMedicalCondition(ctx context.Context, condition *models.MedicalCondition) error
	FindMedicalConditionByID(ctx context.Context, id int64) (*models.MedicalCondition, error)
	DeleteMedicalCondition(ctx context.Context, id int64) error
}

// CreateNamedRequest is the payload for the id+name reference entities.
type CreateNamedRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateEmergencyRequest is the payload for emergency contacts.
type CreateEmergencyRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

// CreateMedicalConditionRequest is the payload for medical conditions.
type CreateMedicalConditionRequest struct {
	Name       string `json:"name" validate:"required"`
	CategoryID int64  `json:"category_id" validate:"required,gt=0"`
}

// LookupService handles the reference entity use-cases.
type LookupService struct {
	repo      lookupRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLookupService constructs the lookup service.
func NewLookupService(repo lookupRepository, validate *validator.Validate, logger *zap.Logger) *LookupService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LookupService{repo: repo, validator: validate, logger: logger}
}

func (s *LookupService) guardName(exists bool, err error, kind string) error {
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fmt.Sprintf("failed to validate %s name", kind))
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("%s name already used", kind))
	}
	return nil
}

// ListDepartments returns all departments.
func (s *LookupService) ListDepartments(ctx context.Context) ([]models.Department, error) {
	items, err := s.repo.ListDepartments(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list departments")
	}
	return items, nil
}

// CreateDepartment inserts a department after the duplicate-name guard.
func (s *LookupService) CreateDepartment(ctx context.Context, req CreateNamedRequest) (*models.Department, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid department payload")
	}
	exists, err := s.repo.DepartmentExists(ctx, req.Name)
	if err := s.guardName(exists, err, "department"); err != nil {
		return nil, err
	}
	department := &models.Department{Name: req.Name}
	if err := s.repo.CreateDepartment(ctx, department); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create department")
	}
	return department, nil
}

// DeleteDepartment removes a department.
func (s *LookupService) DeleteDepartment(ctx context.Context, id int64) (*models.Department, error) {
	item, err := s.repo.FindDepartmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load department")
	}
	if err := s.repo.DeleteDepartment(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete department")
	}
	return item, nil
}

// ListRoles returns all roles.
func (s *LookupService) ListRoles(ctx context.Context) ([]models.Role, error) {
	items, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list roles")
	}
	return items, nil
}

// CreateRole inserts a role after the duplicate-name guard.
func (s *LookupService) CreateRole(ctx context.Context, req CreateNamedRequest) (*models.Role, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid role payload")
	}
	exists, err := s.repo.RoleExists(ctx, req.Name)
	if err := s.guardName(exists, err, "role"); err != nil {
		return nil, err
	}
	role := &models.Role{Name: req.Name}
	if err := s.repo.CreateRole(ctx, role); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create role")
	}
	return role, nil
}

// DeleteRole removes a role.
func (s *LookupService) DeleteRole(ctx context.Context, id int64) (*models.Role, error) {
	item, err := s.repo.FindRoleByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "role not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load role")
	}
	if err := s.repo.DeleteRole(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete role")
	}
	return item, nil
}

// ListGenders returns all genders.
func (s *LookupService) ListGenders(ctx context.Context) ([]models.Gender, error) {
	items, err := s.repo.ListGenders(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list genders")
	}
	return items, nil
}

// CreateGender inserts a gender after the duplicate-name guard.
func (s *LookupService) CreateGender(ctx context.Context, req CreateNamedRequest) (*models.Gender, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid gender payload")
	}
	exists, err := s.repo.GenderExists(ctx, req.Name)
	if err := s.guardName(exists, err, "gender"); err != nil {
		return nil, err
	}
	gender := &models.Gender{Name: req.Name}
	if err := s.repo.CreateGender(ctx, gender); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create gender")
	}
	return gender, nil
}

// DeleteGender removes a gender.
func (s *LookupService) DeleteGender(ctx context.Context, id int64) (*models.Gender, error) {
	item, err := s.repo.FindGenderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "gender not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load gender")
	}
	if err := s.repo.DeleteGender(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete gender")
	}
	return item, nil
}

// ListEmergencyContacts returns all emergency contacts.
func (s *LookupService) ListEmergencyContacts(ctx context.Context) ([]models.Emergency, error) {
	items, err := s.repo.ListEmergencyContacts(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list emergency contacts")
	}
	return items, nil
}

// CreateEmergencyContact inserts an emergency contact.
func (s *LookupService) CreateEmergencyContact(ctx context.Context, req CreateEmergencyRequest) (*models.Emergency, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid emergency contact payload")
	}
	contact := &models.Emergency{Name: req.Name, Phone: req.Phone}
	if err := s.repo.CreateEmergencyContact(ctx, contact); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create emergency contact")
	}
	return contact, nil
}

// DeleteEmergencyContact removes an emergency contact.
func (s *LookupService) DeleteEmergencyContact(ctx context.Context, id int64) (*models.Emergency, error) {
	item, err := s.repo.FindEmergencyContactByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "emergency contact not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load emergency contact")
	}
	if err := s.repo.DeleteEmergencyContact(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete emergency contact")
	}
	return item, nil
}

// ListMedicalCategories returns all medical categories.
func (s *LookupService) ListMedicalCategories(ctx context.Context) ([]models.MedicalCategory, error) {
	items, err := s.repo.ListMedicalCategories(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list medical categories")
	}
	return items, nil
}

// CreateMedicalCategory inserts a medical category.
func (s *LookupService) CreateMedicalCategory(ctx context.Context, req CreateNamedRequest) (*models.MedicalCategory, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid medical category payload")
	}
	category := &models.MedicalCategory{Name: req.Name}
	if err := s.repo.CreateMedicalCategory(ctx, category); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create medical category")
	}
	return category, nil
}

// DeleteMedicalCategory removes a medical category.
func (s *LookupService) DeleteMedicalCategory(ctx context.Context, id int64) (*models.MedicalCategory, error) {
	item, err := s.repo.FindMedicalCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "medical category not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load medical category")
	}
	if err := s.repo.DeleteMedicalCategory(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete medical category")
	}
	return item, nil
}

// ListMedicalConditions returns all medical conditions with categories.
func (s *LookupService) ListMedicalConditions(ctx context.Context) ([]models.MedicalConditionDetail, error) {
	items, err := s.repo.ListMedicalConditions(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list medical conditions")
	}
	return items, nil
}

// CreateMedicalCondition inserts a condition under an existing category.
func (s *LookupService) CreateMedicalCondition(ctx context.Context, req CreateMedicalConditionRequest) (*models.MedicalCondition, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid medical condition payload")
	}
	if _, err := s.repo.FindMedicalCategoryByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "medical category does not exist")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load medical category")
	}
	condition := &models.MedicalCondition{Name: req.Name, CategoryID: req.CategoryID}
	if err := s.repo.CreateMedicalCondition(ctx, condition); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create medical condition")
	}
	return condition, nil
}

// DeleteMedicalCondition removes a condition and its student links.
func (s *LookupService) DeleteMedicalCondition(ctx context.Context, id int64) (*models.MedicalCondition, error) {
	item, err := s.repo.FindMedicalConditionByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "medical condition not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load medical condition")
	}
	if err := s.repo.DeleteMedicalCondition(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete medical condition")
	}
	return item, nil
}
