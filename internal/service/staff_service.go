package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/oduyemi/preschool-api/internal/models"
	appErrors "github.com/oduyemi/preschool-api/pkg/errors"
)

type staffRepository interface {
	List(ctx context.Context, filter models.StaffFilter) ([]models.StaffDetail, int, error)
	FindByID(ctx context.Context, id int64) (*models.StaffDetail, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	Create(ctx context.Context, staff *models.Staff) error
	Update(ctx context.Context, staff *models.Staff) error
	Delete(ctx context.Context, id int64) error
	PromoteTeacher(ctx context.Context, staffID int64) (*models.Teacher, error)
	FindTeacherByStaffID(ctx context.Context, staffID int64) (*models.Teacher, error)
	AssignClass(ctx context.Context, assignment *models.TeacherClassAssignment) error
	UnassignClass(ctx context.Context, teacherID, classID int64) error
	ListAssignments(ctx context.Context, teacherID int64) ([]models.TeacherClassAssignment, error)
}

type departmentReader interface {
	FindDepartmentByID(ctx context.Context, id int64) (*models.Department, error)
	FindRoleByID(ctx context.Context, id int64) (*models.Role, error)
}

type classChecker interface {
	FindByID(ctx context.Context, id int64) (*models.ClassDetail, error)
}

// CreateStaffRequest holds payload for registering staff.
type CreateStaffRequest struct {
	Name         string `json:"name" validate:"required"`
	Age          int    `json:"age" validate:"required,gt=0"`
	GenderID     int64  `json:"gender_id" validate:"required,gt=0"`
	Address      string `json:"address"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone"`
	Password     string `json:"password" validate:"required,min=8"`
	DepartmentID int64  `json:"department_id" validate:"required,gt=0"`
	RoleID       int64  `json:"role_id" validate:"required,gt=0"`
	Image        string `json:"image"`
}

// UpdateStaffRequest omits credentials, which are not editable here.
type UpdateStaffRequest struct {
	Name         string `json:"name" validate:"required"`
	Age          int    `json:"age" validate:"required,gt=0"`
	GenderID     int64  `json:"gender_id" validate:"required,gt=0"`
	Address      string `json:"address"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone"`
	DepartmentID int64  `json:"department_id" validate:"required,gt=0"`
	RoleID       int64  `json:"role_id" validate:"required,gt=0"`
	Image        string `json:"image"`
}

// AssignClassRequest links a teacher to a class.
type AssignClassRequest struct {
	ClassID            int64  `json:"class_id" validate:"required,gt=0"`
	AssistantTeacherID *int64 `json:"assistant_teacher_id"`
}

// StaffService handles staff and teacher use-cases.
type StaffService struct {
	repo      staffRepository
	lookups   departmentReader
	classes   classChecker
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStaffService constructs the staff service.
func NewStaffService(repo staffRepository, lookups departmentReader, classes classChecker, validate *validator.Validate, logger *zap.Logger) *StaffService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffService{repo: repo, lookups: lookups, classes: classes, validator: validate, logger: logger}
}

// List returns staff with pagination metadata.
func (s *StaffService) List(ctx context.Context, filter models.StaffFilter) ([]models.StaffDetail, *models.Pagination, error) {
	staff, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list staff")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return staff, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns a staff member with department and role names.
func (s *StaffService) Get(ctx context.Context, id int64) (*models.StaffDetail, error) {
	staff, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "staff not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load staff")
	}
	return staff, nil
}

func (s *StaffService) checkStaffAge(age int) error {
	if age < models.MinStaffAge {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("staff age must be %d or older", models.MinStaffAge))
	}
	return nil
}

func (s *StaffService) checkDepartmentAndRole(ctx context.Context, departmentID, roleID int64) error {
	if _, err := s.lookups.FindDepartmentByID(ctx, departmentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrValidation, "department does not exist")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load department")
	}
	if _, err := s.lookups.FindRoleByID(ctx, roleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrValidation, "role does not exist")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load role")
	}
	return nil
}

// Create registers a staff member with a hashed password.
func (s *StaffService) Create(ctx context.Context, req CreateStaffRequest) (*models.Staff, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid staff payload")
	}
	if err := s.checkStaffAge(req.Age); err != nil {
		return nil, err
	}
	if err := s.checkDepartmentAndRole(ctx, req.DepartmentID, req.RoleID); err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsByEmail(ctx, req.Email, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate email")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	staff := &models.Staff{
		Name:         req.Name,
		Age:          req.Age,
		GenderID:     req.GenderID,
		Address:      req.Address,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		DepartmentID: req.DepartmentID,
		RoleID:       req.RoleID,
		Image:        req.Image,
	}
	if err := s.repo.Create(ctx, staff); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create staff")
	}
	return staff, nil
}

// Update modifies staff profile fields. Passwords are untouched.
// Role and department changes require an admin actor.
func (s *StaffService) Update(ctx context.Context, id int64, req UpdateStaffRequest, actor *models.JWTClaims) (*models.Staff, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid staff payload")
	}
	if err := s.checkStaffAge(req.Age); err != nil {
		return nil, err
	}
	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "staff not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load staff")
	}
	if req.RoleID != detail.RoleID || req.DepartmentID != detail.DepartmentID {
		if actor == nil || actor.Role != models.RoleAdmin {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "only an admin may change role or department")
		}
	}
	if err := s.checkDepartmentAndRole(ctx, req.DepartmentID, req.RoleID); err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsByEmail(ctx, req.Email, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate email")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
	}
	staff := detail.Staff
	staff.Name = req.Name
	staff.Age = req.Age
	staff.GenderID = req.GenderID
	staff.Address = req.Address
	staff.Email = req.Email
	staff.Phone = req.Phone
	staff.DepartmentID = req.DepartmentID
	staff.RoleID = req.RoleID
	staff.Image = req.Image
	if err := s.repo.Update(ctx, &staff); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update staff")
	}
	return &staff, nil
}

// Delete removes a staff member and dependent teaching rows.
func (s *StaffService) Delete(ctx context.Context, id int64) (*models.StaffDetail, error) {
	staff, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "staff not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load staff")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete staff")
	}
	return staff, nil
}

// PromoteTeacher creates the teaching extension for a staff member.
func (s *StaffService) PromoteTeacher(ctx context.Context, staffID int64) (*models.Teacher, error) {
	if _, err := s.repo.FindByID(ctx, staffID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "staff not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load staff")
	}
	teacher, err := s.repo.PromoteTeacher(ctx, staffID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to promote teacher")
	}
	return teacher, nil
}

// AssignClass links an existing teacher to an existing class.
func (s *StaffService) AssignClass(ctx context.Context, staffID int64, req AssignClassRequest) (*models.TeacherClassAssignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	teacher, err := s.repo.FindTeacherByStaffID(ctx, staffID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	if _, err := s.classes.FindByID(ctx, req.ClassID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "class does not exist")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	assignment := &models.TeacherClassAssignment{
		TeacherID:          teacher.ID,
		ClassID:            req.ClassID,
		AssistantTeacherID: req.AssistantTeacherID,
	}
	if err := s.repo.AssignClass(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to assign class")
	}
	return assignment, nil
}

// UnassignClass removes a teacher-class link.
func (s *StaffService) UnassignClass(ctx context.Context, staffID, classID int64) error {
	teacher, err := s.repo.FindTeacherByStaffID(ctx, staffID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	if err := s.repo.UnassignClass(ctx, teacher.ID, classID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to unassign class")
	}
	return nil
}

// ListAssignments returns the classes a teacher is linked to.
func (s *StaffService) ListAssignments(ctx context.Context, staffID int64) ([]models.TeacherClassAssignment, error) {
	teacher, err := s.repo.FindTeacherByStaffID(ctx, staffID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	assignments, err := s.repo.ListAssignments(ctx, teacher.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	return assignments, nil
}
