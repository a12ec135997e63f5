package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/oduyemi/preschool-api/internal/models"
	appErrors "github.com/oduyemi/preschool-api/pkg/errors"
)

type mockStaffRepo struct {
	staff       map[int64]models.StaffDetail
	teachers    map[int64]models.Teacher
	emails      map[string]bool
	created     *models.Staff
	updated     *models.Staff
	promoted    []int64
	assigned    *models.TeacherClassAssignment
	assignments map[int64][]models.TeacherClassAssignment
}

func (m *mockStaffRepo) List(ctx context.Context, filter models.StaffFilter) ([]models.StaffDetail, int, error) {
	var list []models.StaffDetail
	for _, s := range m.staff {
		list = append(list, s)
	}
	return list, len(list), nil
}

func (m *mockStaffRepo) FindByID(ctx context.Context, id int64) (*models.StaffDetail, error) {
	if s, ok := m.staff[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStaffRepo) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	return m.emails[email], nil
}

func (m *mockStaffRepo) Create(ctx context.Context, staff *models.Staff) error {
	staff.ID = 1
	m.created = staff
	return nil
}

func (m *mockStaffRepo) Update(ctx context.Context, staff *models.Staff) error {
	m.updated = staff
	return nil
}

func (m *mockStaffRepo) Delete(ctx context.Context, id int64) error { return nil }

func (m *mockStaffRepo) PromoteTeacher(ctx context.Context, staffID int64) (*models.Teacher, error) {
	m.promoted = append(m.promoted, staffID)
	return &models.Teacher{ID: 10, StaffID: staffID}, nil
}

func (m *mockStaffRepo) FindTeacherByStaffID(ctx context.Context, staffID int64) (*models.Teacher, error) {
	if te, ok := m.teachers[staffID]; ok {
		return &te, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStaffRepo) AssignClass(ctx context.Context, assignment *models.TeacherClassAssignment) error {
	m.assigned = assignment
	return nil
}

func (m *mockStaffRepo) UnassignClass(ctx context.Context, teacherID, classID int64) error {
	return nil
}

func (m *mockStaffRepo) ListAssignments(ctx context.Context, teacherID int64) ([]models.TeacherClassAssignment, error) {
	return m.assignments[teacherID], nil
}

type mockDepartmentReader struct {
	departments map[int64]*models.Department
	roles       map[int64]*models.Role
}

func (m *mockDepartmentReader) FindDepartmentByID(ctx context.Context, id int64) (*models.Department, error) {
	if d, ok := m.departments[id]; ok {
		return d, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockDepartmentReader) FindRoleByID(ctx context.Context, id int64) (*models.Role, error) {
	if r, ok := m.roles[id]; ok {
		return r, nil
	}
	return nil, sql.ErrNoRows
}

type mockClassChecker struct {
	classes map[int64]*models.ClassDetail
}

func (m *mockClassChecker) FindByID(ctx context.Context, id int64) (*models.ClassDetail, error) {
	if c, ok := m.classes[id]; ok {
		return c, nil
	}
	return nil, sql.ErrNoRows
}

func newStaffService(repo *mockStaffRepo) *StaffService {
	lookups := &mockDepartmentReader{
		departments: map[int64]*models.Department{1: {ID: 1, Name: "Teaching"}},
		roles:       map[int64]*models.Role{2: {ID: 2, Name: models.RoleTeacher}},
	}
	classes := &mockClassChecker{classes: map[int64]*models.ClassDetail{3: {Class: models.Class{ID: 3, Name: "Butterflies"}}}}
	return NewStaffService(repo, lookups, classes, validator.New(), zap.NewNop())
}

func validStaffRequest() CreateStaffRequest {
	return CreateStaffRequest{
		Name:         "Grace",
		Age:          28,
		GenderID:     1,
		Email:        "grace@preschool.io",
		Password:     "sup3rsecret",
		DepartmentID: 1,
		RoleID:       2,
	}
}

func TestStaffServiceCreateHashesPassword(t *testing.T) {
	repo := &mockStaffRepo{}
	svc := newStaffService(repo)

	staff, err := svc.Create(context.Background(), validStaffRequest())
	require.NoError(t, err)
	assert.NotEqual(t, "sup3rsecret", staff.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte("sup3rsecret")))
}

func TestStaffServiceCreateTooYoung(t *testing.T) {
	repo := &mockStaffRepo{}
	svc := newStaffService(repo)

	req := validStaffRequest()
	req.Age = models.MinStaffAge - 1
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Nil(t, repo.created)
}

func TestStaffServiceCreateDuplicateEmail(t *testing.T) {
	repo := &mockStaffRepo{emails: map[string]bool{"grace@preschool.io": true}}
	svc := newStaffService(repo)

	_, err := svc.Create(context.Background(), validStaffRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestStaffServicePromoteTeacher(t *testing.T) {
	repo := &mockStaffRepo{staff: map[int64]models.StaffDetail{4: {Staff: models.Staff{ID: 4}}}}
	svc := newStaffService(repo)

	teacher, err := svc.PromoteTeacher(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), teacher.StaffID)
	assert.Contains(t, repo.promoted, int64(4))
}

func TestStaffServiceAssignClass(t *testing.T) {
	repo := &mockStaffRepo{teachers: map[int64]models.Teacher{4: {ID: 10, StaffID: 4}}}
	svc := newStaffService(repo)

	assignment, err := svc.AssignClass(context.Background(), 4, AssignClassRequest{ClassID: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(10), assignment.TeacherID)
	assert.Equal(t, int64(3), repo.assigned.ClassID)
}

func TestStaffServiceAssignClassUnknownClass(t *testing.T) {
	repo := &mockStaffRepo{teachers: map[int64]models.Teacher{4: {ID: 10, StaffID: 4}}}
	svc := newStaffService(repo)

	_, err := svc.AssignClass(context.Background(), 4, AssignClassRequest{ClassID: 99})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestStaffServiceAssignClassNotTeacher(t *testing.T) {
	svc := newStaffService(&mockStaffRepo{})

	_, err := svc.AssignClass(context.Background(), 4, AssignClassRequest{ClassID: 3})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func newStaffServiceWithRoles(repo *mockStaffRepo) *StaffService {
	lookups := &mockDepartmentReader{
		departments: map[int64]*models.Department{1: {ID: 1, Name: "Teaching"}},
		roles: map[int64]*models.Role{
			1: {ID: 1, Name: models.RoleAdmin},
			4: {ID: 4, Name: models.RoleTeacher},
		},
	}
	return NewStaffService(repo, lookups, &mockClassChecker{}, validator.New(), zap.NewNop())
}

func existingTeacherRepo() *mockStaffRepo {
	return &mockStaffRepo{
		staff: map[int64]models.StaffDetail{7: {Staff: models.Staff{
			ID: 7, Name: "Grace", Age: 28, GenderID: 1,
			Email: "grace@preschool.io", DepartmentID: 1, RoleID: 4,
		}}},
	}
}

func TestStaffServiceUpdateRoleChangeRequiresAdmin(t *testing.T) {
	repo := existingTeacherRepo()
	svc := newStaffServiceWithRoles(repo)

	req := UpdateStaffRequest{Name: "Grace", Age: 28, GenderID: 1, Email: "grace@preschool.io", DepartmentID: 1, RoleID: 1}
	self := &models.JWTClaims{SubjectID: 7, Kind: models.AccountStaff, Role: models.RoleTeacher}
	_, err := svc.Update(context.Background(), 7, req, self)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Nil(t, repo.updated)
}

func TestStaffServiceUpdateRoleChangeByAdmin(t *testing.T) {
	repo := existingTeacherRepo()
	svc := newStaffServiceWithRoles(repo)

	req := UpdateStaffRequest{Name: "Grace", Age: 28, GenderID: 1, Email: "grace@preschool.io", DepartmentID: 1, RoleID: 1}
	admin := &models.JWTClaims{SubjectID: 2, Kind: models.AccountStaff, Role: models.RoleAdmin}
	staff, err := svc.Update(context.Background(), 7, req, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), staff.RoleID)
	require.NotNil(t, repo.updated)
	assert.Equal(t, int64(1), repo.updated.RoleID)
}

func TestStaffServiceUpdateSelfKeepsRole(t *testing.T) {
	repo := existingTeacherRepo()
	svc := newStaffServiceWithRoles(repo)

	req := UpdateStaffRequest{Name: "Grace A.", Age: 29, GenderID: 1, Email: "grace@preschool.io", DepartmentID: 1, RoleID: 4}
	self := &models.JWTClaims{SubjectID: 7, Kind: models.AccountStaff, Role: models.RoleTeacher}
	staff, err := svc.Update(context.Background(), 7, req, self)
	require.NoError(t, err)
	assert.Equal(t, "Grace A.", staff.Name)
	assert.Equal(t, int64(4), staff.RoleID)
}
