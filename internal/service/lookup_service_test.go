package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oduyemi/preschool-api/internal/models"
	appErrors "github.com/oduyemi/preschool-api/pkg/errors"
)

type mockLookupRepo struct {
	departments map[int64]models.Department
	roles       map[int64]models.Role
	genders     map[int64]models.Gender
	contacts    map[int64]models.Emergency
	categories  map[int64]models.MedicalCategory
	conditions  map[int64]models.MedicalConditionDetail
}

func (m *mockLookupRepo) ListDepartments(ctx context.Context) ([]models.Department, error) {
	var list []models.Department
	for _, d := range m.departments {
		list = append(list, d)
	}
	return list, nil
}

func (m *mockLookupRepo) DepartmentExists(ctx context.Context, name string) (bool, error) {
	for _, d := range m.departments {
		if strings.EqualFold(d.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLookupRepo) CreateDepartment(ctx context.Context, department *models.Department) error {
	department.ID = 1
	if m.departments == nil {
		m.departments = make(map[int64]models.Department)
	}
	m.departments[department.ID] = *department
	return nil
}

func (m *mockLookupRepo) FindDepartmentByID(ctx context.Context, id int64) (*models.Department, error) {
	if d, ok := m.departments[id]; ok {
		return &d, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockLookupRepo) DeleteDepartment(ctx context.Context, id int64) error {
	delete(m.departments, id)
	return nil
}

func (m *mockLookupRepo) ListRoles(ctx context.Context) ([]models.Role, error) {
	var list []models.Role
	for _, r := range m.roles {
		list = append(list, r)
	}
	return list, nil
}

func (m *mockLookupRepo) RoleExists(ctx context.Context, name string) (bool, error) {
	for _, r := range m.roles {
		if strings.EqualFold(r.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLookupRepo) CreateRole(ctx context.Context, role *models.Role) error {
	role.ID = 1
	return nil
}

func (m *mockLookupRepo) FindRoleByID(ctx context.Context, id int64) (*models.Role, error) {
	if r, ok := m.roles[id]; ok {
		return &r, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockLookupRepo) DeleteRole(ctx context.Context, id int64) error { return nil }

func (m *mockLookupRepo) ListGenders(ctx context.Context) ([]models.Gender, error) {
	var list []models.Gender
	for _, g := range m.genders {
		list = append(list, g)
	}
	return list, nil
}

func (m *mockLookupRepo) GenderExists(ctx context.Context, name string) (bool, error) {
	for _, g := range m.genders {
		if strings.EqualFold(g.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLookupRepo) CreateGender(ctx context.Context, gender *models.Gender) error {
	gender.ID = 1
	return nil
}

func (m *mockLookupRepo) FindGenderByID(ctx context.Context, id int64) (*models.Gender, error) {
	if g, ok := m.genders[id]; ok {
		return &g, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockLookupRepo) DeleteGender(ctx context.Context, id int64) error { return nil }

func (m *mockLookupRepo) ListEmergencyContacts(ctx context.Context) ([]models.Emergency, error) {
	var list []models.Emergency
	for _, e := range m.contacts {
		list = append(list, e)
	}
	return list, nil
}

func (m *mockLookupRepo) CreateEmergencyContact(ctx context.Context, contact *models.Emergency) error {
	contact.ID = 1
	return nil
}

func (m *mockLookupRepo) FindEmergencyContactByID(ctx context.Context, id int64) (*models.Emergency, error) {
	if e, ok := m.contacts[id]; ok {
		return &e, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockLookupRepo) DeleteEmergencyContact(ctx context.Context, id int64) error { return nil }

func (m *mockLookupRepo) ListMedicalCategories(ctx context.Context) ([]models.MedicalCategory, error) {
	var list []models.MedicalCategory
	for _, c := range m.categories {
		list = append(list, c)
	}
	return list, nil
}

func (m *mockLookupRepo) CreateMedicalCategory(ctx context.Context, category *models.MedicalCategory) error {
	category.ID = 1
	return nil
}

func (m *mockLookupRepo) FindMedicalCategoryByID(ctx context.Context, id int64) (*models.MedicalCategory, error) {
	if c, ok := m.categories[id]; ok {
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockLookupRepo) DeleteMedicalCategory(ctx context.Context, id int64) error { return nil }

func (m *mockLookupRepo) ListMedicalConditions(ctx context.Context) ([]models.MedicalConditionDetail, error) {
	var list []models.MedicalConditionDetail
	for _, c := range m.conditions {
		list = append(list, c)
	}
	return list, nil
}

func (m *mockLookupRepo) CreateMedicalCondition(ctx context.Context, condition *models.MedicalCondition) error {
	condition.ID = 1
	return nil
}

func (m *mockLookupRepo) FindMedicalConditionByID(ctx context.Context, id int64) (*models.MedicalCondition, error) {
	if c, ok := m.conditions[id]; ok {
		return &c.MedicalCondition, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockLookupRepo) DeleteMedicalCondition(ctx context.Context, id int64) error { return nil }

func TestLookupServiceCreateDepartment(t *testing.T) {
	repo := &mockLookupRepo{}
	svc := NewLookupService(repo, validator.New(), zap.NewNop())

	department, err := svc.CreateDepartment(context.Background(), CreateNamedRequest{Name: "Teaching"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), department.ID)
}

func TestLookupServiceCreateDepartmentDuplicate(t *testing.T) {
	repo := &mockLookupRepo{departments: map[int64]models.Department{2: {ID: 2, Name: "Teaching"}}}
	svc := NewLookupService(repo, validator.New(), zap.NewNop())

	_, err := svc.CreateDepartment(context.Background(), CreateNamedRequest{Name: "teaching"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestLookupServiceCreateMedicalCondition(t *testing.T) {
	repo := &mockLookupRepo{categories: map[int64]models.MedicalCategory{5: {ID: 5, Name: "Respiratory"}}}
	svc := NewLookupService(repo, validator.New(), zap.NewNop())

	condition, err := svc.CreateMedicalCondition(context.Background(), CreateMedicalConditionRequest{Name: "Asthma", CategoryID: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(5), condition.CategoryID)
}

func TestLookupServiceCreateMedicalConditionUnknownCategory(t *testing.T) {
	svc := NewLookupService(&mockLookupRepo{}, validator.New(), zap.NewNop())

	_, err := svc.CreateMedicalCondition(context.Background(), CreateMedicalConditionRequest{Name: "Asthma", CategoryID: 9})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestLookupServiceDeleteGenderNotFound(t *testing.T) {
	svc := NewLookupService(&mockLookupRepo{}, validator.New(), zap.NewNop())

	_, err := svc.DeleteGender(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
