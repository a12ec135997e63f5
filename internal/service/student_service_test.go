package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oduyemi/preschool-api/internal/models"
	appErrors "github.com/oduyemi/preschool-api/pkg/errors"
)

type mockStudentRepo struct {
	students   map[int64]models.StudentDetail
	created    *models.Student
	updated    *models.Student
	deleted    []int64
	conditions map[int64][]models.MedicalConditionDetail
	linked     [][2]int64
	unlinked   [][2]int64
}

func (m *mockStudentRepo) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error) {
	var list []models.StudentDetail
	for _, s := range m.students {
		list = append(list, s)
	}
	return list, len(list), nil
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id int64) (*models.StudentDetail, error) {
	if s, ok := m.students[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) error {
	student.ID = 1
	m.created = student
	return nil
}

func (m *mockStudentRepo) Update(ctx context.Context, student *models.Student) error {
	m.updated = student
	return nil
}

func (m *mockStudentRepo) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockStudentRepo) AddMedicalCondition(ctx context.Context, studentID, conditionID int64) error {
	m.linked = append(m.linked, [2]int64{studentID, conditionID})
	return nil
}

func (m *mockStudentRepo) RemoveMedicalCondition(ctx context.Context, studentID, conditionID int64) error {
	m.unlinked = append(m.unlinked, [2]int64{studentID, conditionID})
	return nil
}

func (m *mockStudentRepo) ListMedicalConditions(ctx context.Context, studentID int64) ([]models.MedicalConditionDetail, error) {
	return m.conditions[studentID], nil
}

type mockGenderReader struct {
	genders map[int64]*models.Gender
}

func (m *mockGenderReader) FindGenderByID(ctx context.Context, id int64) (*models.Gender, error) {
	if g, ok := m.genders[id]; ok {
		return g, nil
	}
	return nil, sql.ErrNoRows
}

type mockConditionReader struct {
	conditions map[int64]*models.MedicalCondition
}

func (m *mockConditionReader) FindMedicalConditionByID(ctx context.Context, id int64) (*models.MedicalCondition, error) {
	if c, ok := m.conditions[id]; ok {
		return c, nil
	}
	return nil, sql.ErrNoRows
}

func newStudentService(repo *mockStudentRepo) *StudentService {
	genders := &mockGenderReader{genders: map[int64]*models.Gender{1: {ID: 1, Name: "Female"}}}
	conditions := &mockConditionReader{conditions: map[int64]*models.MedicalCondition{3: {ID: 3, Name: "Asthma"}}}
	return NewStudentService(repo, genders, conditions, validator.New(), zap.NewNop())
}

func TestStudentServiceCreate(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := newStudentService(repo)

	student, err := svc.Create(context.Background(), CreateStudentRequest{Name: "Ada", Age: models.MaxStudentAge, GenderID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), student.ID)
	assert.Equal(t, "Ada", repo.created.Name)
}

func TestStudentServiceCreateTooOld(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := newStudentService(repo)

	_, err := svc.Create(context.Background(), CreateStudentRequest{Name: "Ada", Age: models.MaxStudentAge + 1, GenderID: 1})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Nil(t, repo.created)
}

func TestStudentServiceCreateUnknownGender(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := newStudentService(repo)

	_, err := svc.Create(context.Background(), CreateStudentRequest{Name: "Ada", Age: 4, GenderID: 99})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestStudentServiceUpdateNotFound(t *testing.T) {
	svc := newStudentService(&mockStudentRepo{})

	_, err := svc.Update(context.Background(), 5, CreateStudentRequest{Name: "Ada", Age: 4, GenderID: 1})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestStudentServiceDelete(t *testing.T) {
	repo := &mockStudentRepo{students: map[int64]models.StudentDetail{5: {Student: models.Student{ID: 5, Name: "Ada"}}}}
	svc := newStudentService(repo)

	prior, err := svc.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Ada", prior.Name)
	assert.Contains(t, repo.deleted, int64(5))
}

func TestStudentServiceAddMedicalCondition(t *testing.T) {
	repo := &mockStudentRepo{students: map[int64]models.StudentDetail{5: {Student: models.Student{ID: 5}}}}
	svc := newStudentService(repo)

	require.NoError(t, svc.AddMedicalCondition(context.Background(), 5, 3))
	assert.Equal(t, [2]int64{5, 3}, repo.linked[0])

	err := svc.AddMedicalCondition(context.Background(), 5, 99)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
