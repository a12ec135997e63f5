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

type mockClassRepo struct {
	classes    map[int64]models.ClassDetail
	roster     map[int64][]models.ClassRosterEntry
	created    *models.Class
	enrolled   [][2]int64
	unenrolled [][2]int64
}

func (m *mockClassRepo) List(ctx context.Context, programID int64) ([]models.ClassDetail, error) {
	var list []models.ClassDetail
	for _, c := range m.classes {
		if programID == 0 || c.ProgramID == programID {
			list = append(list, c)
		}
	}
	return list, nil
}

func (m *mockClassRepo) FindByID(ctx context.Context, id int64) (*models.ClassDetail, error) {
	if c, ok := m.classes[id]; ok {
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockClassRepo) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	for _, c := range m.classes {
		if c.ID != excludeID && strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockClassRepo) Create(ctx context.Context, class *models.Class) error {
	class.ID = 3
	m.created = class
	return nil
}

func (m *mockClassRepo) Update(ctx context.Context, class *models.Class) error { return nil }

func (m *mockClassRepo) Delete(ctx context.Context, id int64) error { return nil }

func (m *mockClassRepo) EnrollStudent(ctx context.Context, classID, studentID int64) error {
	m.enrolled = append(m.enrolled, [2]int64{classID, studentID})
	return nil
}

func (m *mockClassRepo) UnenrollStudent(ctx context.Context, classID, studentID int64) error {
	m.unenrolled = append(m.unenrolled, [2]int64{classID, studentID})
	return nil
}

func (m *mockClassRepo) Roster(ctx context.Context, classID int64) ([]models.ClassRosterEntry, error) {
	return m.roster[classID], nil
}

func newClassService(repo *mockClassRepo) *ClassService {
	programs := &mockProgramChecker{programs: map[int64]*models.Program{2: {ID: 2, Name: "Toddlers"}}}
	students := &mockStudentChecker{students: map[int64]*models.StudentDetail{7: {Student: models.Student{ID: 7, Name: "Ada"}}}}
	return NewClassService(repo, programs, students, validator.New(), zap.NewNop())
}

func TestClassServiceCreate(t *testing.T) {
	repo := &mockClassRepo{}
	svc := newClassService(repo)

	class, err := svc.Create(context.Background(), CreateClassRequest{Name: "Butterflies", ProgramID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), class.ID)
	assert.Equal(t, "Butterflies", repo.created.Name)
}

func TestClassServiceCreateDuplicateName(t *testing.T) {
	repo := &mockClassRepo{classes: map[int64]models.ClassDetail{3: {Class: models.Class{ID: 3, Name: "Butterflies", ProgramID: 2}}}}
	svc := newClassService(repo)

	_, err := svc.Create(context.Background(), CreateClassRequest{Name: "butterflies", ProgramID: 2})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestClassServiceCreateUnknownProgram(t *testing.T) {
	svc := newClassService(&mockClassRepo{})

	_, err := svc.Create(context.Background(), CreateClassRequest{Name: "Butterflies", ProgramID: 9})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestClassServiceEnroll(t *testing.T) {
	repo := &mockClassRepo{classes: map[int64]models.ClassDetail{3: {Class: models.Class{ID: 3, Name: "Butterflies"}}}}
	svc := newClassService(repo)

	require.NoError(t, svc.Enroll(context.Background(), 3, 7))
	assert.Equal(t, [2]int64{3, 7}, repo.enrolled[0])
}

func TestClassServiceEnrollUnknownStudent(t *testing.T) {
	repo := &mockClassRepo{classes: map[int64]models.ClassDetail{3: {Class: models.Class{ID: 3}}}}
	svc := newClassService(repo)

	err := svc.Enroll(context.Background(), 3, 99)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.enrolled)
}

func TestClassServiceExportRosterCSV(t *testing.T) {
	repo := &mockClassRepo{
		classes: map[int64]models.ClassDetail{3: {Class: models.Class{ID: 3, Name: "Butterflies"}}},
		roster: map[int64][]models.ClassRosterEntry{3: {
			{StudentID: 7, Name: "Ada", Age: 4, Gender: "Female"},
		}},
	}
	svc := newClassService(repo)

	payload, contentType, err := svc.ExportRoster(context.Background(), 3, "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Contains(t, string(payload), "Ada")
}

func TestClassServiceExportRosterPDF(t *testing.T) {
	repo := &mockClassRepo{
		classes: map[int64]models.ClassDetail{3: {Class: models.Class{ID: 3, Name: "Butterflies"}}},
		roster:  map[int64][]models.ClassRosterEntry{3: {{StudentID: 7, Name: "Ada", Age: 4, Gender: "Female"}}},
	}
	svc := newClassService(repo)

	payload, contentType, err := svc.ExportRoster(context.Background(), 3, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

func TestClassServiceExportRosterBadFormat(t *testing.T) {
	repo := &mockClassRepo{classes: map[int64]models.ClassDetail{3: {Class: models.Class{ID: 3, Name: "Butterflies"}}}}
	svc := newClassService(repo)

	_, _, err := svc.ExportRoster(context.Background(), 3, "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
