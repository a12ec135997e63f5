package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oduyemi/preschool-api/internal/models"
	appErrors "github.com/oduyemi/preschool-api/pkg/errors"
)

type mockActivityRepo struct {
	activities map[int64]models.DailyActivity
	created    *models.DailyActivity
	lastFilter models.ActivityFilter
}

func (m *mockActivityRepo) Create(ctx context.Context, activity *models.DailyActivity) error {
	activity.ID = 1
	m.created = activity
	return nil
}

func (m *mockActivityRepo) FindByID(ctx context.Context, id int64) (*models.DailyActivity, error) {
	if a, ok := m.activities[id]; ok {
		return &a, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockActivityRepo) List(ctx context.Context, filter models.ActivityFilter) ([]models.DailyActivity, error) {
	m.lastFilter = filter
	var list []models.DailyActivity
	for _, a := range m.activities {
		if a.StudentID == filter.StudentID {
			list = append(list, a)
		}
	}
	return list, nil
}

func (m *mockActivityRepo) Delete(ctx context.Context, id int64) error {
	delete(m.activities, id)
	return nil
}

func newActivityService(repo *mockActivityRepo) *ActivityService {
	students := &mockStudentChecker{students: map[int64]*models.StudentDetail{7: {Student: models.Student{ID: 7, Name: "Ada"}}}}
	return NewActivityService(repo, students, validator.New(), zap.NewNop())
}

func TestActivityServiceCreate(t *testing.T) {
	repo := &mockActivityRepo{}
	svc := newActivityService(repo)

	activity, err := svc.Create(context.Background(), CreateActivityRequest{StudentID: 7, Date: "2026-03-10", Description: "Outdoor play"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), activity.Date)
	assert.Equal(t, "Outdoor play", repo.created.Description)
}

func TestActivityServiceCreateBadDate(t *testing.T) {
	svc := newActivityService(&mockActivityRepo{})

	_, err := svc.Create(context.Background(), CreateActivityRequest{StudentID: 7, Date: "10/03/2026", Description: "Outdoor play"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestActivityServiceCreateUnknownStudent(t *testing.T) {
	svc := newActivityService(&mockActivityRepo{})

	_, err := svc.Create(context.Background(), CreateActivityRequest{StudentID: 99, Date: "2026-03-10", Description: "Outdoor play"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestActivityServiceListRequiresStudent(t *testing.T) {
	svc := newActivityService(&mockActivityRepo{})

	_, err := svc.List(context.Background(), models.ActivityFilter{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestActivityServiceListInvertedRange(t *testing.T) {
	svc := newActivityService(&mockActivityRepo{})

	start := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.List(context.Background(), models.ActivityFilter{StudentID: 7, StartDate: &start, EndDate: &end})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestActivityServiceList(t *testing.T) {
	repo := &mockActivityRepo{activities: map[int64]models.DailyActivity{
		1: {ID: 1, StudentID: 7, Description: "Nap"},
	}}
	svc := newActivityService(repo)

	activities, err := svc.List(context.Background(), models.ActivityFilter{StudentID: 7})
	require.NoError(t, err)
	assert.Len(t, activities, 1)
	assert.Equal(t, int64(7), repo.lastFilter.StudentID)
}
