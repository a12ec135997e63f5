package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oduyemi/preschool-api/internal/models"
	"github.com/oduyemi/preschool-api/internal/service"
)

type activityRepoMock struct {
	lastFilter models.ActivityFilter
}

func (m *activityRepoMock) Create(ctx context.Context, activity *models.DailyActivity) error {
	activity.ID = 1
	return nil
}

func (m *activityRepoMock) FindByID(ctx context.Context, id int64) (*models.DailyActivity, error) {
	return &models.DailyActivity{ID: id, StudentID: 7}, nil
}

func (m *activityRepoMock) List(ctx context.Context, filter models.ActivityFilter) ([]models.DailyActivity, error) {
	m.lastFilter = filter
	return []models.DailyActivity{{ID: 1, StudentID: filter.StudentID}}, nil
}

func (m *activityRepoMock) Delete(ctx context.Context, id int64) error { return nil }

type studentCheckerMock struct{}

func (m *studentCheckerMock) FindByID(ctx context.Context, id int64) (*models.StudentDetail, error) {
	return &models.StudentDetail{Student: models.Student{ID: id}}, nil
}

func performActivityList(t *testing.T, repo *activityRepoMock, query string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handler := NewActivityHandler(service.NewActivityService(repo, &studentCheckerMock{}, nil, nil))
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/activities?"+query, nil)
	c.Request = req
	handler.List(c)
	return w
}

func TestActivityHandlerListDateRange(t *testing.T) {
	repo := &activityRepoMock{}
	w := performActivityList(t, repo, "studentId=7&start_date=2026-03-01&end_date=2026-03-31")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, int64(7), repo.lastFilter.StudentID)
	require.NotNil(t, repo.lastFilter.StartDate)
	require.NotNil(t, repo.lastFilter.EndDate)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *repo.lastFilter.StartDate)
	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), *repo.lastFilter.EndDate)
}

func TestActivityHandlerListBadStartDate(t *testing.T) {
	w := performActivityList(t, &activityRepoMock{}, "studentId=7&start_date=03/01/2026")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
