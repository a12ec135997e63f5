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

type mockScheduleRepo struct {
	schedules map[int64]models.Schedule
	created   *models.Schedule
	deleted   []int64
}

func (m *mockScheduleRepo) Create(ctx context.Context, schedule *models.Schedule) error {
	schedule.ID = 1
	m.created = schedule
	return nil
}

func (m *mockScheduleRepo) ListByStaff(ctx context.Context, staffID int64) ([]models.Schedule, error) {
	var list []models.Schedule
	for _, s := range m.schedules {
		if s.StaffID == staffID {
			list = append(list, s)
		}
	}
	return list, nil
}

func (m *mockScheduleRepo) FindByID(ctx context.Context, id int64) (*models.Schedule, error) {
	if s, ok := m.schedules[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockScheduleRepo) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type mockStaffChecker struct {
	staff map[int64]*models.StaffDetail
}

func (m *mockStaffChecker) FindByID(ctx context.Context, id int64) (*models.StaffDetail, error) {
	if s, ok := m.staff[id]; ok {
		return s, nil
	}
	return nil, sql.ErrNoRows
}

func newScheduleService(repo *mockScheduleRepo) *ScheduleService {
	staff := &mockStaffChecker{staff: map[int64]*models.StaffDetail{4: {Staff: models.Staff{ID: 4, Name: "Grace"}}}}
	return NewScheduleService(repo, staff, validator.New(), zap.NewNop())
}

func TestScheduleServiceCreate(t *testing.T) {
	repo := &mockScheduleRepo{}
	svc := newScheduleService(repo)

	schedule, err := svc.Create(context.Background(), CreateScheduleRequest{StaffID: 4, DayOfWeek: "monday", StartTime: "08:00", EndTime: "13:30"})
	require.NoError(t, err)
	assert.Equal(t, "monday", schedule.DayOfWeek)
	assert.True(t, repo.created.EndTime.After(repo.created.StartTime))
}

func TestScheduleServiceCreateEndBeforeStart(t *testing.T) {
	svc := newScheduleService(&mockScheduleRepo{})

	_, err := svc.Create(context.Background(), CreateScheduleRequest{StaffID: 4, DayOfWeek: "monday", StartTime: "13:30", EndTime: "08:00"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestScheduleServiceCreateBadTimeFormat(t *testing.T) {
	svc := newScheduleService(&mockScheduleRepo{})

	_, err := svc.Create(context.Background(), CreateScheduleRequest{StaffID: 4, DayOfWeek: "monday", StartTime: "8am", EndTime: "1pm"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestScheduleServiceCreateBadDay(t *testing.T) {
	svc := newScheduleService(&mockScheduleRepo{})

	_, err := svc.Create(context.Background(), CreateScheduleRequest{StaffID: 4, DayOfWeek: "funday", StartTime: "08:00", EndTime: "13:30"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestScheduleServiceCreateUnknownStaff(t *testing.T) {
	svc := newScheduleService(&mockScheduleRepo{})

	_, err := svc.Create(context.Background(), CreateScheduleRequest{StaffID: 99, DayOfWeek: "monday", StartTime: "08:00", EndTime: "13:30"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestScheduleServiceDeleteNotFound(t *testing.T) {
	svc := newScheduleService(&mockScheduleRepo{})

	_, err := svc.Delete(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
