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

type mockProgramRepo struct {
	programs map[int64]models.Program
	created  *models.Program
	deleted  []int64
}

func (m *mockProgramRepo) List(ctx context.Context) ([]models.Program, error) {
	var list []models.Program
	for _, p := range m.programs {
		list = append(list, p)
	}
	return list, nil
}

func (m *mockProgramRepo) FindByID(ctx context.Context, id int64) (*models.Program, error) {
	if p, ok := m.programs[id]; ok {
		return &p, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockProgramRepo) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	for _, p := range m.programs {
		if p.ID != excludeID && strings.EqualFold(p.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockProgramRepo) Create(ctx context.Context, program *models.Program) error {
	program.ID = 1
	m.created = program
	return nil
}

func (m *mockProgramRepo) Update(ctx context.Context, program *models.Program) error {
	m.programs[program.ID] = *program
	return nil
}

func (m *mockProgramRepo) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func TestProgramServiceCreate(t *testing.T) {
	repo := &mockProgramRepo{}
	svc := NewProgramService(repo, validator.New(), zap.NewNop())

	program, err := svc.Create(context.Background(), CreateProgramRequest{Name: "Toddlers", Description: "Ages 1-3"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), program.ID)
	assert.Equal(t, "Toddlers", repo.created.Name)
}

func TestProgramServiceCreateDuplicateName(t *testing.T) {
	repo := &mockProgramRepo{programs: map[int64]models.Program{2: {ID: 2, Name: "Toddlers"}}}
	svc := NewProgramService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateProgramRequest{Name: "toddlers"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Nil(t, repo.created)
}

func TestProgramServiceUpdateKeepsOwnName(t *testing.T) {
	repo := &mockProgramRepo{programs: map[int64]models.Program{2: {ID: 2, Name: "Toddlers"}}}
	svc := NewProgramService(repo, validator.New(), zap.NewNop())

	program, err := svc.Update(context.Background(), 2, CreateProgramRequest{Name: "Toddlers", Description: "updated"})
	require.NoError(t, err)
	assert.Equal(t, "updated", program.Description)
}

func TestProgramServiceDelete(t *testing.T) {
	repo := &mockProgramRepo{programs: map[int64]models.Program{2: {ID: 2, Name: "Toddlers"}}}
	svc := NewProgramService(repo, validator.New(), zap.NewNop())

	prior, err := svc.Delete(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Toddlers", prior.Name)
	assert.Contains(t, repo.deleted, int64(2))
}

func TestProgramServiceGetNotFound(t *testing.T) {
	svc := NewProgramService(&mockProgramRepo{}, validator.New(), zap.NewNop())

	_, err := svc.Get(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
