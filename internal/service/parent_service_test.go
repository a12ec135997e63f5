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

type mockParentRepo struct {
	parents map[int64]models.Parent
	emails  map[string]bool
	created *models.Parent
	deleted []int64
}

func (m *mockParentRepo) List(ctx context.Context) ([]models.Parent, error) {
	var list []models.Parent
	for _, p := range m.parents {
		list = append(list, p)
	}
	return list, nil
}

func (m *mockParentRepo) FindByID(ctx context.Context, id int64) (*models.Parent, error) {
	if p, ok := m.parents[id]; ok {
		return &p, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockParentRepo) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	return m.emails[email], nil
}

func (m *mockParentRepo) Create(ctx context.Context, parent *models.Parent) error {
	parent.ID = 8
	m.created = parent
	return nil
}

func (m *mockParentRepo) Update(ctx context.Context, parent *models.Parent) error {
	if m.parents == nil {
		m.parents = make(map[int64]models.Parent)
	}
	m.parents[parent.ID] = *parent
	return nil
}

func (m *mockParentRepo) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func newParentService(repo *mockParentRepo) *ParentService {
	genders := &mockGenderReader{genders: map[int64]*models.Gender{1: {ID: 1, Name: "Male"}}}
	return NewParentService(repo, genders, validator.New(), zap.NewNop())
}

func validParentRequest() RegisterParentRequest {
	return RegisterParentRequest{
		Name:     "Dayo",
		Age:      34,
		GenderID: 1,
		Email:    "dayo@example.com",
		Password: "parentpass",
	}
}

func TestParentServiceRegister(t *testing.T) {
	repo := &mockParentRepo{}
	svc := newParentService(repo)

	parent, err := svc.Register(context.Background(), validParentRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(8), parent.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte("parentpass")))
}

func TestParentServiceRegisterTooYoung(t *testing.T) {
	repo := &mockParentRepo{}
	svc := newParentService(repo)

	req := validParentRequest()
	req.Age = models.MinStaffAge - 1
	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Nil(t, repo.created)
}

func TestParentServiceRegisterDuplicateEmail(t *testing.T) {
	repo := &mockParentRepo{emails: map[string]bool{"dayo@example.com": true}}
	svc := newParentService(repo)

	_, err := svc.Register(context.Background(), validParentRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestParentServiceRegisterShortPassword(t *testing.T) {
	svc := newParentService(&mockParentRepo{})

	req := validParentRequest()
	req.Password = "short"
	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestParentServiceUpdate(t *testing.T) {
	repo := &mockParentRepo{parents: map[int64]models.Parent{8: {ID: 8, Name: "Dayo", Email: "dayo@example.com"}}}
	svc := newParentService(repo)

	parent, err := svc.Update(context.Background(), 8, UpdateParentRequest{Name: "Dayo A.", Age: 35, GenderID: 1, Email: "dayo@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Dayo A.", parent.Name)
	assert.Equal(t, "Dayo A.", repo.parents[8].Name)
}

func TestParentServiceDeleteNotFound(t *testing.T) {
	svc := newParentService(&mockParentRepo{})

	_, err := svc.Delete(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
