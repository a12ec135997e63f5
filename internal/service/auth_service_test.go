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
	"golang.org/x/crypto/bcrypt"

	"github.com/oduyemi/preschool-api/internal/models"
	"github.com/oduyemi/preschool-api/pkg/config"
	appErrors "github.com/oduyemi/preschool-api/pkg/errors"
)

type mockStaffCredentials struct {
	staff map[string]*models.StaffDetail
}

func (m *mockStaffCredentials) FindByEmail(ctx context.Context, email string) (*models.StaffDetail, error) {
	if s, ok := m.staff[email]; ok {
		return s, nil
	}
	return nil, sql.ErrNoRows
}

type mockParentCredentials struct {
	parents map[string]*models.Parent
}

func (m *mockParentCredentials) FindByEmail(ctx context.Context, email string) (*models.Parent, error) {
	if p, ok := m.parents[email]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

type mockLoginLimiter struct {
	blocked  bool
	failures []string
	resets   []string
}

func (m *mockLoginLimiter) Allow(ctx context.Context, email string) (bool, error) {
	return !m.blocked, nil
}

func (m *mockLoginLimiter) RecordFailure(ctx context.Context, email string) error {
	m.failures = append(m.failures, email)
	return nil
}

func (m *mockLoginLimiter) Reset(ctx context.Context, email string) error {
	m.resets = append(m.resets, email)
	return nil
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newAuthService(t *testing.T, limiter *mockLoginLimiter) *AuthService {
	t.Helper()
	staff := &mockStaffCredentials{staff: map[string]*models.StaffDetail{
		"grace@preschool.io": {
			Staff:    models.Staff{ID: 4, Name: "Grace", Email: "grace@preschool.io", PasswordHash: hashPassword(t, "sup3rsecret")},
			RoleName: models.RoleTeacher,
		},
	}}
	parents := &mockParentCredentials{parents: map[string]*models.Parent{
		"dayo@example.com": {ID: 8, Name: "Dayo", Email: "dayo@example.com", PasswordHash: hashPassword(t, "parentpass")},
	}}
	cfg := config.JWTConfig{Secret: "test-secret", Expiration: time.Hour, Issuer: "preschool-api"}
	return NewAuthService(staff, parents, limiter, cfg, validator.New(), zap.NewNop())
}

func TestAuthServiceStaffLogin(t *testing.T) {
	limiter := &mockLoginLimiter{}
	svc := newAuthService(t, limiter)

	resp, err := svc.StaffLogin(context.Background(), models.LoginRequest{Email: "grace@preschool.io", Password: "sup3rsecret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, models.RoleTeacher, resp.User.Role)
	assert.Equal(t, models.AccountStaff, resp.User.Kind)
	assert.Contains(t, limiter.resets, "grace@preschool.io")
}

func TestAuthServiceStaffLoginWrongPassword(t *testing.T) {
	limiter := &mockLoginLimiter{}
	svc := newAuthService(t, limiter)

	_, err := svc.StaffLogin(context.Background(), models.LoginRequest{Email: "grace@preschool.io", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
	assert.Contains(t, limiter.failures, "grace@preschool.io")
}

func TestAuthServiceStaffLoginUnknownEmail(t *testing.T) {
	limiter := &mockLoginLimiter{}
	svc := newAuthService(t, limiter)

	_, err := svc.StaffLogin(context.Background(), models.LoginRequest{Email: "nobody@preschool.io", Password: "whatever"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceStaffLoginRateLimited(t *testing.T) {
	svc := newAuthService(t, &mockLoginLimiter{blocked: true})

	_, err := svc.StaffLogin(context.Background(), models.LoginRequest{Email: "grace@preschool.io", Password: "sup3rsecret"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrTooManyAttempts.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceParentLogin(t *testing.T) {
	svc := newAuthService(t, &mockLoginLimiter{})

	resp, err := svc.ParentLogin(context.Background(), models.LoginRequest{Email: "dayo@example.com", Password: "parentpass"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleParent, resp.User.Role)
	assert.Equal(t, models.AccountParent, resp.User.Kind)
}

func TestAuthServiceValidateToken(t *testing.T) {
	svc := newAuthService(t, &mockLoginLimiter{})

	resp, err := svc.StaffLogin(context.Background(), models.LoginRequest{Email: "grace@preschool.io", Password: "sup3rsecret"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(4), claims.SubjectID)
	assert.Equal(t, models.RoleTeacher, claims.Role)
	assert.Equal(t, "preschool-api", claims.Issuer)
}

func TestAuthServiceValidateTokenTampered(t *testing.T) {
	svc := newAuthService(t, &mockLoginLimiter{})

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceNilLimiter(t *testing.T) {
	svc := newAuthService(t, &mockLoginLimiter{})
	svc.limiter = nil

	_, err := svc.StaffLogin(context.Background(), models.LoginRequest{Email: "grace@preschool.io", Password: "sup3rsecret"})
	require.NoError(t, err)
}
