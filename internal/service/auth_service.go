package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/oduyemi/preschool-api/internal/models"
	"github.com/oduyemi/preschool-api/pkg/config"
	appErrors "github.com/oduyemi/preschool-api/pkg/errors"
)

type staffCredentialReader interface {
	FindByEmail(ctx context.Context, email string) (*models.StaffDetail, error)
}

type parentCredentialReader interface {
	FindByEmail(ctx context.Context, email string) (*models.Parent, error)
}

type loginLimiter interface {
	Allow(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService issues and validates access tokens for staff and parents.
type AuthService struct {
	staff     staffCredentialReader
	parents   parentCredentialReader
	limiter   loginLimiter
	cfg       config.JWTConfig
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService constructs the auth service.
func NewAuthService(staff staffCredentialReader, parents parentCredentialReader, limiter loginLimiter, cfg config.JWTConfig, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{staff: staff, parents: parents, limiter: limiter, cfg: cfg, validator: validate, logger: logger, now: time.Now}
}

func (s *AuthService) checkLimiter(ctx context.Context, email string) error {
	if s.limiter == nil {
		return nil
	}
	allowed, err := s.limiter.Allow(ctx, email)
	if err != nil {
		s.logger.Warn("login limiter unavailable", zap.Error(err))
		return nil
	}
	if !allowed {
		return appErrors.Clone(appErrors.ErrTooManyAttempts, "")
	}
	return nil
}

func (s *AuthService) noteFailure(ctx context.Context, email string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.logger.Warn("failed to record login attempt", zap.Error(err))
	}
}

func (s *AuthService) noteSuccess(ctx context.Context, email string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.Reset(ctx, email); err != nil {
		s.logger.Warn("failed to reset login attempts", zap.Error(err))
	}
}

// StaffLogin authenticates a staff member and issues an access token.
// The token carries the role resolved from the roles table.
func (s *AuthService) StaffLogin(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}
	if err := s.checkLimiter(ctx, req.Email); err != nil {
		return nil, err
	}
	staff, err := s.staff.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.noteFailure(ctx, req.Email)
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load staff")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.Password)); err != nil {
		s.noteFailure(ctx, req.Email)
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}
	s.noteSuccess(ctx, req.Email)
	user := models.UserInfo{
		ID:    staff.ID,
		Email: staff.Email,
		Name:  staff.Name,
		Role:  staff.RoleName,
		Kind:  models.AccountStaff,
	}
	return s.issueToken(user)
}

// ParentLogin authenticates a guardian account. Parents always carry the
// parent role.
func (s *AuthService) ParentLogin(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}
	if err := s.checkLimiter(ctx, req.Email); err != nil {
		return nil, err
	}
	parent, err := s.parents.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.noteFailure(ctx, req.Email)
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load parent")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(parent.PasswordHash), []byte(req.Password)); err != nil {
		s.noteFailure(ctx, req.Email)
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}
	s.noteSuccess(ctx, req.Email)
	user := models.UserInfo{
		ID:    parent.ID,
		Email: parent.Email,
		Name:  parent.Name,
		Role:  models.RoleParent,
		Kind:  models.AccountParent,
	}
	return s.issueToken(user)
}

func (s *AuthService) issueToken(user models.UserInfo) (*models.LoginResponse, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.Expiration)
	claims := models.JWTClaims{
		SubjectID: user.ID,
		Kind:      user.Kind,
		Role:      user.Role,
		Email:     user.Email,
		Name:      user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}
	return &models.LoginResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.cfg.Expiration.Seconds()),
		IssuedAt:    now,
		User:        user,
	}, nil
}

// ValidateToken parses a signed access token and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unexpected signing method")
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	return claims, nil
}
