package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Account kinds distinguished in access tokens.
const (
	AccountStaff  = "staff"
	AccountParent = "parent"
)

// LoginRequest holds credentials for authenticating a caller.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token and caller info.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
	User        UserInfo  `json:"user"`
}

// UserInfo describes the authenticated caller in responses.
type UserInfo struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Kind  string `json:"kind"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	SubjectID int64  `json:"subject_id"`
	Kind      string `json:"kind"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	jwt.RegisteredClaims
}
