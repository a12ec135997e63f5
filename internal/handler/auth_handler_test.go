package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oduyemi/preschool-api/internal/middleware"
	"github.com/oduyemi/preschool-api/internal/models"
	"github.com/oduyemi/preschool-api/internal/service"
	"github.com/oduyemi/preschool-api/pkg/config"
	"github.com/oduyemi/preschool-api/pkg/response"
)

func TestAuthHandlerMe(t *testing.T) {
	gin.SetMode(gin.TestMode)
	authService := service.NewAuthService(nil, nil, nil, config.JWTConfig{Secret: "test"}, nil, nil)
	handler := NewAuthHandler(authService, service.NewMetricsService())
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/auth/me", nil)
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{
		SubjectID: 4,
		Kind:      models.AccountStaff,
		Role:      models.RoleTeacher,
		Email:     "grace@preschool.io",
		Name:      "Grace",
	})

	handler.Me(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	user, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "grace@preschool.io", user["email"])
	assert.Equal(t, models.RoleTeacher, user["role"])
}

func TestAuthHandlerMeWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	authService := service.NewAuthService(nil, nil, nil, config.JWTConfig{Secret: "test"}, nil, nil)
	handler := NewAuthHandler(authService, service.NewMetricsService())
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/auth/me", nil)
	c.Request = req

	handler.Me(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerStaffLoginInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	authService := service.NewAuthService(nil, nil, nil, config.JWTConfig{Secret: "test"}, nil, nil)
	handler := NewAuthHandler(authService, service.NewMetricsService())
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/auth/staff/login", nil)
	c.Request = req

	handler.StaffLogin(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
