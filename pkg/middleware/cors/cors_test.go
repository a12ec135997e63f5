package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func performCORS(t *testing.T, origins []string, method, origin string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, "/programs", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	c.Request = req
	New(origins)(c)
	return w
}

func TestCORSEchoesAllowedOrigin(t *testing.T) {
	w := performCORS(t, []string{"https://app.preschool.io/"}, http.MethodGet, "https://app.preschool.io")
	assert.Equal(t, "https://app.preschool.io", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))
}

func TestCORSSkipsUnknownOrigin(t *testing.T) {
	w := performCORS(t, []string{"https://app.preschool.io"}, http.MethodGet, "https://evil.example")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	w := performCORS(t, nil, http.MethodOptions, "https://anywhere.example")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://anywhere.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSWildcardWithoutOrigin(t *testing.T) {
	w := performCORS(t, nil, http.MethodGet, "")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
