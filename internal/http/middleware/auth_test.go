package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agenda_backend/internal/service"
)

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWT(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":    c.GetInt64(UserIDKey),
			"session_id": c.GetString(SessionIDKey),
		})
	})
	return r
}

func TestJWTMiddlewareNoToken(t *testing.T) {
	service.InitJWT("test-secret", 15*time.Minute)
	r := authTestRouter()

	req := httptest.NewRequest("GET", "/protected", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestJWTMiddlewareInvalidToken(t *testing.T) {
	service.InitJWT("test-secret", 15*time.Minute)
	r := authTestRouter()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestJWTMiddlewareBearerHeader(t *testing.T) {
	service.InitJWT("test-secret", 15*time.Minute)
	r := authTestRouter()

	token, err := service.GenerateJWT(42, "session-abc")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"user_id":42`)
	assert.Contains(t, rr.Body.String(), `"session_id":"session-abc"`)
}

func TestJWTMiddlewareCookieFallback(t *testing.T) {
	service.InitJWT("test-secret", 15*time.Minute)
	r := authTestRouter()

	token, err := service.GenerateJWT(7, "s")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"user_id":7`)
}

func TestJWTMiddlewareMalformedHeader(t *testing.T) {
	service.InitJWT("test-secret", 15*time.Minute)
	r := authTestRouter()

	token, err := service.GenerateJWT(1, "s")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token "+token)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
