package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRateLimitRouter(t *testing.T, max int, window time.Duration) *gin.Engine {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	InitRedisRateLimiter(mr.Addr(), "", 0)
	t.Cleanup(func() { redisClient = nil })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/test", RedisRateLimit(max, window), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doGet(r *gin.Engine) int {
	req := httptest.NewRequest("GET", "/test", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr.Code
}

func TestRedisRateLimitBlocksOverLimit(t *testing.T) {
	r := setupRateLimitRouter(t, 2, time.Minute)

	assert.Equal(t, http.StatusOK, doGet(r))
	assert.Equal(t, http.StatusOK, doGet(r))
	assert.Equal(t, http.StatusTooManyRequests, doGet(r))
}

func TestRedisRateLimitFailOpenWithoutRedis(t *testing.T) {
	redisClient = nil

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/test", RedisRateLimit(1, time.Minute), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doGet(r))
	}
}

func TestRedisRateLimitSeparateWindows(t *testing.T) {
	// different window sizes use different keys, so limits do not leak
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	InitRedisRateLimiter(mr.Addr(), "", 0)
	t.Cleanup(func() { redisClient = nil })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/a", RedisRateLimit(1, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/b", RedisRateLimit(1, time.Hour), func(c *gin.Context) { c.Status(http.StatusOK) })

	get := func(path string) int {
		req := httptest.NewRequest("GET", path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, get("/a"))
	assert.Equal(t, http.StatusTooManyRequests, get("/a"))
	assert.Equal(t, http.StatusOK, get("/b"))
}
