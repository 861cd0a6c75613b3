package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLiveness(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHealthHandler(nil, "test")
	r := gin.New()
	r.GET("/healthz", h.Liveness)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestFormatMB(t *testing.T) {
	assert.Equal(t, "1.00", formatMB(1024*1024))
	assert.Equal(t, "0.50", formatMB(512*1024))
	assert.Equal(t, "0.00", formatMB(0))
}
