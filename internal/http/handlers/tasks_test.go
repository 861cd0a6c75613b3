package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"agenda_backend/internal/http/middleware"
)

// completeTaskRouter wires CompleteTask behind a stub auth layer. The bad
// request paths return before any repository call, so an empty Handler is
// enough.
func completeTaskRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{}
	r := gin.New()
	r.PATCH("/tasks/:id/complete", func(c *gin.Context) {
		c.Set(middleware.UserIDKey, int64(1))
	}, h.CompleteTask)
	return r
}

func TestCompleteTaskRejectsMalformedBody(t *testing.T) {
	r := completeTaskRouter()

	bodies := []string{
		`{"completed": "no"}`,
		`{"completed": 1}`,
		`{bad json`,
	}
	for _, body := range bodies {
		req := httptest.NewRequest(http.MethodPatch, "/tasks/5/complete", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "body %q", body)
		assert.Contains(t, rr.Body.String(), "invalid request body", "body %q", body)
	}
}

func TestCompleteTaskRejectsBadID(t *testing.T) {
	r := completeTaskRouter()

	req := httptest.NewRequest(http.MethodPatch, "/tasks/not-a-number/complete", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid task id")
}
