package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		send   func(c *gin.Context)
		status int
		body   string
	}{
		{
			name:   "success",
			send:   func(c *gin.Context) { Success(c, gin.H{"id": "482-qzkt"}) },
			status: http.StatusOK,
			body:   `{"success":true,"data":{"id":"482-qzkt"}}`,
		},
		{
			name:   "bad request",
			send:   func(c *gin.Context) { BadRequest(c, "count must be an integer") },
			status: http.StatusBadRequest,
			body:   `{"success":false,"error":{"code":"BAD_REQUEST","message":"count must be an integer"}}`,
		},
		{
			name:   "not found",
			send:   func(c *gin.Context) { NotFound(c, "missing") },
			status: http.StatusNotFound,
			body:   `{"success":false,"error":{"code":"NOT_FOUND","message":"missing"}}`,
		},
		{
			name:   "internal",
			send:   func(c *gin.Context) { InternalError(c, "boom") },
			status: http.StatusInternalServerError,
			body:   `{"success":false,"error":{"code":"INTERNAL_ERROR","message":"boom"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			tt.send(c)

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestErrorAbortsChain(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	BadRequest(c, "nope")

	assert.True(t, c.IsAborted())
}
