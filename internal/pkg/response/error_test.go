package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/apperror"
)

func renderError(t *testing.T, err error) (int, ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Accept", gin.MIMEJSON)

	Error(c, err)

	var doc struct {
		Data ErrorResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc), w.Body.String())
	return w.Code, doc.Data
}

func TestError(t *testing.T) {
	t.Run("client error shows its message", func(t *testing.T) {
		code, body := renderError(t, fmt.Errorf("pay: %w", apperror.Conflict("invalid booking status transition")))
		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, ErrorResponse{Status: http.StatusConflict, Error: "invalid booking status transition"}, body)
	})

	t.Run("unknown error is a generic 500", func(t *testing.T) {
		code, body := renderError(t, errors.New("connection reset by peer"))
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, "internal server error", body.Error)
	})

	t.Run("server AppError hides its message", func(t *testing.T) {
		code, body := renderError(t, apperror.New(http.StatusServiceUnavailable, "broker dsn amqp://secret"))
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "internal server error", body.Error)
	})
}

func TestNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Accept", gin.MIMEJSON)

	NotFound(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"not found"`)
}
