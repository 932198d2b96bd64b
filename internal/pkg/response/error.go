package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/logger"
)

const errorTemplate = "error.tmpl"

// ErrorResponse is the view model of the error page.
type ErrorResponse struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

// Error renders an error page with the status carried by err.
// Server errors are logged and shown as a generic message; their cause is never exposed.
func Error(c *gin.Context, err error) {
	status := apperror.StatusOf(err)
	var appErr *apperror.AppError
	if status < http.StatusInternalServerError && errors.As(err, &appErr) {
		Render(c, status, errorTemplate, ErrorResponse{Status: status, Error: appErr.Message})
		return
	}

	logger.FromGin(c).Error("request failed", "status", status, "error", err)
	_ = c.Error(err)
	Render(c, status, errorTemplate, ErrorResponse{
		Status: status,
		Error:  "internal server error",
	})
}

// NotFound renders the generic not-found page.
func NotFound(c *gin.Context) {
	Render(c, http.StatusNotFound, errorTemplate, ErrorResponse{Status: http.StatusNotFound, Error: "not found"})
}
