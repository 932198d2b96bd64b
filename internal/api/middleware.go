package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nekogravitycat/venue-booking-backend/internal/auth"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/logger"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/response"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger attaches a request-scoped logger carrying the request id and
// writes one entry per request once it completes.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		reqLog := log.With("request_id", requestID)
		logger.Attach(c, reqLog)

		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		}
		if userID := auth.GetUserID(c); userID != "" {
			fields = append(fields, "user_id", userID)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= http.StatusInternalServerError:
			reqLog.Error("request completed", fields...)
		case status >= http.StatusBadRequest:
			reqLog.Warn("request completed", fields...)
		default:
			reqLog.Info("request completed", fields...)
		}
	}
}

// Recovery turns a panic into a logged 500 page.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.FromGin(c).Error("panic recovered", "panic", recovered)
		response.Render(c, http.StatusInternalServerError, "error.tmpl", response.ErrorResponse{
			Status: http.StatusInternalServerError,
			Error:  "internal server error",
		})
		c.Abort()
	})
}
