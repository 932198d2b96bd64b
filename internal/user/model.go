package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/apperror"
)

const MaxUsernameLength = 150

var (
	ErrNotFound           = apperror.NotFound("user not found")
	ErrUsernameTaken      = apperror.Conflict("Username is already taken.")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "Invalid username or password.")
	ErrPasswordMismatch   = apperror.New(http.StatusBadRequest, "Passwords do not match.")
	ErrUsernameRequired   = errors.New("username is required")
	ErrPasswordRequired   = errors.New("password is required")
)

// User represents an account that can book venues.
type User struct {
	ID           string // UUID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	IsActive     bool
}
