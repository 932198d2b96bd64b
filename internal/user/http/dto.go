package http

import (
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/form"
)

// LoginRequest is the payload of the login form.
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required,max=150"`
	Password string `form:"password" json:"password" binding:"required"`
}

// RegisterRequest is the payload of the registration form.
type RegisterRequest struct {
	Username        string `form:"username" json:"username" binding:"required,max=150"`
	Password        string `form:"password" json:"password" binding:"required"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password" binding:"required"`
}

// AuthPage is the view model of the login and register pages.
type AuthPage struct {
	Form *form.Form `json:"form"`
}

// NewLoginForm builds the login form. Passwords are never echoed back.
func NewLoginForm(req LoginRequest) *form.Form {
	return form.New(
		&form.Field{
			Name: "username", Label: "Username", Widget: form.TextInput, Value: req.Username,
			Attrs: map[string]string{"placeholder": "Username", "maxlength": "150"},
		},
		&form.Field{
			Name: "password", Label: "Password", Widget: form.PasswordInput,
			Attrs: map[string]string{"placeholder": "Password"},
		},
	)
}

// NewRegisterForm builds the registration form.
func NewRegisterForm(req RegisterRequest) *form.Form {
	return form.New(
		&form.Field{
			Name: "username", Label: "Username", Widget: form.TextInput, Value: req.Username,
			Attrs: map[string]string{"maxlength": "150"},
		},
		&form.Field{Name: "password", Label: "Password", Widget: form.PasswordInput},
		&form.Field{Name: "confirm_password", Label: "Confirm password", Widget: form.PasswordInput},
	)
}
