package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/venue-booking-backend/internal/auth"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/flash"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/form"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/venue-booking-backend/internal/user"
)

const (
	loginTemplate    = "login.tmpl"
	registerTemplate = "register.tmpl"
)

type UserHandler struct {
	userService user.Service
	sessions    *auth.SessionStore
}

func NewHandler(userService user.Service, sessions *auth.SessionStore) *UserHandler {
	return &UserHandler{
		userService: userService,
		sessions:    sessions,
	}
}

// LoginPage renders an empty login form.
func (h *UserHandler) LoginPage(c *gin.Context) {
	response.Render(c, http.StatusOK, loginTemplate, AuthPage{Form: NewLoginForm(LoginRequest{})})
}

// Login authenticates the user and starts a session.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if errs := form.Bind(c, &req); !errs.Empty() {
		h.renderLogin(c, req, errs)
		return
	}

	u, err := h.userService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			errs := &form.Errors{}
			errs.AddNonField(user.ErrInvalidCredentials.Message)
			h.renderLogin(c, req, errs)
			return
		}
		response.Error(c, err)
		return
	}

	if err := h.sessions.Start(c, u.ID, u.Username); err != nil {
		response.Error(c, err)
		return
	}

	flash.Success(c, fmt.Sprintf("Welcome back, %s!", u.Username))
	c.Redirect(http.StatusFound, auth.HomePath)
}

// RegisterPage renders an empty registration form.
func (h *UserHandler) RegisterPage(c *gin.Context) {
	response.Render(c, http.StatusOK, registerTemplate, AuthPage{Form: NewRegisterForm(RegisterRequest{})})
}

// Register creates a new account. The user has to log in afterwards.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if errs := form.Bind(c, &req); !errs.Empty() {
		h.renderRegister(c, req, errs)
		return
	}

	_, err := h.userService.Register(c.Request.Context(), req.Username, req.Password, req.ConfirmPassword)
	if err != nil {
		errs := &form.Errors{}
		switch {
		case errors.Is(err, user.ErrUsernameTaken):
			errs.Add("username", user.ErrUsernameTaken.Message)
		case errors.Is(err, user.ErrPasswordMismatch):
			errs.AddNonField(user.ErrPasswordMismatch.Message)
		case errors.Is(err, user.ErrUsernameRequired):
			errs.Add("username", form.MsgRequired)
		case errors.Is(err, user.ErrPasswordRequired):
			errs.Add("password", form.MsgRequired)
		default:
			response.Error(c, err)
			return
		}
		h.renderRegister(c, req, errs)
		return
	}

	flash.Success(c, "Registration successful. Please log in.")
	c.Redirect(http.StatusFound, auth.LoginPath)
}

// Logout ends the current session.
func (h *UserHandler) Logout(c *gin.Context) {
	flash.Info(c, "You have been logged out.")
	h.sessions.End(c)
	c.Redirect(http.StatusFound, auth.LoginPath)
}

func (h *UserHandler) renderLogin(c *gin.Context, req LoginRequest, errs *form.Errors) {
	f := NewLoginForm(req).WithErrors(errs)
	response.Render(c, http.StatusBadRequest, loginTemplate, AuthPage{Form: f})
}

func (h *UserHandler) renderRegister(c *gin.Context, req RegisterRequest, errs *form.Errors) {
	f := NewRegisterForm(req).WithErrors(errs)
	response.Render(c, http.StatusBadRequest, registerTemplate, AuthPage{Form: f})
}
