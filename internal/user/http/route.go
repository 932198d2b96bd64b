package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the login, register and logout pages.
func RegisterRoutes(r gin.IRouter, h *UserHandler, loginRequired, anonymousOnly gin.HandlerFunc) {
	r.GET("/login", anonymousOnly, h.LoginPage)
	r.POST("/login", anonymousOnly, h.Login)
	r.GET("/register", anonymousOnly, h.RegisterPage)
	r.POST("/register", anonymousOnly, h.Register)

	r.GET("/logout", loginRequired, h.Logout)
	r.POST("/logout", loginRequired, h.Logout)
}
