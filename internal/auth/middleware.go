package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	LoginPath = "/login"
	HomePath  = "/home"
)

// LoginRequired redirects anonymous requests to the login page.
// It MUST be used after SessionStore.Load.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAuthenticated(c) {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// AnonymousOnly redirects authenticated requests to the home page.
// Used by the login and register pages.
func AnonymousOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsAuthenticated(c) {
			c.Redirect(http.StatusFound, HomePath)
			c.Abort()
			return
		}
		c.Next()
	}
}
