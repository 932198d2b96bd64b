package auth

import "github.com/gin-gonic/gin"

const (
	userIDKey   = "userID"
	usernameKey = "username"
)

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	return getString(c, userIDKey)
}

// GetUsername returns the authenticated user's username or empty string.
func GetUsername(c *gin.Context) string {
	return getString(c, usernameKey)
}

// IsAuthenticated reports whether a valid session was loaded for this request.
func IsAuthenticated(c *gin.Context) bool {
	return GetUserID(c) != ""
}

func setIdentity(c *gin.Context, claims *Claims) {
	c.Set(userIDKey, claims.Subject)
	c.Set(usernameKey, claims.Username)
}

func getString(c *gin.Context, key string) string {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
