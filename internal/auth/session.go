package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/logger"
)

const SessionCookieName = "sessionid"

// ActiveUserChecker reports whether the account behind a session may still use it.
// Unknown accounts are reported as inactive, not as an error.
type ActiveUserChecker interface {
	IsActiveUser(ctx context.Context, userID string) (bool, error)
}

// SessionStore issues, loads and ends cookie sessions backed by signed tokens.
type SessionStore struct {
	jwt     *JWTManager
	revoker Revoker
	users   ActiveUserChecker
	secure  bool
}

// NewSessionStore creates a SessionStore. secure marks the cookie Secure (production).
// A nil users skips the account check on load.
func NewSessionStore(jwtManager *JWTManager, revoker Revoker, users ActiveUserChecker, secure bool) *SessionStore {
	if revoker == nil {
		revoker = NewMemoryRevoker()
	}
	return &SessionStore{jwt: jwtManager, revoker: revoker, users: users, secure: secure}
}

// Start signs a token for the user and stores it in the session cookie.
func (s *SessionStore) Start(c *gin.Context, userID, username string) error {
	token, err := s.jwt.GenerateAccessToken(userID, username)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	s.setCookie(c, token, int(s.jwt.TTL().Seconds()))
	return nil
}

// End revokes the current token (best effort) and clears the cookie.
func (s *SessionStore) End(c *gin.Context) {
	defer s.setCookie(c, "", -1)

	token, err := c.Cookie(SessionCookieName)
	if err != nil || token == "" {
		return
	}
	claims, err := s.jwt.ParseAndValidate(token)
	if err != nil {
		return
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.revoker.Revoke(c.Request.Context(), claims.ID, ttl); err != nil {
		logger.FromGin(c).Warn("failed to revoke session", "error", err)
	}
}

// Load is a global middleware that attaches the identity of a valid session to the
// request. It never aborts; invalid or revoked cookies are cleared.
func (s *SessionStore) Load() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := s.jwt.ParseAndValidate(token)
		if err != nil {
			s.setCookie(c, "", -1)
			c.Next()
			return
		}

		revoked, err := s.revoker.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			// Treat an unreachable revocation store as "not revoked".
			logger.FromGin(c).Warn("failed to check session revocation", "error", err)
		}
		if revoked || !s.userActive(c, claims.Subject) {
			s.setCookie(c, "", -1)
			c.Next()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// userActive fails open like the revocation check: a lookup error keeps the session.
func (s *SessionStore) userActive(c *gin.Context, userID string) bool {
	if s.users == nil {
		return true
	}
	active, err := s.users.IsActiveUser(c.Request.Context(), userID)
	if err != nil {
		logger.FromGin(c).Warn("failed to check session user", "user_id", userID, "error", err)
		return true
	}
	return active
}

func (s *SessionStore) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, value, maxAge, "/", "", s.secure, true)
}
