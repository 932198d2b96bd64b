package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRevoker struct{}

func (failingRevoker) Revoke(context.Context, string, time.Duration) error {
	return errors.New("store down")
}

func (failingRevoker) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("store down")
}

func newTestRouter(store *SessionStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(store.Load())

	r.POST("/start", func(c *gin.Context) {
		if err := store.Start(c, "user-1", "alice"); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	r.POST("/end", func(c *gin.Context) {
		store.End(c)
		c.Status(http.StatusNoContent)
	})
	r.GET("/whoami", LoginRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c)+":"+GetUsername(c))
	})
	r.GET("/login", AnonymousOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func executeRequest(r http.Handler, method, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	return nil
}

func TestSessionStore(t *testing.T) {
	store := NewSessionStore(NewJWTManager("test-secret", time.Hour), NewMemoryRevoker(), nil, true)
	r := newTestRouter(store)

	t.Run("anonymous is redirected to login", func(t *testing.T) {
		w := executeRequest(r, http.MethodGet, "/whoami", nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, LoginPath, w.Header().Get("Location"))
	})

	w := executeRequest(r, http.MethodPost, "/start", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	cookie := sessionCookie(w)
	require.NotNil(t, cookie, "Start should set the session cookie")
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, int(time.Hour.Seconds()), cookie.MaxAge)

	t.Run("session identifies the user", func(t *testing.T) {
		w := executeRequest(r, http.MethodGet, "/whoami", cookie)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1:alice", w.Body.String())
	})

	t.Run("authenticated user skips login page", func(t *testing.T) {
		w := executeRequest(r, http.MethodGet, "/login", cookie)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, HomePath, w.Header().Get("Location"))
	})

	t.Run("ended session is revoked", func(t *testing.T) {
		w := executeRequest(r, http.MethodPost, "/end", cookie)
		require.Equal(t, http.StatusNoContent, w.Code)
		cleared := sessionCookie(w)
		require.NotNil(t, cleared)
		assert.Less(t, cleared.MaxAge, 0)

		// Replaying the old cookie no longer authenticates.
		w = executeRequest(r, http.MethodGet, "/whoami", cookie)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.NotNil(t, sessionCookie(w), "revoked cookie should be cleared")
	})

	t.Run("tampered cookie is cleared", func(t *testing.T) {
		w := executeRequest(r, http.MethodGet, "/whoami", &http.Cookie{Name: SessionCookieName, Value: "garbage"})
		assert.Equal(t, http.StatusFound, w.Code)
		cleared := sessionCookie(w)
		require.NotNil(t, cleared)
		assert.Less(t, cleared.MaxAge, 0)
	})
}

func TestSessionStore_RevokerUnavailable(t *testing.T) {
	store := NewSessionStore(NewJWTManager("test-secret", time.Hour), failingRevoker{}, nil, false)
	r := newTestRouter(store)

	cookie := sessionCookie(executeRequest(r, http.MethodPost, "/start", nil))
	require.NotNil(t, cookie)

	w := executeRequest(r, http.MethodGet, "/whoami", cookie)
	assert.Equal(t, http.StatusOK, w.Code, "an unreachable revocation store does not log users out")

	w = executeRequest(r, http.MethodPost, "/end", cookie)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotNil(t, sessionCookie(w), "cookie is cleared even when revocation fails")
}

type fakeUsers struct {
	active map[string]bool
	err    error
}

func (f fakeUsers) IsActiveUser(_ context.Context, userID string) (bool, error) {
	return f.active[userID], f.err
}

func TestSessionStore_AccountCheck(t *testing.T) {
	jwtManager := NewJWTManager("test-secret", time.Hour)

	t.Run("active account keeps its session", func(t *testing.T) {
		r := newTestRouter(NewSessionStore(jwtManager, nil, fakeUsers{active: map[string]bool{"user-1": true}}, false))
		cookie := sessionCookie(executeRequest(r, http.MethodPost, "/start", nil))
		require.NotNil(t, cookie)

		w := executeRequest(r, http.MethodGet, "/whoami", cookie)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("deactivated or deleted account is signed out", func(t *testing.T) {
		r := newTestRouter(NewSessionStore(jwtManager, nil, fakeUsers{active: map[string]bool{"user-1": false}}, false))
		cookie := sessionCookie(executeRequest(r, http.MethodPost, "/start", nil))
		require.NotNil(t, cookie)

		w := executeRequest(r, http.MethodGet, "/whoami", cookie)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, LoginPath, w.Header().Get("Location"))
		cleared := sessionCookie(w)
		require.NotNil(t, cleared)
		assert.Less(t, cleared.MaxAge, 0)
	})

	t.Run("lookup failure fails open", func(t *testing.T) {
		r := newTestRouter(NewSessionStore(jwtManager, nil, fakeUsers{err: errors.New("db down")}, false))
		cookie := sessionCookie(executeRequest(r, http.MethodPost, "/start", nil))
		require.NotNil(t, cookie)

		w := executeRequest(r, http.MethodGet, "/whoami", cookie)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestMemoryRevoker(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRevoker()

	require.NoError(t, r.Revoke(ctx, "a", time.Hour))
	require.NoError(t, r.Revoke(ctx, "b", time.Millisecond))
	require.NoError(t, r.Revoke(ctx, "c", 0))

	revoked, err := r.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, _ = r.IsRevoked(ctx, "c")
	assert.False(t, revoked, "zero ttl is already expired")

	time.Sleep(5 * time.Millisecond)
	revoked, _ = r.IsRevoked(ctx, "b")
	assert.False(t, revoked)

	// Expired entries are pruned on the next Revoke.
	require.NoError(t, r.Revoke(ctx, "d", time.Hour))
	assert.NotContains(t, r.revoked, "b")
}
