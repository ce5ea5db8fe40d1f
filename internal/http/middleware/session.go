package middleware

import (
	"context"
	"net/http"
	"time"

	"kanban/internal/domain"
	"kanban/internal/logger"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie  = "session"
	contextUserKey = "user"

	landingPath = "/kanban"
)

// SessionParser turns a session cookie value into a user id.
type SessionParser interface {
	Parse(token string) (int64, error)
}

// UserResolver loads the user a session points at.
type UserResolver interface {
	CurrentUser(ctx context.Context, id int64) (*domain.User, error)
}

// LoadUser resolves the session cookie once per request and stores the
// user in the gin context. Bad or stale sessions are treated as anonymous.
func LoadUser(sessions SessionParser, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		userID, err := sessions.Parse(token)
		if err != nil {
			c.Next()
			return
		}

		user, err := users.CurrentUser(c.Request.Context(), userID)
		if err != nil {
			logger.WithContext(c.Request.Context()).Debug("session user not loaded", "user_id", userID, "error", err)
			c.Next()
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// LoginRequired sends anonymous visitors to the landing page.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.Redirect(http.StatusFound, landingPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user loaded by LoadUser, if any.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok && u != nil
}

// SetSession writes the session cookie.
func SetSession(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(ttl.Seconds()), "/", "", secure, true)
}

// ClearSession expires the session cookie.
func ClearSession(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}
