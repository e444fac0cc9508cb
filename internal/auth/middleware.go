package auth

import (
	dom "blogapp/internal/domain"
	"blogapp/internal/repo"

	"github.com/gin-gonic/gin"
)

// CookieName is the session cookie set on login and signup.
const CookieName = "session_id"

const contextKeyUser = "current_user"

// UserFromContext returns the user set by WithUser. ok is false for
// anonymous requests.
func UserFromContext(c *gin.Context) (dom.User, bool) {
	v, ok := c.Get(contextKeyUser)
	if !ok {
		return dom.User{}, false
	}
	u, ok := v.(dom.User)
	return u, ok
}

// WithUser resolves the session cookie to a User and stores it in the
// request context. A missing or stale cookie is not an error: the
// request simply proceeds anonymous, and each page decides whether to
// redirect. An unreadable user row also falls through to anonymous.
func WithUser(sessions Sessions, users repo.UserRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}
		userID, ok := sessions.GetUserID(c.Request.Context(), token)
		if !ok {
			c.Next()
			return
		}
		u, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.Next()
			return
		}
		c.Set(contextKeyUser, u)
		c.Next()
	}
}
