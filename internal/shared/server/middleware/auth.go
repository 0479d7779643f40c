package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mtb0903/manage-docs/internal/shared/auth"
)

const (
	userIDKey   = "userId"
	usernameKey = "username"

	// SessionCookie is the cookie carrying the signed session token.
	SessionCookie = "session"
)

// Auth resolves the session for protected routes. Unauthenticated requests
// are redirected to the login page with the original destination preserved.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		session, ok := resolveSession(c)
		if !ok {
			target := "/login?next=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}

		c.Set(userIDKey, session.UserID)
		c.Set(usernameKey, session.Username)
		c.Next()
	}
}

func resolveSession(c *gin.Context) (auth.Session, bool) {
	token := ""
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		token = cookie
	}
	if token == "" {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
		}
	}
	if token == "" {
		return auth.Session{}, false
	}

	session, err := auth.VerifySession(token)
	if err != nil {
		return auth.Session{}, false
	}
	return session, true
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) int64 {
	if c == nil {
		return 0
	}
	return c.GetInt64(userIDKey)
}

// UsernameFromContext fetches the username set by the auth middleware.
func UsernameFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(usernameKey)
}

// SafeNextPath returns next if it is a same-origin relative path, else "/".
// Anything carrying a scheme, host or network-path prefix is rejected so the
// post-login redirect cannot leave the site.
func SafeNextPath(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") {
		return "/"
	}
	if strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	parsed, err := url.Parse(next)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return "/"
	}
	return next
}
