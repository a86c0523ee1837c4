package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmarkou/arboretum/internal/pkg/session"
)

const (
	// SessionCookie is the cookie carrying the opaque session token
	SessionCookie = "session"

	identityKey = "identity"
	tokenKey    = "sessionToken"
)

// SessionMiddleware resolves the session token into an identity
type SessionMiddleware struct {
	sessions session.Store
}

// NewSessionMiddleware creates a new SessionMiddleware
func NewSessionMiddleware(sessions session.Store) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// Resolve reads the session token from the cookie or the Authorization
// header and, when it maps to a live session, stores the identity in the
// request context. It never aborts: every entry point multiplexes public
// and authenticated actions, so each handler decides whether an identity
// is required.
func (m *SessionMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		identity, err := m.sessions.Get(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(identityKey, *identity)
		c.Set(tokenKey, token)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}

// IdentityFrom returns the authenticated identity, if any
func IdentityFrom(c *gin.Context) (session.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return session.Identity{}, false
	}
	identity, ok := value.(session.Identity)
	return identity, ok
}

// TokenFrom returns the raw session token, if any
func TokenFrom(c *gin.Context) (string, bool) {
	value, exists := c.Get(tokenKey)
	if !exists {
		return "", false
	}
	token, ok := value.(string)
	return token, ok
}
