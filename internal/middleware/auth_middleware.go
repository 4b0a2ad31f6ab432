package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vesta-storefront/internal/session"
	"vesta-storefront/pkg/logger"
)

const IdentityKey = "identity"

// RequireAuth loads the session identity and redirects to the landing page
// when there is no token, matching the original navigation flow.
func RequireAuth(sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := SessionID(c)

		identity, err := session.LoadIdentity(c.Request.Context(), sessions, sid)
		if err != nil {
			logger.Error(err, "Failed to load session identity", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		if identity.Token == "" {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// RequireAdmin allows only sessions with the ADMIN role past. Must run after
// RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok || !identity.IsAdmin() {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the identity placed in the context by RequireAuth.
func CurrentIdentity(c *gin.Context) (session.Identity, bool) {
	value, exists := c.Get(IdentityKey)
	if !exists {
		return session.Identity{}, false
	}
	identity, ok := value.(session.Identity)
	return identity, ok
}
