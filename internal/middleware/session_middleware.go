package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const SessionIDKey = "session_id"

// SessionMiddleware makes sure every request carries a session id cookie. The
// session itself is created lazily: no store writes happen until a handler
// sets an attribute.
func SessionMiddleware(cookieName string, ttlSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			secure := c.Request.TLS != nil
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, sessionID, ttlSeconds, "/", "", secure, true)
		}

		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

// SessionID returns the session id bound to the request.
func SessionID(c *gin.Context) string {
	if id, ok := c.Get(SessionIDKey); ok {
		if sid, ok := id.(string); ok {
			return sid
		}
	}
	return ""
}
