package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// SessionKeyUsername holds the authenticated username in the session.
const SessionKeyUsername = "username"

// RequireSession rejects requests that do not carry an authenticated
// session. The username is placed in the request context for handlers
// further down the chain.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		username := session.Get(SessionKeyUsername)

		if username == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}

		c.Set(SessionKeyUsername, username)
		c.Next()
	}
}
