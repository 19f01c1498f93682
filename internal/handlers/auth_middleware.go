package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hireloop/jobboard-service/internal/auth"
)

// SessionAuthMiddleware validates the session cookie on protected routes and
// attaches the authenticated user id to the request context.
type SessionAuthMiddleware struct {
	tokens *auth.TokenIssuer
}

func NewSessionAuthMiddleware(tokens *auth.TokenIssuer) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{tokens: tokens}
}

func (m *SessionAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(sessionCookieName)
		if err != nil || tokenString == "" {
			respondError(c, http.StatusUnauthorized, "User not authenticated")
			c.Abort()
			return
		}

		userID, err := m.tokens.Verify(tokenString)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid or expired session")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
