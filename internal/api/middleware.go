package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hillgate/server/internal/auth"
)

const (
	contextKeyUserID   = "userID"
	contextKeyUsername = "username"
	contextKeyIsAdmin  = "isAdmin"
	headerRequestID    = "X-Request-ID"
)

// RequestID attaches a request id to the context and the response so log
// lines can be correlated with client reports.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(headerRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

// RequireAuth validates the Bearer token and stores the staff identity in the
// request context. Unauthenticated requests are rejected.
func RequireAuth(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Code:    http.StatusUnauthorized,
				Message: "authorization header is required",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := authService.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Code:    http.StatusUnauthorized,
				Message: "invalid token",
			})
			return
		}

		c.Set(contextKeyUserID, claims.UserID)
		c.Set(contextKeyUsername, claims.Username)
		c.Set(contextKeyIsAdmin, claims.IsAdmin)
		c.Next()
	}
}
