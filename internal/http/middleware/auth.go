package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"agenda_backend/internal/service"
)

const (
	UserIDKey    = "user_id"
	SessionIDKey = "session_id"

	// AccessTokenCookie lets the server-rendered pages authenticate
	// without an Authorization header.
	AccessTokenCookie = "access_token"
)

// JWT authenticates the request from a Bearer header, or from the access
// token cookie when no header is present.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			token, _ = c.Cookie(AccessTokenCookie)
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		userID, sessionID, err := service.ParseJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
