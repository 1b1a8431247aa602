package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storekit/backend/internal/infrastructure/auth"
	"github.com/storekit/backend/internal/interfaces/http/dto"
)

// Context keys set by the auth middleware
const (
	ContextUserIDKey   = "auth_user_id"
	ContextUsernameKey = "auth_username"

	authHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
)

// Auth validates the access token on every request and stores the
// authenticated user's identity on the gin context. Every owned resource
// downstream is scoped by that user ID.
func Auth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authHeaderKey)
		if header == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, "Authorization header must use the Bearer scheme")
			return
		}

		claims, err := jwtService.ValidateAccessToken(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUsernameKey, claims.Username)
		c.Next()
	}
}

// UserID returns the authenticated user's ID from the gin context
func UserID(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(ContextUserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, message))
}
