package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainerr "github.com/rafaelmeira/boatvest/internal/domain/error"
	"github.com/rafaelmeira/boatvest/internal/domain/port/gateway"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/api/dto"
)

// userIDKey is the gin context key holding the authenticated user id
const userIDKey = "auth_user_id"

// Auth validates the Bearer token and stores the user id in the request
// context. Requests without a valid token are rejected with 401.
func Auth(tokens gateway.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				domainerr.ErrorCode(domainerr.ErrInvalidToken), "Missing or malformed authorization header"))
			return
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				domainerr.ErrorCode(domainerr.ErrInvalidToken), "Invalid or expired token"))
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// AuthenticatedUserID returns the user id stored by the Auth middleware
func AuthenticatedUserID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint64)
	return userID, ok
}
