package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rayysidd/mun/internal/auth"
	"github.com/rayysidd/mun/internal/constants"
	apierrors "github.com/rayysidd/mun/internal/errors"
)

// RequireAuth checks the bearer token and stores the user ID in the context
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, constants.BearerPrefix) {
			apierrors.Unauthorized(c, "No token, authorization denied")
			c.Abort()
			return
		}

		userID, err := tokens.Parse(strings.TrimSpace(strings.TrimPrefix(header, constants.BearerPrefix)))
		if err != nil {
			message := "Token is not valid"
			if errors.Is(err, auth.ErrTokenExpired) {
				message = "Token has expired"
			}
			apierrors.Unauthorized(c, message)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(constants.ContextKeyUserID)
	return userID, userID != ""
}
