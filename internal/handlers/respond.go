package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rayysidd/mun/internal/constants"
	apierrors "github.com/rayysidd/mun/internal/errors"
	"github.com/rayysidd/mun/internal/middleware"
	"go.uber.org/zap"
)

// respondError writes err to the client and logs it when it is internal.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	if apierrors.Respond(c, err) {
		log.Error("request failed",
			zap.Error(err),
			zap.String("request_id", c.GetString(constants.ContextKeyRequestID)),
			zap.String("route", c.FullPath()),
		)
	}
}

// requireUser returns the authenticated user ID or writes a 401.
func requireUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
	}
	return userID, ok
}
