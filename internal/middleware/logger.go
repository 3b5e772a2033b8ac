package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rayysidd/mun/internal/constants"
	apierrors "github.com/rayysidd/mun/internal/errors"
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"
)

// RequestLogger tags every request with an ID and logs it once it completes.
// A client-supplied X-Request-ID is kept.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(constants.HeaderRequestID)
		if requestID == "" {
			requestID = ksuid.New().String()
		}
		c.Set(constants.ContextKeyRequestID, requestID)
		c.Header(constants.HeaderRequestID, requestID)

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}

		switch {
		case status >= 500:
			log.Error("http request", fields...)
		case status >= 400:
			log.Warn("http request", fields...)
		default:
			log.Info("http request", fields...)
		}
	}
}

// Recovery turns panics into a generic 500 and logs the panic value
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("request_id", c.GetString(constants.ContextKeyRequestID)),
			zap.String("path", c.Request.URL.Path),
		)
		apierrors.InternalError(c, "")
		c.Abort()
	})
}
