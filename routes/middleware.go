package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/shreejanpandit/doc-appointment-api/authentication"
	"github.com/shreejanpandit/doc-appointment-api/logger"
)

// RequestLogger logs one entry per request once it has been served.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}
		if identity, ok := authentication.CurrentIdentity(c); ok {
			fields["user_id"] = identity.User.ID
		}

		entry := log.WithComponent("http").WithFields(fields)
		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("Request served")
		case status >= 400:
			entry.Warn("Request served")
		default:
			entry.Info("Request served")
		}
	}
}
