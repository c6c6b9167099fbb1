package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger пишет access-лог и тексты приватных ошибок, не ушедшие клиенту.
func Logger(l *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := l.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})

		for _, ginErr := range c.Errors {
			if ginErr.IsType(gin.ErrorTypePrivate) {
				entry = entry.WithError(ginErr.Err)
			}
		}

		if c.Writer.Status() >= 500 { //nolint:mnd
			entry.Error("request failed")
			return
		}
		entry.Info("request")
	}
}
