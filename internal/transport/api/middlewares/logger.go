package middlewares

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-ledger/internal/domain"
)

// Logger пишет по строке лога на каждый запрос. Нарушение инварианта журнала логируется как алерт со стеком.
func Logger(l *logrus.Logger) gin.HandlerFunc {
	entry := l.WithFields(logrus.Fields{
		"component": "http",
		"module":    "router",
	})
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := c.Writer.Status()
		e := entry.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    path,
			"status":  status,
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		})

		if len(c.Errors) > 0 {
			lastErr := c.Errors.Last().Err
			e = e.WithError(lastErr)

			var violation *domain.InvariantViolationError
			if errors.As(lastErr, &violation) {
				e.WithField("stack", violation.StackTrace()).Error("ALERT: ledger invariant violation")
				return
			}
		}

		switch {
		case status >= 500:
			e.Error("request failed")
		case status >= 400:
			e.Warn("request rejected")
		default:
			e.Info("request handled")
		}
	}
}
