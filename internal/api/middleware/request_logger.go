package middleware

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/huffaz-portal/internal/utils"
)

// RequestLogger emits one entry per request. Errors recorded with c.Error are
// attached, with the AppError code and operation when present.
func RequestLogger(l *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header("X-Request-Id", reqID)
		c.Set("request_id", reqID)

		c.Next()

		lat := time.Since(start)
		status := c.Writer.Status()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		fields := logrus.Fields{
			"request_id": reqID,
			"method":     c.Request.Method,
			"path":       path,
			"status":     status,
			"latency_ms": lat.Milliseconds(),
			"ip":         c.ClientIP(),
		}
		if p, ok := PrincipalFrom(c); ok {
			fields["user_id"] = p.ID
			fields["role"] = p.Role
		}
		entry := l.WithFields(fields)

		if last := c.Errors.Last(); last != nil {
			var ae *utils.AppError
			if errors.As(last.Err, &ae) {
				entry = entry.WithFields(logrus.Fields{"error_code": ae.Code, "op": ae.Op})
			}
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}
