// SPDX-License-Identifier: MIT
package logging

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the request id
const RequestIDKey = "request_id"

// Middleware logs one line per request after the handler chain has run
func Middleware(l *Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		keyvals := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		}
		if id := c.GetString(RequestIDKey); id != "" {
			keyvals = append(keyvals, "request_id", id)
		}

		switch {
		case len(c.Errors) > 0:
			l.Error("request failed", c.Errors.Last(), keyvals...)
		case status >= 500:
			l.Warn("request", keyvals...)
		default:
			l.Info("request", keyvals...)
		}
	}
}

// FromContext returns l tagged with the request id, when there is one
func FromContext(c *gin.Context, l *Logger) *Logger {
	if id := c.GetString(RequestIDKey); id != "" {
		return l.With("request_id", id)
	}
	return l
}
