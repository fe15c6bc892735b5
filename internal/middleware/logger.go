package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger returns a Gin middleware that logs each request using zap. Health
// probes log at debug so liveness polling stays out of the request log, and
// server errors are raised to warn.
func Logger(log *zap.Logger) gin.HandlerFunc {
	httpLog := log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		switch {
		case status >= http.StatusInternalServerError:
			httpLog.Warn("request", fields...)
		case strings.HasPrefix(path, "/health"):
			httpLog.Debug("request", fields...)
		default:
			httpLog.Info("request", fields...)
		}
	}
}
