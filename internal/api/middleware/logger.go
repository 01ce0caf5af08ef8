package middleware

import (
	"time"

	"leagueops/internal/logger"

	"github.com/gin-gonic/gin"
)

// Logger emits one access line per request through the shared logger, so
// request logs and application logs land on the same stream. Server errors
// log at error level, client errors at warn.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		switch {
		case status >= 500:
			log.Error("%s %s %d %s %s", c.Request.Method, path, status, latency, c.ClientIP())
		case status >= 400:
			log.Warn("%s %s %d %s %s", c.Request.Method, path, status, latency, c.ClientIP())
		default:
			log.Info("%s %s %d %s %s", c.Request.Method, path, status, latency, c.ClientIP())
		}
	}
}
