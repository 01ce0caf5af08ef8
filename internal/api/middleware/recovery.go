package middleware

import (
	"errors"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"strings"

	"leagueops/internal/logger"

	"github.com/gin-gonic/gin"
)

// Recovery converts handler panics into 500 responses. A panic caused by the
// client hanging up mid-write is not recoverable and gets no response body.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		if isClientGone(recovered) {
			log.Warn("connection dropped during %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
			c.Abort()
			return
		}

		log.Error("panic during %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		log.Debug("stack:\n%s", debug.Stack())
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}

func isClientGone(recovered interface{}) bool {
	ne, ok := recovered.(*net.OpError)
	if !ok {
		return false
	}
	var se *os.SyscallError
	if !errors.As(ne.Err, &se) {
		return false
	}
	msg := strings.ToLower(se.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
