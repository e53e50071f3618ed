// Package httpapi is the thin gin admin/dispatch HTTP surface over the
// scheduler engine, grounded on Terkea's backend/cmd/api-server/main.go —
// the same request/response shapes (gin.H envelopes, one handler per
// route) applied to this domain's operations instead of the teacher's
// tenant-scoped server CRUD.
package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mineplex-ops/fleet-scheduler/internal/logging"
)

const requestIDHeader = "X-Request-ID"

// requestID assigns (or propagates) a request ID, attaches it to the gin
// context and the request's context.Context so every log line emitted
// while handling the request carries it, and echoes it back on the
// response the way Terkea's handlers never did but its own logging
// package already expects (see logging.WithRequestID).
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		ctx := logging.WithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// accessLog logs one line per request, in the teacher's terse style —
// no per-field commentary, just method/path/status.
func accessLog(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Info(c.Request.Context(), "request handled",
			logging.String("method", c.Request.Method),
			logging.String("path", c.FullPath()),
			logging.Int("status", c.Writer.Status()),
		)
	}
}
