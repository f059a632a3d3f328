package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"agentpacks-registry/pkg/log"
)

const HeaderRequestID = "X-Request-ID"

// RequestID accepts an incoming X-Request-ID or generates one, echoes it and
// attaches it to the request context for logging.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(log.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// AccessLog logs one line per request and records HTTP metrics.
func (m Middleware) AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		elapsed := time.Since(start)
		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.metrics.ObserveRequest(c.Request.Method, path, strconv.Itoa(status), elapsed)

		ctx := c.Request.Context()
		switch {
		case status >= 500:
			m.l.Errorf(ctx, "%s %s %d %s errors=%s", c.Request.Method, c.Request.URL.Path, status, elapsed, c.Errors.String())
		case status >= 400:
			m.l.Warnf(ctx, "%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, elapsed)
		default:
			m.l.Infof(ctx, "%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, elapsed)
		}
	}
}
