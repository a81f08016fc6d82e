package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	RequestIDHeader = "X-Request-ID"
	CtxRequestID    = "requestID"
	CtxLogger       = "logger"
)

// RequestLogger tags every request with an id (kept from the client when
// sent) and logs one line per request through log.
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)

		entry := log.WithField("request_id", id)
		c.Set(CtxRequestID, id)
		c.Set(CtxLogger, entry)

		c.Next()

		fields := logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.FullPath(),
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		}
		if uid, ok := c.Get(CtxUserID); ok {
			fields["user_id"] = uid
		}
		e := entry.WithFields(fields)
		switch {
		case len(c.Errors) > 0:
			e.WithField("errors", c.Errors.String()).Error("request failed")
		case c.Writer.Status() >= 500:
			e.Error("request")
		default:
			e.Info("request")
		}
	}
}

// Logger returns the request-scoped logger, or fallback outside a request.
func Logger(c *gin.Context, fallback logrus.FieldLogger) logrus.FieldLogger {
	if v, ok := c.Get(CtxLogger); ok {
		if l, ok := v.(logrus.FieldLogger); ok {
			return l
		}
	}
	return fallback
}
