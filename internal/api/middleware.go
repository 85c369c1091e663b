package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"pomofocus/internal/auth"
	"pomofocus/internal/errors"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// requestID tags every request with an id, reusing the caller's when given
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := s.logger.WithFields(log.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"user_id":    auth.UserIDFromContext(c),
			"request_id": c.GetString(requestIDKey),
		})
		switch {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Info("request rejected")
		default:
			entry.Debug("request served")
		}
	}
}

func (s *Server) recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		s.writeError(c, fmt.Errorf("panic: %v", recovered))
	})
}

// writeError answers with {"error": message, "code": CODE}. Only system
// faults are logged; caller mistakes are visible in the request log.
func (s *Server) writeError(c *gin.Context, err error) {
	if errors.ShouldLogError(err) {
		s.logger.WithError(err).WithFields(log.Fields{
			"path":       c.Request.URL.Path,
			"user_id":    auth.UserIDFromContext(c),
			"request_id": c.GetString(requestIDKey),
		}).Error("request error")
	}
	c.AbortWithStatusJSON(errors.GetHTTPStatus(err), gin.H{
		"error": errors.GetUserMessage(err),
		"code":  errors.GetErrorCode(err),
	})
}

// bindJSON decodes the body into dst, answering 400 on malformed input
func (s *Server) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		s.writeError(c, errors.NewBadRequestError("Invalid JSON body."))
		return false
	}
	return true
}

// userID is the authenticated caller. Only valid behind RequireAuth.
func userID(c *gin.Context) string {
	return auth.UserIDFromContext(c)
}

func message(text string) gin.H {
	return gin.H{"message": text}
}
