package middleware

import (
  "time"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/manishchum/Lucid-Prototype/internal/logger"
)

type RequestLogMiddleware struct {
  log *logger.Logger
}

func NewRequestLogMiddleware(log *logger.Logger) *RequestLogMiddleware {
  middlewareLogger := log.With("Middleware", "RequestLogMiddleware")
  return &RequestLogMiddleware{log: middlewareLogger}
}

func (rl *RequestLogMiddleware) LogRequests() gin.HandlerFunc {
  return func(c *gin.Context) {
    requestID := uuid.New().String()
    c.Writer.Header().Set("X-Request-ID", requestID)

    start := time.Now()
    c.Next()

    rl.log.Info("Request completed",
      "request_id", requestID,
      "method", c.Request.Method,
      "path", c.Request.URL.Path,
      "status", c.Writer.Status(),
      "duration", time.Since(start).String(),
    )
  }
}
