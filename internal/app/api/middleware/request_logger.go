package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/logctx"
)

// RequestLoggerMiddleware attaches a request-scoped logger enriched with
// trace_id to gin.Context and the request context.
func RequestLoggerMiddleware(base *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := logctx.TraceID(c.Request.Context())

		reqLogger := base
		if traceID != "" {
			reqLogger = base.With("trace_id", traceID)
			c.Writer.Header().Set(RequestIDHeader, traceID)
		}
		c.Set(string(logctx.LoggerKey), reqLogger)

		ctx := context.WithValue(c.Request.Context(), logctx.LoggerKey, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
