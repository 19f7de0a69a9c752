package logctx

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ctxKey string

const (
	// LoggerKey stores the request-scoped *zap.SugaredLogger, in both
	// gin.Context and context.Context.
	LoggerKey ctxKey = "logger"
	// TraceIDKey stores the request trace id.
	TraceIDKey ctxKey = "traceID"
	// EmailKey stores the normalized customer email once known.
	EmailKey ctxKey = "email"
)

// FromGin returns a request-scoped logger from gin.Context if present,
// otherwise returns the provided base logger.
func FromGin(c *gin.Context, base *zap.SugaredLogger) *zap.SugaredLogger {
	if c == nil {
		return base
	}
	if l, ok := c.Get(string(LoggerKey)); ok {
		if lg, ok := l.(*zap.SugaredLogger); ok && lg != nil {
			return lg
		}
	}
	return FromCtx(c.Request.Context(), base)
}

// FromCtx returns a logger from context if set, otherwise attempts to enrich
// base with trace_id/email from context values.
func FromCtx(ctx context.Context, base *zap.SugaredLogger) *zap.SugaredLogger {
	if base == nil {
		base = zap.NewNop().Sugar()
	}
	if ctx == nil {
		return base
	}
	if lg, ok := ctx.Value(LoggerKey).(*zap.SugaredLogger); ok && lg != nil {
		return lg
	}
	var fields []interface{}
	if tid, ok := ctx.Value(TraceIDKey).(string); ok && tid != "" {
		fields = append(fields, "trace_id", tid)
	}
	if email, ok := ctx.Value(EmailKey).(string); ok && email != "" {
		fields = append(fields, "email", email)
	}
	if len(fields) > 0 {
		return base.With(fields...)
	}
	return base
}

// TraceID returns the trace id stored in ctx, if any.
func TraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	tid, _ := ctx.Value(TraceIDKey).(string)
	return tid
}

// WithEmail attaches the customer email to ctx and to the logger in ctx.
func WithEmail(ctx context.Context, email string) context.Context {
	ctx = context.WithValue(ctx, EmailKey, email)
	if lg, ok := ctx.Value(LoggerKey).(*zap.SugaredLogger); ok && lg != nil {
		ctx = context.WithValue(ctx, LoggerKey, lg.With("email", email))
	}
	return ctx
}
