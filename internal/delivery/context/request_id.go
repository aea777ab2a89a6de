// Package context carries per-request values between echo handlers and the layers below them.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is the header that carries the request id in both directions.
const HeaderXRequestID = "X-Request-Id"

// echo.Context key
const echoKeyRequestID = "request_id"

type ctxKey int

const ctxKeyLogger ctxKey = 0

// GetRequestID returns the id assigned by the request id middleware, or "" outside of it.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(echoKeyRequestID).(string); ok {
		return id
	}

	return ""
}

// SetRequestID stores the request id on the echo context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoKeyRequestID, requestID)
}

// GetLoggerOrDefault returns the request-scoped logger, falling back to fallback when ctx has none.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(ctxKeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKeyLogger, logger)
}
