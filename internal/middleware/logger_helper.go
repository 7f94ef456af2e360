package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const loggerLocalKey = "logger"

// GetLoggerFromContext returns the trace aware logger stored by
// TraceLoggerMiddleware, or fallback when the request did not pass through it.
func GetLoggerFromContext(c *fiber.Ctx, fallback *zap.Logger) *zap.Logger {
	if logger, ok := c.Locals(loggerLocalKey).(*zap.Logger); ok && logger != nil {
		return logger
	}

	if fallback != nil {
		return fallback
	}

	return zap.NewNop()
}
