package middleware

import (
	"github.com/ferdian3456/clubconnect/internal/observability"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TraceLoggerMiddleware stores a logger carrying the request trace_id and
// span_id in fiber locals. It must run after otelfiber.
func TraceLoggerMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(loggerLocalKey, observability.WithContext(c.UserContext(), logger))

		return c.Next()
	}
}
