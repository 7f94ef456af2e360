package exception

import (
	"errors"
	"fmt"

	"github.com/ferdian3456/clubconnect/internal/constant"
	"github.com/ferdian3456/clubconnect/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Recovery turns a panic in a handler into the internal server error envelope.
func Recovery(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			var errMsg string
			switch v := r.(type) {
			case error:
				errMsg = v.Error()
			case string:
				errMsg = v
			default:
				errMsg = fmt.Sprintf("%v", v)
			}

			middleware.GetLoggerFromContext(c, log).Error("panic occurred and recovered",
				zap.String("error", errMsg),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
			)

			err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fiber.Map{
					"code":    constant.ERR_INTERNAL_SERVER_ERROR_CODE,
					"message": constant.ERR_INTENRAL_SERVER_ERROR_MESSAGE,
				},
			})
		}()

		return c.Next()
	}
}

// ErrorHandler answers errors that escape handlers, such as fiber's own 404
// and 405, in the same envelope the controllers use.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errorCode := constant.ERR_INTERNAL_SERVER_ERROR_CODE
		message := constant.ERR_INTENRAL_SERVER_ERROR_MESSAGE

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
			switch code {
			case fiber.StatusNotFound:
				errorCode = constant.ERR_NOT_FOUND_ERROR
			case fiber.StatusInternalServerError:
			default:
				errorCode = constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE
			}
		}

		if code == fiber.StatusInternalServerError {
			middleware.GetLoggerFromContext(c, log).Error("unhandled error", zap.Error(err), zap.String("path", c.Path()))
		}

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    errorCode,
				"message": message,
			},
		})
	}
}
