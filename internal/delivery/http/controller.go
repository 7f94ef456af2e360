package http

import (
	"errors"

	"github.com/ferdian3456/clubconnect/internal/constant"
	"github.com/ferdian3456/clubconnect/internal/middleware"
	"github.com/ferdian3456/clubconnect/internal/model"
	"github.com/ferdian3456/clubconnect/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserIdLocalKey is where the auth middleware stores the caller id.
const UserIdLocalKey = "userId"

// sendError answers a business outcome with its status, anything else with a logged 500.
func sendError(ctx *fiber.Ctx, log *zap.Logger, err error) error {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		return util.SendValidationErrorResponse(ctx, validationErr)
	}

	return util.SendErrorResponseInternalServer(ctx, middleware.GetLoggerFromContext(ctx, log), err)
}

func sendInvalidBody(ctx *fiber.Ctx) error {
	return util.SendErrorResponse(ctx, &model.ValidationError{
		Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
		Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
	})
}

func currentUserId(ctx *fiber.Ctx) uuid.UUID {
	userId, ok := ctx.Locals(UserIdLocalKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}

	return userId
}
