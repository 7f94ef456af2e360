package http

import (
	"errors"

	"github.com/ferdian3456/clubconnect/internal/constant"
	"github.com/ferdian3456/clubconnect/internal/middleware"
	"github.com/ferdian3456/clubconnect/internal/model"
	"github.com/ferdian3456/clubconnect/internal/usecase"
	"github.com/ferdian3456/clubconnect/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type UserController struct {
	UserUsecase       *usecase.UserUsecase
	MembershipUsecase *usecase.MembershipUsecase
	MessageUsecase    *usecase.MessageUsecase
	Log               *zap.Logger
	Config            *koanf.Koanf
}

func NewUserController(userUsecase *usecase.UserUsecase, membershipUsecase *usecase.MembershipUsecase, messageUsecase *usecase.MessageUsecase, zap *zap.Logger, koanf *koanf.Koanf) *UserController {
	return &UserController{
		UserUsecase:       userUsecase,
		MembershipUsecase: membershipUsecase,
		MessageUsecase:    messageUsecase,
		Log:               zap,
		Config:            koanf,
	}
}

func (controller UserController) Register(ctx *fiber.Ctx) error {
	var payload model.UserRegisterRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return sendInvalidBody(ctx)
	}

	response, err := controller.UserUsecase.Register(ctx.UserContext(), payload)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendCreatedResponseWithData(ctx, response)
}

func (controller UserController) Login(ctx *fiber.Ctx) error {
	var payload model.UserLoginRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, &model.ValidationError{
			Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
			Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
		})
	}

	var validationErr *model.ValidationError

	response, err := controller.UserUsecase.Login(ctx.UserContext(), payload)
	if err != nil {
		if errors.As(err, &validationErr) {
			return util.SendValidationErrorResponse(ctx, validationErr)
		}

		return util.SendErrorResponseInternalServer(ctx, middleware.GetLoggerFromContext(ctx, controller.Log), err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller UserController) GetMe(ctx *fiber.Ctx) error {
	response, err := controller.UserUsecase.GetMe(ctx.UserContext(), currentUserId(ctx))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller UserController) Logout(ctx *fiber.Ctx) error {
	err := controller.UserUsecase.Logout(ctx.UserContext(), currentUserId(ctx))
	if err != nil {
		return util.SendErrorResponseInternalServer(ctx, middleware.GetLoggerFromContext(ctx, controller.Log), err)
	}

	return util.SendSuccessResponseNoData(ctx)
}

func (controller UserController) GetMyMemberships(ctx *fiber.Ctx) error {
	response, err := controller.MembershipUsecase.ListMyMemberships(ctx.UserContext(), currentUserId(ctx))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller UserController) GetInbox(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", constant.DEFAULT_LIMIT)

	response, err := controller.MessageUsecase.ListInbox(ctx.UserContext(), currentUserId(ctx), limit)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller UserController) MarkMessageRead(ctx *fiber.Ctx) error {
	err := controller.MessageUsecase.MarkMessageRead(ctx.UserContext(), currentUserId(ctx), ctx.Params("messageId"))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseNoData(ctx)
}
