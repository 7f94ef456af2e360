package http

import (
	"github.com/ferdian3456/clubconnect/internal/model"
	"github.com/ferdian3456/clubconnect/internal/usecase"
	"github.com/ferdian3456/clubconnect/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type MessageController struct {
	MessageUsecase *usecase.MessageUsecase
	Log            *zap.Logger
	Config         *koanf.Koanf
}

func NewMessageController(messageUsecase *usecase.MessageUsecase, zap *zap.Logger, koanf *koanf.Koanf) *MessageController {
	return &MessageController{
		MessageUsecase: messageUsecase,
		Log:            zap,
		Config:         koanf,
	}
}

func (controller MessageController) MessageFounder(ctx *fiber.Ctx) error {
	var payload model.MessageCreateRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return sendInvalidBody(ctx)
	}

	response, err := controller.MessageUsecase.MessageFounder(ctx.UserContext(), currentUserId(ctx), ctx.Params("clubId"), payload)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendCreatedResponseWithData(ctx, response)
}

func (controller MessageController) GetClubChat(ctx *fiber.Ctx) error {
	response, err := controller.MessageUsecase.GetClubChat(ctx.UserContext(), currentUserId(ctx), ctx.Params("clubId"))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller MessageController) SendChatMessage(ctx *fiber.Ctx) error {
	var payload model.MessageCreateRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return sendInvalidBody(ctx)
	}

	response, err := controller.MessageUsecase.SendChatMessage(ctx.UserContext(), currentUserId(ctx), ctx.Params("clubId"), payload)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendCreatedResponseWithData(ctx, response)
}
