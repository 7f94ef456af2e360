package http

import (
	"github.com/ferdian3456/clubconnect/internal/model"
	"github.com/ferdian3456/clubconnect/internal/usecase"
	"github.com/ferdian3456/clubconnect/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type EventController struct {
	EventUsecase *usecase.EventUsecase
	Log          *zap.Logger
	Config       *koanf.Koanf
}

func NewEventController(eventUsecase *usecase.EventUsecase, zap *zap.Logger, koanf *koanf.Koanf) *EventController {
	return &EventController{
		EventUsecase: eventUsecase,
		Log:          zap,
		Config:       koanf,
	}
}

func (controller EventController) CreateEvent(ctx *fiber.Ctx) error {
	var payload model.EventCreateRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return sendInvalidBody(ctx)
	}

	response, err := controller.EventUsecase.CreateEvent(ctx.UserContext(), currentUserId(ctx), ctx.Params("clubId"), payload, nil)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendCreatedResponseWithData(ctx, response)
}

func (controller EventController) UpdateEventImage(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		fileHeader = nil
	}

	response, err := controller.EventUsecase.UpdateEventImage(ctx.UserContext(), currentUserId(ctx), ctx.Params("eventId"), fileHeader)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}
