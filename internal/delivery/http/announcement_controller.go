package http

import (
	"github.com/ferdian3456/clubconnect/internal/constant"
	"github.com/ferdian3456/clubconnect/internal/model"
	"github.com/ferdian3456/clubconnect/internal/usecase"
	"github.com/ferdian3456/clubconnect/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type AnnouncementController struct {
	AnnouncementUsecase *usecase.AnnouncementUsecase
	Log                 *zap.Logger
	Config              *koanf.Koanf
}

func NewAnnouncementController(announcementUsecase *usecase.AnnouncementUsecase, zap *zap.Logger, koanf *koanf.Koanf) *AnnouncementController {
	return &AnnouncementController{
		AnnouncementUsecase: announcementUsecase,
		Log:                 zap,
		Config:              koanf,
	}
}

func (controller AnnouncementController) CreateClubAnnouncement(ctx *fiber.Ctx) error {
	var payload model.AnnouncementCreateRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return sendInvalidBody(ctx)
	}

	response, err := controller.AnnouncementUsecase.CreateClubAnnouncement(ctx.UserContext(), currentUserId(ctx), ctx.Params("clubId"), payload)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendCreatedResponseWithData(ctx, response)
}

func (controller AnnouncementController) CreateGlobalAnnouncement(ctx *fiber.Ctx) error {
	var payload model.AnnouncementCreateRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return sendInvalidBody(ctx)
	}

	response, err := controller.AnnouncementUsecase.CreateGlobalAnnouncement(ctx.UserContext(), currentUserId(ctx), payload)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendCreatedResponseWithData(ctx, response)
}

func (controller AnnouncementController) DeleteAnnouncement(ctx *fiber.Ctx) error {
	response, err := controller.AnnouncementUsecase.DeleteAnnouncement(ctx.UserContext(), currentUserId(ctx), ctx.Params("announcementId"))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller AnnouncementController) GetGlobalAnnouncements(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", constant.DEFAULT_LIMIT)

	response, err := controller.AnnouncementUsecase.ListGlobalAnnouncements(ctx.UserContext(), limit)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}
