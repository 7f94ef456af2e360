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

type ClubController struct {
	ClubUsecase *usecase.ClubUsecase
	Log         *zap.Logger
	Config      *koanf.Koanf
}

func NewClubController(clubUsecase *usecase.ClubUsecase, zap *zap.Logger, koanf *koanf.Koanf) *ClubController {
	return &ClubController{
		ClubUsecase: clubUsecase,
		Log:         zap,
		Config:      koanf,
	}
}

func (controller ClubController) CreateClub(ctx *fiber.Ctx) error {
	var payload model.ClubCreateRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return sendInvalidBody(ctx)
	}

	response, err := controller.ClubUsecase.CreateClub(ctx.UserContext(), currentUserId(ctx), payload)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendCreatedResponseWithData(ctx, response)
}

func (controller ClubController) AssignFounder(ctx *fiber.Ctx) error {
	var payload model.ClubAssignFounderRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return sendInvalidBody(ctx)
	}

	response, err := controller.ClubUsecase.AssignFounder(ctx.UserContext(), currentUserId(ctx), ctx.Params("clubId"), payload)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller ClubController) GetFounderCandidates(ctx *fiber.Ctx) error {
	response, err := controller.ClubUsecase.ListFounderCandidates(ctx.UserContext(), currentUserId(ctx), ctx.Params("clubId"), ctx.Query("q"))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller ClubController) GetClubs(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", constant.DEFAULT_LIMIT)

	response, err := controller.ClubUsecase.ListClubs(ctx.UserContext(), limit, ctx.Query("cursor"))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller ClubController) SearchClubs(ctx *fiber.Ctx) error {
	response, err := controller.ClubUsecase.SearchClubs(ctx.UserContext(), ctx.Query("q"))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller ClubController) GetClub(ctx *fiber.Ctx) error {
	response, err := controller.ClubUsecase.GetClubDetail(ctx.UserContext(), currentUserId(ctx), ctx.Params("clubId"))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller ClubController) UpdateClub(ctx *fiber.Ctx) error {
	var payload model.ClubUpdateRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return sendInvalidBody(ctx)
	}

	response, err := controller.ClubUsecase.EditClub(ctx.UserContext(), currentUserId(ctx), ctx.Params("clubId"), payload)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller ClubController) UpdateClubLogo(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("logo")
	if err != nil {
		fileHeader = nil
	}

	response, err := controller.ClubUsecase.UpdateClubLogo(ctx.UserContext(), currentUserId(ctx), ctx.Params("clubId"), fileHeader)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}
