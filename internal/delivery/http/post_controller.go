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

type PostController struct {
	PostUsecase *usecase.PostUsecase
	Log         *zap.Logger
	Config      *koanf.Koanf
}

func NewPostController(postUsecase *usecase.PostUsecase, zap *zap.Logger, koanf *koanf.Koanf) *PostController {
	return &PostController{
		PostUsecase: postUsecase,
		Log:         zap,
		Config:      koanf,
	}
}

func (controller PostController) CreatePost(ctx *fiber.Ctx) error {
	var payload model.ClubPostCreateRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return sendInvalidBody(ctx)
	}

	response, err := controller.PostUsecase.CreatePost(ctx.UserContext(), currentUserId(ctx), ctx.Params("clubId"), payload)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendCreatedResponseWithData(ctx, response)
}

func (controller PostController) GetClubPosts(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", constant.DEFAULT_LIMIT)

	response, err := controller.PostUsecase.ListPosts(ctx.UserContext(), currentUserId(ctx), ctx.Params("clubId"), limit, ctx.Query("cursor"))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller PostController) LikePost(ctx *fiber.Ctx) error {
	err := controller.PostUsecase.LikePost(ctx.UserContext(), currentUserId(ctx), ctx.Params("postId"))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseNoData(ctx)
}

func (controller PostController) UnlikePost(ctx *fiber.Ctx) error {
	err := controller.PostUsecase.UnlikePost(ctx.UserContext(), currentUserId(ctx), ctx.Params("postId"))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseNoData(ctx)
}
