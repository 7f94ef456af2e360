package http

import (
	"github.com/ferdian3456/clubconnect/internal/usecase"
	"github.com/ferdian3456/clubconnect/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type MembershipController struct {
	MembershipUsecase *usecase.MembershipUsecase
	Log               *zap.Logger
	Config            *koanf.Koanf
}

func NewMembershipController(membershipUsecase *usecase.MembershipUsecase, zap *zap.Logger, koanf *koanf.Koanf) *MembershipController {
	return &MembershipController{
		MembershipUsecase: membershipUsecase,
		Log:               zap,
		Config:            koanf,
	}
}

func (controller MembershipController) RequestMembership(ctx *fiber.Ctx) error {
	response, err := controller.MembershipUsecase.RequestMembership(ctx.UserContext(), currentUserId(ctx), ctx.Params("clubId"))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendCreatedResponseWithData(ctx, response)
}

func (controller MembershipController) ApproveMembership(ctx *fiber.Ctx) error {
	response, err := controller.MembershipUsecase.ApproveMembership(ctx.UserContext(), currentUserId(ctx), ctx.Params("membershipId"))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller MembershipController) RejectMembership(ctx *fiber.Ctx) error {
	response, err := controller.MembershipUsecase.RejectMembership(ctx.UserContext(), currentUserId(ctx), ctx.Params("membershipId"))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller MembershipController) LeaveClub(ctx *fiber.Ctx) error {
	response, err := controller.MembershipUsecase.LeaveClub(ctx.UserContext(), currentUserId(ctx), ctx.Params("clubId"), ctx.Params("userId"))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller MembershipController) GetClubMemberships(ctx *fiber.Ctx) error {
	response, err := controller.MembershipUsecase.ListClubMemberships(ctx.UserContext(), currentUserId(ctx), ctx.Params("clubId"), ctx.Query("status"))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}
