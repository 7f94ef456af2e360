package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ferdian3456/clubconnect/internal/constant"
	"github.com/ferdian3456/clubconnect/internal/metrics"
	"github.com/ferdian3456/clubconnect/internal/model"
	"github.com/ferdian3456/clubconnect/internal/observability"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MembershipUsecase struct {
	AccessUsecase        *AccessUsecase
	UserRepository       UserRepository
	ClubRepository       ClubRepository
	MembershipRepository MembershipRepository
	Log                  *zap.Logger
}

func NewMembershipUsecase(accessUsecase *AccessUsecase, userRepository UserRepository, clubRepository ClubRepository, membershipRepository MembershipRepository, zap *zap.Logger) *MembershipUsecase {
	return &MembershipUsecase{
		AccessUsecase:        accessUsecase,
		UserRepository:       userRepository,
		ClubRepository:       clubRepository,
		MembershipRepository: membershipRepository,
		Log:                  zap,
	}
}

func toMembershipResponse(membership model.Membership, username string, clubName string) model.MembershipResponse {
	return model.MembershipResponse{
		Id:             membership.Id,
		UserId:         membership.UserId,
		Username:       username,
		ClubId:         membership.ClubId,
		ClubName:       clubName,
		Status:         membership.Status,
		JoinedDatetime: membership.JoinedDatetime,
		UpdateDatetime: membership.UpdateDatetime,
	}
}

// membershipConflict reports an existing membership row and its status.
func membershipConflict(status model.MembershipStatus, clubId uuid.UUID) error {
	message := "Your previous membership request was rejected"
	switch status {
	case model.MembershipStatusApproved:
		message = "You are already a member of this club"
	case model.MembershipStatusPending:
		message = "Your membership request is pending approval"
	}

	return &model.ValidationError{
		Code:     constant.ERR_CONFLICT_ERROR,
		Message:  message,
		Param:    "clubId",
		State:    string(status),
		Redirect: clubRedirect(clubId),
	}
}

// RequestMembership creates a pending membership of userId in the club. An
// existing row, including one created by a concurrent request, is a conflict.
func (usecase *MembershipUsecase) RequestMembership(ctx context.Context, userId uuid.UUID, clubIdParam string) (model.ActionResponse, error) {
	response := model.ActionResponse{}

	clubId, err := parseId(clubIdParam, "clubId", "club")
	if err != nil {
		return response, err
	}

	club, err := findClub(ctx, usecase.ClubRepository, usecase.Log, clubId)
	if err != nil {
		return response, err
	}

	actor, err := usecase.AccessUsecase.GetActor(ctx, userId)
	if err != nil {
		return response, err
	}

	err = usecase.AccessUsecase.Authorize(ctx, actor, clubId, OperationRequestMembership)
	if err != nil {
		return response, err
	}

	existing, err := usecase.MembershipRepository.FindMembership(ctx, userId, clubId)
	if err != nil {
		return response, err
	}

	if existing.Id != uuid.Nil {
		metrics.MembershipTransitions.WithLabelValues("conflict").Inc()
		return response, membershipConflict(existing.Status, clubId)
	}

	now := time.Now().UTC()
	membership := model.Membership{
		Id:             uuid.New(),
		UserId:         userId,
		ClubId:         clubId,
		Status:         model.MembershipStatusPending,
		JoinedDatetime: now,
		UpdateDatetime: now,
		UpdateUserId:   userId,
	}

	err = usecase.MembershipRepository.CreateMembership(ctx, membership)
	if errors.Is(err, model.ErrDuplicate) {
		existing, err = usecase.MembershipRepository.FindMembership(ctx, userId, clubId)
		if err != nil {
			return response, err
		}

		status := existing.Status
		if existing.Id == uuid.Nil {
			status = model.MembershipStatusPending
		}

		metrics.MembershipTransitions.WithLabelValues("conflict").Inc()
		return response, membershipConflict(status, clubId)
	} else if err != nil {
		return response, err
	}

	metrics.MembershipTransitions.WithLabelValues("requested").Inc()
	observability.WithContext(ctx, usecase.Log).Info("membership requested",
		zap.String("membership_id", membership.Id.String()),
		zap.String("club_id", clubId.String()),
		zap.String("user_id", userId.String()),
	)

	response.Message = fmt.Sprintf("Your registration request for %s has been submitted", club.Name)
	response.Redirect = constant.REDIRECT_DASHBOARD
	response.Data = toMembershipResponse(membership, actor.Username, club.Name)

	return response, nil
}

func (usecase *MembershipUsecase) ApproveMembership(ctx context.Context, userId uuid.UUID, membershipIdParam string) (model.ActionResponse, error) {
	return usecase.reviewMembership(ctx, userId, membershipIdParam, model.MembershipStatusApproved, OperationApproveMembership)
}

func (usecase *MembershipUsecase) RejectMembership(ctx context.Context, userId uuid.UUID, membershipIdParam string) (model.ActionResponse, error) {
	return usecase.reviewMembership(ctx, userId, membershipIdParam, model.MembershipStatusRejected, OperationRejectMembership)
}

// reviewMembership overwrites the status without looking at the previous one.
// Concurrent reviews are last write wins.
func (usecase *MembershipUsecase) reviewMembership(ctx context.Context, userId uuid.UUID, membershipIdParam string, status model.MembershipStatus, operation Operation) (model.ActionResponse, error) {
	response := model.ActionResponse{}

	membershipId, err := parseId(membershipIdParam, "membershipId", "membership")
	if err != nil {
		return response, err
	}

	membership, err := usecase.MembershipRepository.FindMembershipById(ctx, membershipId)
	if err != nil {
		return response, err
	}

	if membership.Id == uuid.Nil {
		return response, notFound("Membership is not found", "membershipId", constant.REDIRECT_FOUNDER_DASHBOARD)
	}

	actor, err := usecase.AccessUsecase.GetActor(ctx, userId)
	if err != nil {
		return response, err
	}

	err = usecase.AccessUsecase.Authorize(ctx, actor, membership.ClubId, operation)
	if err != nil {
		return response, err
	}

	now := time.Now().UTC()
	err = usecase.MembershipRepository.UpdateMembershipStatus(ctx, membership.Id, status, userId, now)
	if err != nil {
		return response, err
	}

	membership.Status = status
	membership.UpdateDatetime = now
	membership.UpdateUserId = userId

	member, err := usecase.UserRepository.FindUserById(ctx, membership.UserId)
	if err != nil {
		return response, err
	}

	metrics.MembershipTransitions.WithLabelValues(string(status)).Inc()
	observability.WithContext(ctx, usecase.Log).Info("membership reviewed",
		zap.String("membership_id", membership.Id.String()),
		zap.String("status", string(status)),
		zap.String("reviewer_id", userId.String()),
	)

	response.Message = fmt.Sprintf("Membership for %s has been %s", member.Username, status)
	response.Redirect = constant.REDIRECT_FOUNDER_DASHBOARD
	response.Data = toMembershipResponse(membership, member.Username, "")

	return response, nil
}

// LeaveClub deletes the membership of userIdParam ("me" for the caller) in
// the club, whatever its status. Only the member can remove it.
func (usecase *MembershipUsecase) LeaveClub(ctx context.Context, actorId uuid.UUID, clubIdParam string, userIdParam string) (model.ActionResponse, error) {
	response := model.ActionResponse{}

	clubId, err := parseId(clubIdParam, "clubId", "club")
	if err != nil {
		return response, err
	}

	memberId := actorId
	if userIdParam != "me" {
		memberId, err = parseId(userIdParam, "userId", "user")
		if err != nil {
			return response, err
		}
	}

	club, err := findClub(ctx, usecase.ClubRepository, usecase.Log, clubId)
	if err != nil {
		return response, err
	}

	if memberId != actorId {
		return response, &model.ValidationError{
			Code:     constant.ERR_FORBIDDEN_ERROR,
			Message:  "You can only leave a club on your own behalf",
			Param:    "userId",
			Redirect: clubRedirect(clubId),
		}
	}

	membership, err := usecase.MembershipRepository.FindMembership(ctx, memberId, clubId)
	if err != nil {
		return response, err
	}

	if membership.Id == uuid.Nil {
		return response, notFound("You are not a member of this club", "clubId", clubRedirect(clubId))
	}

	err = usecase.MembershipRepository.DeleteMembership(ctx, membership.Id)
	if err != nil {
		return response, err
	}

	metrics.MembershipTransitions.WithLabelValues("left").Inc()
	observability.WithContext(ctx, usecase.Log).Info("membership deleted",
		zap.String("membership_id", membership.Id.String()),
		zap.String("club_id", clubId.String()),
		zap.String("user_id", memberId.String()),
	)

	response.Message = fmt.Sprintf("You have left %s", club.Name)
	response.Redirect = clubRedirect(clubId)

	return response, nil
}

func (usecase *MembershipUsecase) ListClubMemberships(ctx context.Context, userId uuid.UUID, clubIdParam string, statusParam string) (model.MembershipListResponse, error) {
	response := model.MembershipListResponse{}

	clubId, err := parseId(clubIdParam, "clubId", "club")
	if err != nil {
		return response, err
	}

	status := model.MembershipStatus(statusParam)
	if status != "" && !status.IsValid() {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Status must be one of pending, approved or rejected",
			Param:   "status",
		}
	}

	_, err = findClub(ctx, usecase.ClubRepository, usecase.Log, clubId)
	if err != nil {
		return response, err
	}

	actor, err := usecase.AccessUsecase.GetActor(ctx, userId)
	if err != nil {
		return response, err
	}

	err = usecase.AccessUsecase.Authorize(ctx, actor, clubId, OperationListClubMemberships)
	if err != nil {
		return response, err
	}

	memberships, err := usecase.MembershipRepository.ListClubMemberships(ctx, clubId, status)
	if err != nil {
		return response, err
	}

	response.Data = memberships

	return response, nil
}

func (usecase *MembershipUsecase) ListMyMemberships(ctx context.Context, userId uuid.UUID) (model.MembershipListResponse, error) {
	response := model.MembershipListResponse{}

	memberships, err := usecase.MembershipRepository.ListUserMemberships(ctx, userId)
	if err != nil {
		return response, err
	}

	response.Data = memberships

	return response, nil
}
