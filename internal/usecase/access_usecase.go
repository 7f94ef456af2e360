package usecase

import (
	"context"
	"fmt"

	"github.com/ferdian3456/clubconnect/internal/constant"
	"github.com/ferdian3456/clubconnect/internal/metrics"
	"github.com/ferdian3456/clubconnect/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Requirement is the capability an operation asks of its actor.
type Requirement int

const (
	RequireAdmin Requirement = iota
	RequireStaff
	RequireStudent
	RequireFounder
	RequireFounderOrMember
)

type Operation string

const (
	OperationCreateClub               Operation = "create_club"
	OperationAssignFounder            Operation = "assign_founder"
	OperationListFounderCandidates    Operation = "list_founder_candidates"
	OperationEditClub                 Operation = "edit_club"
	OperationUpdateClubLogo           Operation = "update_club_logo"
	OperationRequestMembership        Operation = "request_membership"
	OperationApproveMembership        Operation = "approve_membership"
	OperationRejectMembership         Operation = "reject_membership"
	OperationListClubMemberships      Operation = "list_club_memberships"
	OperationCreateEvent              Operation = "create_event"
	OperationUpdateEventImage         Operation = "update_event_image"
	OperationCreateClubAnnouncement   Operation = "create_club_announcement"
	OperationCreateGlobalAnnouncement Operation = "create_global_announcement"
	OperationDeleteAnnouncement       Operation = "delete_announcement"
	OperationDeleteGlobalAnnouncement Operation = "delete_global_announcement"
	OperationClubChat                 Operation = "club_chat"
	OperationCreatePost               Operation = "create_post"
	OperationListPosts                Operation = "list_posts"
	OperationLikePost                 Operation = "like_post"
)

// Policy describes who may run an operation. StaffOverride lets staff and
// platform admins pass a founder requirement.
type Policy struct {
	Requirement   Requirement
	StaffOverride bool
	Message       string
}

var Policies = map[Operation]Policy{
	OperationCreateClub:               {Requirement: RequireAdmin, Message: "Only administrators can create clubs"},
	OperationAssignFounder:            {Requirement: RequireAdmin, Message: "Only administrators can assign founders"},
	OperationListFounderCandidates:    {Requirement: RequireAdmin, Message: "Only administrators can assign founders"},
	OperationEditClub:                 {Requirement: RequireFounder, Message: "Only club founders can edit club information"},
	OperationUpdateClubLogo:           {Requirement: RequireFounder, Message: "Only club founders can edit club information"},
	OperationRequestMembership:        {Requirement: RequireStudent, Message: "Only students can register for clubs"},
	OperationApproveMembership:        {Requirement: RequireFounder, Message: "Only club founders can approve memberships"},
	OperationRejectMembership:         {Requirement: RequireFounder, Message: "Only club founders can reject memberships"},
	OperationListClubMemberships:      {Requirement: RequireFounder, Message: "Only club founders can view membership requests"},
	OperationCreateEvent:              {Requirement: RequireFounder, Message: "Only club founders can create events"},
	OperationUpdateEventImage:         {Requirement: RequireFounder, Message: "Only club founders can update events"},
	OperationCreateClubAnnouncement:   {Requirement: RequireFounder, StaffOverride: true, Message: "You are not authorized to create an announcement for this club"},
	OperationCreateGlobalAnnouncement: {Requirement: RequireStaff, Message: "Only staff can publish global announcements"},
	OperationDeleteAnnouncement:       {Requirement: RequireFounder, StaffOverride: true, Message: "You are not authorized to delete this announcement"},
	OperationDeleteGlobalAnnouncement: {Requirement: RequireStaff, Message: "You are not authorized to delete this announcement"},
	OperationClubChat:                 {Requirement: RequireFounderOrMember, Message: "You must be a founder or member to access the club chat"},
	OperationCreatePost:               {Requirement: RequireFounderOrMember, Message: "You must be a founder or member to post in this club"},
	OperationListPosts:                {Requirement: RequireFounderOrMember, Message: "You must be a founder or member to view club posts"},
	OperationLikePost:                 {Requirement: RequireFounderOrMember, Message: "You must be a founder or member to like club posts"},
}

// AccessUsecase answers capability questions. It never writes.
type AccessUsecase struct {
	UserRepository       UserRepository
	ClubRepository       ClubRepository
	MembershipRepository MembershipRepository
	Log                  *zap.Logger
}

func NewAccessUsecase(userRepository UserRepository, clubRepository ClubRepository, membershipRepository MembershipRepository, zap *zap.Logger) *AccessUsecase {
	return &AccessUsecase{
		UserRepository:       userRepository,
		ClubRepository:       clubRepository,
		MembershipRepository: membershipRepository,
		Log:                  zap,
	}
}

// GetActor loads the authenticated user. A token for a deleted account is unauthorized.
func (usecase *AccessUsecase) GetActor(ctx context.Context, userId uuid.UUID) (model.User, error) {
	actor, err := usecase.UserRepository.FindUserById(ctx, userId)
	if err != nil {
		return actor, err
	}

	if actor.Id == uuid.Nil {
		return actor, &model.ValidationError{
			Code:    constant.ERR_UNATHORIZED_ERROR,
			Message: "User is not found",
			Param:   "accessToken",
		}
	}

	return actor, nil
}

func (usecase *AccessUsecase) IsPlatformAdmin(actor model.User) bool {
	return actor.Role == model.RoleAdmin
}

func (usecase *AccessUsecase) HasStaffOverride(actor model.User) bool {
	return actor.IsStaff || actor.Role == model.RoleAdmin
}

// IsFounderOf checks the club founder set only. The founder role tag is not consulted.
func (usecase *AccessUsecase) IsFounderOf(ctx context.Context, actorId uuid.UUID, clubId uuid.UUID) (bool, error) {
	exists, err := usecase.ClubRepository.CheckClubFounder(ctx, clubId, actorId)
	if err != nil {
		return false, err
	}

	return exists == 1, nil
}

func (usecase *AccessUsecase) IsApprovedMemberOf(ctx context.Context, actorId uuid.UUID, clubId uuid.UUID) (bool, error) {
	exists, err := usecase.MembershipRepository.CheckApprovedMember(ctx, clubId, actorId)
	if err != nil {
		return false, err
	}

	return exists == 1, nil
}

// CanManageClubContent is true for club founders, and for staff when the
// operation's policy allows the override.
func (usecase *AccessUsecase) CanManageClubContent(ctx context.Context, actor model.User, clubId uuid.UUID, operation Operation) (bool, error) {
	if Policies[operation].StaffOverride && usecase.HasStaffOverride(actor) {
		return true, nil
	}

	return usecase.IsFounderOf(ctx, actor.Id, clubId)
}

// Allowed evaluates the policy of operation for actor against clubId.
func (usecase *AccessUsecase) Allowed(ctx context.Context, actor model.User, clubId uuid.UUID, operation Operation) (bool, error) {
	policy, ok := Policies[operation]
	if !ok {
		return false, fmt.Errorf("no access policy for operation %q", operation)
	}

	switch policy.Requirement {
	case RequireAdmin:
		return usecase.IsPlatformAdmin(actor), nil
	case RequireStaff:
		return usecase.HasStaffOverride(actor), nil
	case RequireStudent:
		return actor.Role == model.RoleStudent, nil
	case RequireFounder:
		return usecase.CanManageClubContent(ctx, actor, clubId, operation)
	case RequireFounderOrMember:
		isFounder, err := usecase.IsFounderOf(ctx, actor.Id, clubId)
		if err != nil || isFounder {
			return isFounder, err
		}
		return usecase.IsApprovedMemberOf(ctx, actor.Id, clubId)
	}

	return false, fmt.Errorf("unknown requirement %d for operation %q", policy.Requirement, operation)
}

// Authorize returns a forbidden ValidationError carrying the policy message
// when actor may not run operation.
func (usecase *AccessUsecase) Authorize(ctx context.Context, actor model.User, clubId uuid.UUID, operation Operation) error {
	allowed, err := usecase.Allowed(ctx, actor, clubId, operation)
	if err != nil {
		return err
	}

	if allowed {
		return nil
	}

	metrics.AuthorizationDenials.WithLabelValues(string(operation)).Inc()

	redirect := constant.REDIRECT_DASHBOARD
	if clubId != uuid.Nil {
		redirect = clubRedirect(clubId)
	}

	return &model.ValidationError{
		Code:     constant.ERR_FORBIDDEN_ERROR,
		Message:  Policies[operation].Message,
		Redirect: redirect,
	}
}

func clubRedirect(clubId uuid.UUID) string {
	return fmt.Sprintf("/clubs/%s", clubId)
}

func parseId(value string, param string, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("Invalid %s id", label),
			Param:   param,
		}
	}

	return id, nil
}

func notFound(message string, param string, redirect string) error {
	return &model.ValidationError{
		Code:     constant.ERR_NOT_FOUND_ERROR,
		Message:  message,
		Param:    param,
		Redirect: redirect,
	}
}

// findClub reads a club through the redis cache. A missing club is NotFound.
func findClub(ctx context.Context, clubRepository ClubRepository, log *zap.Logger, clubId uuid.UUID) (model.Club, error) {
	club, found, err := clubRepository.GetClubFromCache(ctx, clubId)
	if err != nil {
		log.Warn("failed to read club cache", zap.String("club_id", clubId.String()), zap.Error(err))
	} else if found {
		return club, nil
	}

	club, err = clubRepository.FindClubById(ctx, clubId)
	if err != nil {
		return club, err
	}

	if club.Id == uuid.Nil {
		return club, notFound("Club is not found", "clubId", constant.REDIRECT_CLUBS)
	}

	err = clubRepository.SetClubInCache(ctx, club)
	if err != nil {
		log.Warn("failed to write club cache", zap.String("club_id", clubId.String()), zap.Error(err))
	}

	return club, nil
}
