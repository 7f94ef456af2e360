package usecase

import (
	"context"
	"time"

	"github.com/ferdian3456/clubconnect/internal/constant"
	"github.com/ferdian3456/clubconnect/internal/model"
	"github.com/ferdian3456/clubconnect/internal/observability"
	"github.com/ferdian3456/clubconnect/internal/util"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AnnouncementUsecase struct {
	AccessUsecase          *AccessUsecase
	ClubRepository         ClubRepository
	AnnouncementRepository AnnouncementRepository
	Log                    *zap.Logger
}

func NewAnnouncementUsecase(accessUsecase *AccessUsecase, clubRepository ClubRepository, announcementRepository AnnouncementRepository, zap *zap.Logger) *AnnouncementUsecase {
	return &AnnouncementUsecase{
		AccessUsecase:          accessUsecase,
		ClubRepository:         clubRepository,
		AnnouncementRepository: announcementRepository,
		Log:                    zap,
	}
}

func toAnnouncementResponse(announcement model.Announcement) model.AnnouncementResponse {
	return model.AnnouncementResponse{
		Id:             announcement.Id,
		ClubId:         announcement.ClubId,
		Title:          announcement.Title,
		Content:        announcement.Content,
		CreateDatetime: announcement.CreateDatetime,
	}
}

func (usecase *AnnouncementUsecase) CreateClubAnnouncement(ctx context.Context, userId uuid.UUID, clubIdParam string, payload model.AnnouncementCreateRequest) (model.ActionResponse, error) {
	response := model.ActionResponse{}

	clubId, err := parseId(clubIdParam, "clubId", "club")
	if err != nil {
		return response, err
	}

	_, err = findClub(ctx, usecase.ClubRepository, usecase.Log, clubId)
	if err != nil {
		return response, err
	}

	actor, err := usecase.AccessUsecase.GetActor(ctx, userId)
	if err != nil {
		return response, err
	}

	err = usecase.AccessUsecase.Authorize(ctx, actor, clubId, OperationCreateClubAnnouncement)
	if err != nil {
		return response, err
	}

	announcement, err := usecase.createAnnouncement(ctx, userId, &clubId, payload)
	if err != nil {
		return response, err
	}

	response.Message = "Announcement created successfully"
	response.Redirect = clubRedirect(clubId)
	response.Data = toAnnouncementResponse(announcement)

	return response, nil
}

func (usecase *AnnouncementUsecase) CreateGlobalAnnouncement(ctx context.Context, userId uuid.UUID, payload model.AnnouncementCreateRequest) (model.ActionResponse, error) {
	response := model.ActionResponse{}

	actor, err := usecase.AccessUsecase.GetActor(ctx, userId)
	if err != nil {
		return response, err
	}

	err = usecase.AccessUsecase.Authorize(ctx, actor, uuid.Nil, OperationCreateGlobalAnnouncement)
	if err != nil {
		return response, err
	}

	announcement, err := usecase.createAnnouncement(ctx, userId, nil, payload)
	if err != nil {
		return response, err
	}

	response.Message = "Announcement created successfully"
	response.Redirect = constant.REDIRECT_DASHBOARD
	response.Data = toAnnouncementResponse(announcement)

	return response, nil
}

func (usecase *AnnouncementUsecase) createAnnouncement(ctx context.Context, userId uuid.UUID, clubId *uuid.UUID, payload model.AnnouncementCreateRequest) (model.Announcement, error) {
	title, err := validateText(payload.Title, "title", "Title", 200)
	if err != nil {
		return model.Announcement{}, err
	}

	content, err := validateText(payload.Content, "content", "Content", 0)
	if err != nil {
		return model.Announcement{}, err
	}

	announcement := model.Announcement{
		Id:             uuid.New(),
		ClubId:         clubId,
		Title:          title,
		Content:        content,
		CreateDatetime: time.Now().UTC(),
		CreateUserId:   userId,
	}

	err = usecase.AnnouncementRepository.CreateAnnouncement(ctx, announcement)
	if err != nil {
		return model.Announcement{}, err
	}

	observability.WithContext(ctx, usecase.Log).Info("announcement created",
		zap.String("announcement_id", announcement.Id.String()),
		zap.Bool("global", clubId == nil),
	)

	return announcement, nil
}

// DeleteAnnouncement accepts founders of the announcement's club and the staff
// override. Global announcements need the staff override.
func (usecase *AnnouncementUsecase) DeleteAnnouncement(ctx context.Context, userId uuid.UUID, announcementIdParam string) (model.ActionResponse, error) {
	response := model.ActionResponse{}

	announcementId, err := parseId(announcementIdParam, "announcementId", "announcement")
	if err != nil {
		return response, err
	}

	announcement, err := usecase.AnnouncementRepository.FindAnnouncementById(ctx, announcementId)
	if err != nil {
		return response, err
	}

	if announcement.Id == uuid.Nil {
		return response, notFound("Announcement is not found", "announcementId", constant.REDIRECT_DASHBOARD)
	}

	actor, err := usecase.AccessUsecase.GetActor(ctx, userId)
	if err != nil {
		return response, err
	}

	redirect := constant.REDIRECT_DASHBOARD
	if announcement.ClubId == nil {
		err = usecase.AccessUsecase.Authorize(ctx, actor, uuid.Nil, OperationDeleteGlobalAnnouncement)
	} else {
		redirect = clubRedirect(*announcement.ClubId)
		err = usecase.AccessUsecase.Authorize(ctx, actor, *announcement.ClubId, OperationDeleteAnnouncement)
	}
	if err != nil {
		return response, err
	}

	err = usecase.AnnouncementRepository.DeleteAnnouncement(ctx, announcement.Id)
	if err != nil {
		return response, err
	}

	observability.WithContext(ctx, usecase.Log).Info("announcement deleted",
		zap.String("announcement_id", announcement.Id.String()),
		zap.String("user_id", userId.String()),
	)

	response.Message = "Announcement deleted successfully"
	response.Redirect = redirect

	return response, nil
}

func (usecase *AnnouncementUsecase) ListGlobalAnnouncements(ctx context.Context, limit int) (model.AnnouncementListResponse, error) {
	response := model.AnnouncementListResponse{}

	if limit == 0 {
		limit = constant.DEFAULT_LIMIT
	}

	err := util.ValidateLimit(limit)
	if err != nil {
		return response, err
	}

	announcements, err := usecase.AnnouncementRepository.ListGlobalAnnouncements(ctx, limit)
	if err != nil {
		return response, err
	}

	response.Data = make([]model.AnnouncementResponse, 0, len(announcements))
	for _, announcement := range announcements {
		response.Data = append(response.Data, toAnnouncementResponse(announcement))
	}

	return response, nil
}
