package usecase

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/ferdian3456/clubconnect/internal/constant"
	"github.com/ferdian3456/clubconnect/internal/model"
	"github.com/ferdian3456/clubconnect/internal/observability"
	"github.com/ferdian3456/clubconnect/internal/util"
	"github.com/google/uuid"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type EventUsecase struct {
	AccessUsecase   *AccessUsecase
	ClubRepository  ClubRepository
	EventRepository EventRepository
	MediaRepository MediaRepository
	Log             *zap.Logger
	Config          *koanf.Koanf
}

func NewEventUsecase(accessUsecase *AccessUsecase, clubRepository ClubRepository, eventRepository EventRepository, mediaRepository MediaRepository, zap *zap.Logger, koanf *koanf.Koanf) *EventUsecase {
	return &EventUsecase{
		AccessUsecase:   accessUsecase,
		ClubRepository:  clubRepository,
		EventRepository: eventRepository,
		MediaRepository: mediaRepository,
		Log:             zap,
		Config:          koanf,
	}
}

func toEventResponse(config *koanf.Koanf, event model.Event) model.EventResponse {
	return model.EventResponse{
		Id:            event.Id,
		ClubId:        event.ClubId,
		Title:         event.Title,
		Description:   event.Description,
		Location:      event.Location,
		StartDatetime: event.StartDatetime,
		EndDatetime:   event.EndDatetime,
		ImageUrl:      objectUrl(config, event.ImageObjectKey),
	}
}

// CreateEvent is founder only; staff cannot create events for a club they do
// not found. fileHeader is optional.
func (usecase *EventUsecase) CreateEvent(ctx context.Context, userId uuid.UUID, clubIdParam string, payload model.EventCreateRequest, fileHeader *multipart.FileHeader) (model.ActionResponse, error) {
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

	err = usecase.AccessUsecase.Authorize(ctx, actor, clubId, OperationCreateEvent)
	if err != nil {
		return response, err
	}

	title, err := validateText(payload.Title, "title", "Title", 200)
	if err != nil {
		return response, err
	}

	description, err := validateText(payload.Description, "description", "Description", 0)
	if err != nil {
		return response, err
	}

	location, err := validateText(payload.Location, "location", "Location", 200)
	if err != nil {
		return response, err
	}

	if payload.StartDatetime.IsZero() {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Start datetime is required to not be empty",
			Param:   "startDatetime",
		}
	}

	if !payload.EndDatetime.After(payload.StartDatetime) {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "End datetime must be after start datetime",
			Param:   "endDatetime",
		}
	}

	now := time.Now().UTC()
	event := model.Event{
		Id:             uuid.New(),
		ClubId:         clubId,
		Title:          title,
		Description:    description,
		Location:       location,
		StartDatetime:  payload.StartDatetime.UTC(),
		EndDatetime:    payload.EndDatetime.UTC(),
		ImageObjectKey: nil,
		CreateDatetime: now,
		UpdateDatetime: now,
		CreateUserId:   userId,
		UpdateUserId:   userId,
	}

	if fileHeader != nil {
		objectKey, err := usecase.uploadEventImage(ctx, event.Id, fileHeader)
		if err != nil {
			return response, err
		}
		event.ImageObjectKey = &objectKey
	}

	err = usecase.EventRepository.CreateEvent(ctx, event)
	if err != nil {
		return response, err
	}

	observability.WithContext(ctx, usecase.Log).Info("event created",
		zap.String("event_id", event.Id.String()),
		zap.String("club_id", clubId.String()),
	)

	response.Message = fmt.Sprintf("Event '%s' has been created successfully", event.Title)
	response.Redirect = clubRedirect(clubId)
	response.Data = toEventResponse(usecase.Config, event)

	return response, nil
}

func (usecase *EventUsecase) UpdateEventImage(ctx context.Context, userId uuid.UUID, eventIdParam string, fileHeader *multipart.FileHeader) (model.ActionResponse, error) {
	response := model.ActionResponse{}

	eventId, err := parseId(eventIdParam, "eventId", "event")
	if err != nil {
		return response, err
	}

	event, err := usecase.EventRepository.FindEventById(ctx, eventId)
	if err != nil {
		return response, err
	}

	if event.Id == uuid.Nil {
		return response, notFound("Event is not found", "eventId", constant.REDIRECT_CLUBS)
	}

	actor, err := usecase.AccessUsecase.GetActor(ctx, userId)
	if err != nil {
		return response, err
	}

	err = usecase.AccessUsecase.Authorize(ctx, actor, event.ClubId, OperationUpdateEventImage)
	if err != nil {
		return response, err
	}

	if fileHeader == nil {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Image is required to not be empty",
			Param:   "image",
		}
	}

	objectKey, err := usecase.uploadEventImage(ctx, event.Id, fileHeader)
	if err != nil {
		return response, err
	}

	err = usecase.EventRepository.UpdateEventImage(ctx, event.Id, objectKey, userId, time.Now().UTC())
	if err != nil {
		return response, err
	}

	if event.ImageObjectKey != nil {
		err = usecase.MediaRepository.DeleteImageObject(ctx, *event.ImageObjectKey)
		if err != nil {
			observability.WithContext(ctx, usecase.Log).Warn("failed to delete previous event image",
				zap.String("object_key", *event.ImageObjectKey),
				zap.Error(err),
			)
		}
	}

	event.ImageObjectKey = &objectKey

	response.Message = "Event image has been updated successfully"
	response.Redirect = clubRedirect(event.ClubId)
	response.Data = toEventResponse(usecase.Config, event)

	return response, nil
}

func (usecase *EventUsecase) uploadEventImage(ctx context.Context, eventId uuid.UUID, fileHeader *multipart.FileHeader) (string, error) {
	imageFile, imageSize, err := util.ValidateImage(fileHeader, "image", util.EventImageSize)
	if err != nil {
		return "", err
	}

	objectKey := util.GenerateObjectKey("events", eventId, "image") + ".webp"

	err = usecase.MediaRepository.UploadImageObject(ctx, objectKey, imageFile, imageSize)
	if err != nil {
		return "", err
	}

	return objectKey, nil
}
