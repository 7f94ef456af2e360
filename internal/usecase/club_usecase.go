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

type ClubUsecase struct {
	AccessUsecase          *AccessUsecase
	UserRepository         UserRepository
	ClubRepository         ClubRepository
	MembershipRepository   MembershipRepository
	EventRepository        EventRepository
	AnnouncementRepository AnnouncementRepository
	MediaRepository        MediaRepository
	Log                    *zap.Logger
	Config                 *koanf.Koanf
}

func NewClubUsecase(accessUsecase *AccessUsecase, userRepository UserRepository, clubRepository ClubRepository, membershipRepository MembershipRepository, eventRepository EventRepository, announcementRepository AnnouncementRepository, mediaRepository MediaRepository, zap *zap.Logger, koanf *koanf.Koanf) *ClubUsecase {
	return &ClubUsecase{
		AccessUsecase:          accessUsecase,
		UserRepository:         userRepository,
		ClubRepository:         clubRepository,
		MembershipRepository:   membershipRepository,
		EventRepository:        eventRepository,
		AnnouncementRepository: announcementRepository,
		MediaRepository:        mediaRepository,
		Log:                    zap,
		Config:                 koanf,
	}
}

// objectUrl turns a stored object key into its public url.
func objectUrl(config *koanf.Koanf, objectKey *string) *string {
	if objectKey == nil {
		return nil
	}

	url := fmt.Sprintf("%s%s/%s/%s", config.String("MINIO_HTTP"), config.String("MINIO_URL"), config.String("MINIO_BUCKET_NAME"), *objectKey)
	return &url
}

func toClubResponse(config *koanf.Koanf, club model.Club, founders []model.UserSummary) model.ClubResponse {
	return model.ClubResponse{
		Id:               club.Id,
		Name:             club.Name,
		ShortDescription: club.ShortDescription,
		LongDescription:  club.LongDescription,
		DomainTags:       util.SplitDomainTags(club.DomainTags),
		FacultyAdvisor:   club.FacultyAdvisor,
		LogoUrl:          objectUrl(config, club.LogoObjectKey),
		Founders:         founders,
		CreateDatetime:   club.CreateDatetime,
		UpdateDatetime:   club.UpdateDatetime,
	}
}

type clubFields struct {
	name             string
	shortDescription string
	longDescription  string
	domainTags       string
	facultyAdvisor   *string
}

func validateClubFields(name string, shortDescription string, longDescription string, domainTags string, facultyAdvisor *string) (clubFields, error) {
	fields := clubFields{}
	var err error

	fields.name, err = validateText(name, "name", "Name", 100)
	if err != nil {
		return fields, err
	}

	fields.shortDescription, err = validateText(shortDescription, "shortDescription", "Short description", 255)
	if err != nil {
		return fields, err
	}

	fields.longDescription, err = validateText(longDescription, "longDescription", "Long description", 0)
	if err != nil {
		return fields, err
	}

	fields.domainTags = util.NormalizeDomainTags(domainTags)
	if len(fields.domainTags) > 255 {
		return fields, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Domain tags must be at most 255 characters",
			Param:   "domainTags",
		}
	}

	fields.facultyAdvisor, err = validateOptionalText(facultyAdvisor, "facultyAdvisor", "Faculty advisor", 100)
	if err != nil {
		return fields, err
	}

	return fields, nil
}

func (usecase *ClubUsecase) CreateClub(ctx context.Context, userId uuid.UUID, payload model.ClubCreateRequest) (model.ActionResponse, error) {
	response := model.ActionResponse{}

	actor, err := usecase.AccessUsecase.GetActor(ctx, userId)
	if err != nil {
		return response, err
	}

	err = usecase.AccessUsecase.Authorize(ctx, actor, uuid.Nil, OperationCreateClub)
	if err != nil {
		return response, err
	}

	fields, err := validateClubFields(payload.Name, payload.ShortDescription, payload.LongDescription, payload.DomainTags, payload.FacultyAdvisor)
	if err != nil {
		return response, err
	}

	now := time.Now().UTC()
	club := model.Club{
		Id:               uuid.New(),
		Name:             fields.name,
		ShortDescription: fields.shortDescription,
		LongDescription:  fields.longDescription,
		DomainTags:       fields.domainTags,
		FacultyAdvisor:   fields.facultyAdvisor,
		LogoObjectKey:    nil,
		CreateDatetime:   now,
		UpdateDatetime:   now,
		CreateUserId:     userId,
		UpdateUserId:     userId,
	}

	err = usecase.ClubRepository.CreateClub(ctx, club)
	if err != nil {
		return response, err
	}

	observability.WithContext(ctx, usecase.Log).Info("club created",
		zap.String("club_id", club.Id.String()),
		zap.String("user_id", userId.String()),
	)

	response.Message = fmt.Sprintf("Club '%s' has been created successfully", club.Name)
	response.Redirect = fmt.Sprintf("/clubs/%s/founders", club.Id)
	response.Data = toClubResponse(usecase.Config, club, []model.UserSummary{})

	return response, nil
}

// AssignFounder adds a user to the club founder set. A student is promoted to
// the founder role first; admins and founders keep their role.
func (usecase *ClubUsecase) AssignFounder(ctx context.Context, userId uuid.UUID, clubIdParam string, payload model.ClubAssignFounderRequest) (model.ActionResponse, error) {
	response := model.ActionResponse{}

	clubId, err := parseId(clubIdParam, "clubId", "club")
	if err != nil {
		return response, err
	}

	actor, err := usecase.AccessUsecase.GetActor(ctx, userId)
	if err != nil {
		return response, err
	}

	err = usecase.AccessUsecase.Authorize(ctx, actor, uuid.Nil, OperationAssignFounder)
	if err != nil {
		return response, err
	}

	club, err := findClub(ctx, usecase.ClubRepository, usecase.Log, clubId)
	if err != nil {
		return response, err
	}

	founderId, err := parseId(payload.FounderId, "founderId", "founder")
	if err != nil {
		return response, err
	}

	founder, err := usecase.UserRepository.FindUserById(ctx, founderId)
	if err != nil {
		return response, err
	}

	if founder.Id == uuid.Nil {
		return response, notFound("User is not found", "founderId", fmt.Sprintf("/clubs/%s/founders", clubId))
	}

	promote := founder.Role == model.RoleStudent

	err = usecase.ClubRepository.AssignFounder(ctx, clubId, founderId, promote, userId, time.Now().UTC())
	if err != nil {
		return response, err
	}

	observability.WithContext(ctx, usecase.Log).Info("founder assigned",
		zap.String("club_id", clubId.String()),
		zap.String("founder_id", founderId.String()),
		zap.Bool("promoted", promote),
	)

	response.Message = fmt.Sprintf("%s has been assigned as a founder of %s", founder.Username, club.Name)
	if promote {
		response.Message = fmt.Sprintf("%s was promoted to founder and assigned to %s", founder.Username, club.Name)
	}
	response.Redirect = clubRedirect(clubId)

	return response, nil
}

func (usecase *ClubUsecase) ListFounderCandidates(ctx context.Context, userId uuid.UUID, clubIdParam string, query string) (model.FounderCandidateListResponse, error) {
	response := model.FounderCandidateListResponse{}

	clubId, err := parseId(clubIdParam, "clubId", "club")
	if err != nil {
		return response, err
	}

	actor, err := usecase.AccessUsecase.GetActor(ctx, userId)
	if err != nil {
		return response, err
	}

	err = usecase.AccessUsecase.Authorize(ctx, actor, uuid.Nil, OperationListFounderCandidates)
	if err != nil {
		return response, err
	}

	_, err = findClub(ctx, usecase.ClubRepository, usecase.Log, clubId)
	if err != nil {
		return response, err
	}

	candidates, err := usecase.UserRepository.SearchFounderCandidates(ctx, query, constant.FOUNDER_CANDIDATE_LIMIT)
	if err != nil {
		return response, err
	}

	response.Data = candidates
	response.Query = query

	return response, nil
}

func (usecase *ClubUsecase) ListClubs(ctx context.Context, limit int, cursor string) (model.ClubListResponse, error) {
	response := model.ClubListResponse{}

	err := util.ValidateLimit(limit)
	if err != nil {
		return response, err
	}

	clubCursor := model.ClubCursor{}
	err = util.DecodeCursor(cursor, &clubCursor)
	if err != nil {
		return response, err
	}

	clubs, err := usecase.ClubRepository.ListClubs(ctx, limit+1, &clubCursor)
	if err != nil {
		return response, err
	}

	hasMore := len(clubs) > limit
	if hasMore {
		clubs = clubs[:limit]
	}

	response.Data = make([]model.ClubResponse, 0, len(clubs))
	for _, club := range clubs {
		response.Data = append(response.Data, toClubResponse(usecase.Config, club, nil))
	}

	if hasMore {
		last := clubs[len(clubs)-1]
		response.Page.NextCursor, err = util.EncodeCursor(model.ClubCursor{
			Id:             last.Id.String(),
			CreateDatetime: last.CreateDatetime,
		})
		if err != nil {
			return response, err
		}
	}

	return response, nil
}

func (usecase *ClubUsecase) SearchClubs(ctx context.Context, query string) (model.ClubListResponse, error) {
	response := model.ClubListResponse{}

	clubs, err := usecase.ClubRepository.SearchClubs(ctx, query, constant.MAX_LIMIT)
	if err != nil {
		return response, err
	}

	response.Data = make([]model.ClubResponse, 0, len(clubs))
	for _, club := range clubs {
		response.Data = append(response.Data, toClubResponse(usecase.Config, club, nil))
	}

	return response, nil
}

// GetClubDetail returns the club with founders, events, latest announcements
// and, when userId is not uuid.Nil, the caller's standing in the club.
func (usecase *ClubUsecase) GetClubDetail(ctx context.Context, userId uuid.UUID, clubIdParam string) (model.ClubDetailResponse, error) {
	response := model.ClubDetailResponse{}

	clubId, err := parseId(clubIdParam, "clubId", "club")
	if err != nil {
		return response, err
	}

	club, err := findClub(ctx, usecase.ClubRepository, usecase.Log, clubId)
	if err != nil {
		return response, err
	}

	founders, err := usecase.ClubRepository.GetClubFounders(ctx, clubId)
	if err != nil {
		return response, err
	}

	events, err := usecase.EventRepository.ListClubEvents(ctx, clubId)
	if err != nil {
		return response, err
	}

	announcements, err := usecase.AnnouncementRepository.ListClubAnnouncements(ctx, clubId, constant.LATEST_ANNOUNCEMENT_LIMIT)
	if err != nil {
		return response, err
	}

	response.Club = toClubResponse(usecase.Config, club, founders)

	response.Events = make([]model.EventResponse, 0, len(events))
	for _, event := range events {
		response.Events = append(response.Events, toEventResponse(usecase.Config, event))
	}

	response.Announcements = make([]model.AnnouncementResponse, 0, len(announcements))
	for _, announcement := range announcements {
		response.Announcements = append(response.Announcements, toAnnouncementResponse(announcement))
	}

	if userId == uuid.Nil {
		return response, nil
	}

	for _, founder := range founders {
		if founder.Id == userId {
			response.IsFounder = true
			break
		}
	}

	membership, err := usecase.MembershipRepository.FindMembership(ctx, userId, clubId)
	if err != nil {
		return response, err
	}

	if membership.Id != uuid.Nil {
		status := membership.Status
		response.MembershipStatus = &status
		response.IsMember = status == model.MembershipStatusApproved
	}

	return response, nil
}

func (usecase *ClubUsecase) EditClub(ctx context.Context, userId uuid.UUID, clubIdParam string, payload model.ClubUpdateRequest) (model.ActionResponse, error) {
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

	err = usecase.AccessUsecase.Authorize(ctx, actor, clubId, OperationEditClub)
	if err != nil {
		return response, err
	}

	fields, err := validateClubFields(payload.Name, payload.ShortDescription, payload.LongDescription, payload.DomainTags, payload.FacultyAdvisor)
	if err != nil {
		return response, err
	}

	club.Name = fields.name
	club.ShortDescription = fields.shortDescription
	club.LongDescription = fields.longDescription
	club.DomainTags = fields.domainTags
	club.FacultyAdvisor = fields.facultyAdvisor
	club.UpdateDatetime = time.Now().UTC()
	club.UpdateUserId = userId

	err = usecase.ClubRepository.UpdateClub(ctx, club)
	if err != nil {
		return response, err
	}

	usecase.invalidateClub(ctx, clubId)

	response.Message = fmt.Sprintf("Club '%s' has been updated successfully", club.Name)
	response.Redirect = clubRedirect(clubId)
	response.Data = toClubResponse(usecase.Config, club, nil)

	return response, nil
}

func (usecase *ClubUsecase) UpdateClubLogo(ctx context.Context, userId uuid.UUID, clubIdParam string, fileHeader *multipart.FileHeader) (model.ActionResponse, error) {
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

	err = usecase.AccessUsecase.Authorize(ctx, actor, clubId, OperationUpdateClubLogo)
	if err != nil {
		return response, err
	}

	fieldName := "logo"
	if fileHeader == nil {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Logo is required to not be empty",
			Param:   fieldName,
		}
	}

	imageFile, imageSize, err := util.ValidateImage(fileHeader, fieldName, util.ClubLogoSize)
	if err != nil {
		return response, err
	}

	objectKey := util.GenerateObjectKey("clubs", clubId, "logo") + ".webp"

	err = usecase.MediaRepository.UploadImageObject(ctx, objectKey, imageFile, imageSize)
	if err != nil {
		return response, err
	}

	err = usecase.ClubRepository.UpdateClubLogo(ctx, clubId, objectKey, userId, time.Now().UTC())
	if err != nil {
		return response, err
	}

	usecase.invalidateClub(ctx, clubId)

	if club.LogoObjectKey != nil {
		err = usecase.MediaRepository.DeleteImageObject(ctx, *club.LogoObjectKey)
		if err != nil {
			observability.WithContext(ctx, usecase.Log).Warn("failed to delete previous club logo",
				zap.String("object_key", *club.LogoObjectKey),
				zap.Error(err),
			)
		}
	}

	club.LogoObjectKey = &objectKey

	response.Message = "Club logo has been updated successfully"
	response.Redirect = clubRedirect(clubId)
	response.Data = toClubResponse(usecase.Config, club, nil)

	return response, nil
}

func (usecase *ClubUsecase) invalidateClub(ctx context.Context, clubId uuid.UUID) {
	err := usecase.ClubRepository.DeleteClubFromCache(ctx, clubId)
	if err != nil {
		observability.WithContext(ctx, usecase.Log).Warn("failed to invalidate club cache",
			zap.String("club_id", clubId.String()),
			zap.Error(err),
		)
	}
}
