package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ferdian3456/clubconnect/internal/constant"
	"github.com/ferdian3456/clubconnect/internal/model"
	"github.com/ferdian3456/clubconnect/internal/observability"
	"github.com/ferdian3456/clubconnect/internal/util"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxMessageLength = 2000

type MessageUsecase struct {
	AccessUsecase        *AccessUsecase
	UserRepository       UserRepository
	ClubRepository       ClubRepository
	MembershipRepository MembershipRepository
	MessageRepository    MessageRepository
	Log                  *zap.Logger
}

func NewMessageUsecase(accessUsecase *AccessUsecase, userRepository UserRepository, clubRepository ClubRepository, membershipRepository MembershipRepository, messageRepository MessageRepository, zap *zap.Logger) *MessageUsecase {
	return &MessageUsecase{
		AccessUsecase:        accessUsecase,
		UserRepository:       userRepository,
		ClubRepository:       clubRepository,
		MembershipRepository: membershipRepository,
		MessageRepository:    messageRepository,
		Log:                  zap,
	}
}

func chatRedirect(clubId uuid.UUID) string {
	return fmt.Sprintf("/clubs/%s/chat", clubId)
}

// MessageFounder sends a direct message to one founder of the club. The
// message is not part of the club chat.
func (usecase *MessageUsecase) MessageFounder(ctx context.Context, userId uuid.UUID, clubIdParam string, payload model.MessageCreateRequest) (model.ActionResponse, error) {
	response := model.ActionResponse{}

	clubId, err := parseId(clubIdParam, "clubId", "club")
	if err != nil {
		return response, err
	}

	_, err = findClub(ctx, usecase.ClubRepository, usecase.Log, clubId)
	if err != nil {
		return response, err
	}

	receiverId, err := parseId(payload.ReceiverId, "receiverId", "receiver")
	if err != nil {
		return response, err
	}

	content, err := validateText(payload.Content, "content", "Content", maxMessageLength)
	if err != nil {
		return response, err
	}

	isFounder, err := usecase.AccessUsecase.IsFounderOf(ctx, receiverId, clubId)
	if err != nil {
		return response, err
	}

	if !isFounder {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Receiver must be a founder of this club",
			Param:   "receiverId",
		}
	}

	message, err := usecase.createMessage(ctx, userId, receiverId, nil, content)
	if err != nil {
		return response, err
	}

	response.Message = "Your message has been sent to the club founder"
	response.Redirect = clubRedirect(clubId)
	response.Data = message

	return response, nil
}

// GetClubChat returns the club conversation and who the caller may write to:
// founders for members, approved members and admins for founders.
func (usecase *MessageUsecase) GetClubChat(ctx context.Context, userId uuid.UUID, clubIdParam string) (model.ClubChatResponse, error) {
	response := model.ClubChatResponse{}

	clubId, isFounder, members, recipients, err := usecase.openChat(ctx, userId, clubIdParam)
	if err != nil {
		return response, err
	}

	messages, err := usecase.MessageRepository.ListClubMessages(ctx, clubId)
	if err != nil {
		return response, err
	}

	response.ClubId = clubId
	response.IsFounder = isFounder
	response.Members = members
	response.Recipients = recipients
	response.Messages = messages

	return response, nil
}

func (usecase *MessageUsecase) SendChatMessage(ctx context.Context, userId uuid.UUID, clubIdParam string, payload model.MessageCreateRequest) (model.ActionResponse, error) {
	response := model.ActionResponse{}

	clubId, _, _, recipients, err := usecase.openChat(ctx, userId, clubIdParam)
	if err != nil {
		return response, err
	}

	invalidRecipient := &model.ValidationError{
		Code:     constant.ERR_VALIDATION_CODE,
		Message:  "Please select a recipient and enter a message",
		Param:    "receiverId",
		Redirect: chatRedirect(clubId),
	}

	receiverId, err := uuid.Parse(payload.ReceiverId)
	if err != nil {
		return response, invalidRecipient
	}

	allowed := false
	for _, recipient := range recipients {
		if recipient.Id == receiverId {
			allowed = true
			break
		}
	}

	if !allowed {
		return response, invalidRecipient
	}

	content, err := validateText(payload.Content, "content", "Content", maxMessageLength)
	if err != nil {
		return response, err
	}

	message, err := usecase.createMessage(ctx, userId, receiverId, &clubId, content)
	if err != nil {
		return response, err
	}

	response.Message = "Message sent"
	response.Redirect = chatRedirect(clubId)
	response.Data = message

	return response, nil
}

func (usecase *MessageUsecase) openChat(ctx context.Context, userId uuid.UUID, clubIdParam string) (uuid.UUID, bool, []model.UserSummary, []model.UserSummary, error) {
	clubId, err := parseId(clubIdParam, "clubId", "club")
	if err != nil {
		return clubId, false, nil, nil, err
	}

	_, err = findClub(ctx, usecase.ClubRepository, usecase.Log, clubId)
	if err != nil {
		return clubId, false, nil, nil, err
	}

	actor, err := usecase.AccessUsecase.GetActor(ctx, userId)
	if err != nil {
		return clubId, false, nil, nil, err
	}

	err = usecase.AccessUsecase.Authorize(ctx, actor, clubId, OperationClubChat)
	if err != nil {
		return clubId, false, nil, nil, err
	}

	isFounder, err := usecase.AccessUsecase.IsFounderOf(ctx, userId, clubId)
	if err != nil {
		return clubId, false, nil, nil, err
	}

	members, err := usecase.MembershipRepository.ListApprovedMemberUsers(ctx, clubId)
	if err != nil {
		return clubId, false, nil, nil, err
	}

	var candidates []model.UserSummary
	if isFounder {
		admins, err := usecase.UserRepository.ListUsersByRole(ctx, model.RoleAdmin)
		if err != nil {
			return clubId, false, nil, nil, err
		}
		candidates = append(candidates, members...)
		candidates = append(candidates, admins...)
	} else {
		candidates, err = usecase.ClubRepository.GetClubFounders(ctx, clubId)
		if err != nil {
			return clubId, false, nil, nil, err
		}
	}

	return clubId, isFounder, members, distinctRecipients(candidates, userId), nil
}

// distinctRecipients drops duplicates and self, ordered by username.
func distinctRecipients(users []model.UserSummary, self uuid.UUID) []model.UserSummary {
	seen := make(map[uuid.UUID]bool, len(users))
	recipients := make([]model.UserSummary, 0, len(users))

	for _, user := range users {
		if user.Id == self || seen[user.Id] {
			continue
		}
		seen[user.Id] = true
		recipients = append(recipients, user)
	}

	sort.Slice(recipients, func(i, j int) bool {
		return recipients[i].Username < recipients[j].Username
	})

	return recipients
}

func (usecase *MessageUsecase) createMessage(ctx context.Context, senderId uuid.UUID, receiverId uuid.UUID, clubId *uuid.UUID, content string) (model.MessageResponse, error) {
	message := model.Message{
		Id:             uuid.New(),
		SenderId:       senderId,
		ReceiverId:     receiverId,
		ClubId:         clubId,
		Content:        content,
		IsRead:         false,
		CreateDatetime: time.Now().UTC(),
	}

	err := usecase.MessageRepository.CreateMessage(ctx, message)
	if err != nil {
		return model.MessageResponse{}, err
	}

	observability.WithContext(ctx, usecase.Log).Debug("message sent",
		zap.String("message_id", message.Id.String()),
		zap.String("sender_id", senderId.String()),
		zap.String("receiver_id", receiverId.String()),
	)

	return model.MessageResponse{
		Id:             message.Id,
		SenderId:       message.SenderId,
		ReceiverId:     message.ReceiverId,
		ClubId:         message.ClubId,
		Content:        message.Content,
		IsRead:         message.IsRead,
		CreateDatetime: message.CreateDatetime,
	}, nil
}

func (usecase *MessageUsecase) ListInbox(ctx context.Context, userId uuid.UUID, limit int) (model.MessageListResponse, error) {
	response := model.MessageListResponse{}

	err := util.ValidateLimit(limit)
	if err != nil {
		return response, err
	}

	messages, err := usecase.MessageRepository.ListReceivedMessages(ctx, userId, limit)
	if err != nil {
		return response, err
	}

	response.Data = messages

	return response, nil
}

func (usecase *MessageUsecase) MarkMessageRead(ctx context.Context, userId uuid.UUID, messageIdParam string) error {
	messageId, err := parseId(messageIdParam, "messageId", "message")
	if err != nil {
		return err
	}

	message, err := usecase.MessageRepository.FindMessageById(ctx, messageId)
	if err != nil {
		return err
	}

	if message.Id == uuid.Nil {
		return notFound("Message is not found", "messageId", "/messages")
	}

	if message.ReceiverId != userId {
		return &model.ValidationError{
			Code:    constant.ERR_FORBIDDEN_ERROR,
			Message: "You can only mark your own messages as read",
			Param:   "messageId",
		}
	}

	if message.IsRead {
		return nil
	}

	return usecase.MessageRepository.MarkMessageRead(ctx, messageId)
}
