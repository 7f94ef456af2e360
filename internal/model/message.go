package model

import (
	"time"

	"github.com/google/uuid"
)

// Message is immutable after creation except for IsRead.
type Message struct {
	Id             uuid.UUID
	SenderId       uuid.UUID
	ReceiverId     uuid.UUID
	ClubId         *uuid.UUID
	Content        string
	IsRead         bool
	CreateDatetime time.Time
}

type MessageCreateRequest struct {
	ReceiverId string `json:"receiverId"`
	Content    string `json:"content"`
}

type MessageResponse struct {
	Id               uuid.UUID  `json:"id"`
	SenderId         uuid.UUID  `json:"senderId"`
	SenderUsername   string     `json:"senderUsername"`
	ReceiverId       uuid.UUID  `json:"receiverId"`
	ReceiverUsername string     `json:"receiverUsername"`
	ClubId           *uuid.UUID `json:"clubId"`
	Content          string     `json:"content"`
	IsRead           bool       `json:"isRead"`
	CreateDatetime   time.Time  `json:"createDatetime"`
}

type MessageListResponse struct {
	Data []MessageResponse `json:"data"`
}

type ClubChatResponse struct {
	ClubId     uuid.UUID         `json:"clubId"`
	IsFounder  bool              `json:"isFounder"`
	Members    []UserSummary     `json:"members"`
	Recipients []UserSummary     `json:"recipients"`
	Messages   []MessageResponse `json:"messages"`
}
