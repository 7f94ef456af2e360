package model

import (
	"time"

	"github.com/google/uuid"
)

// Announcement with a nil ClubId is global.
type Announcement struct {
	Id             uuid.UUID
	ClubId         *uuid.UUID
	Title          string
	Content        string
	CreateDatetime time.Time
	CreateUserId   uuid.UUID
}

type AnnouncementCreateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type AnnouncementResponse struct {
	Id             uuid.UUID  `json:"id"`
	ClubId         *uuid.UUID `json:"clubId"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	CreateDatetime time.Time  `json:"createDatetime"`
}

type AnnouncementListResponse struct {
	Data []AnnouncementResponse `json:"data"`
}
