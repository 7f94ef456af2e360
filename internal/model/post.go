package model

import (
	"time"

	"github.com/google/uuid"
)

type ClubPost struct {
	Id             uuid.UUID
	ClubId         uuid.UUID
	AuthorId       uuid.UUID
	Content        string
	LikeCount      int
	CreateDatetime time.Time
	UpdateDatetime time.Time
	CreateUserId   uuid.UUID
	UpdateUserId   uuid.UUID
}

type ClubPostLike struct {
	PostId         uuid.UUID
	UserId         uuid.UUID
	CreateDatetime time.Time
}

type ClubPostCreateRequest struct {
	Content string `json:"content"`
}

type ClubPostCursor struct {
	Id             string    `json:"id"`
	CreateDatetime time.Time `json:"createDatetime"`
}

type ClubPostResponse struct {
	Id             uuid.UUID `json:"id"`
	ClubId         uuid.UUID `json:"clubId"`
	AuthorId       uuid.UUID `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
	Content        string    `json:"content"`
	LikeCount      int       `json:"likeCount"`
	CreateDatetime time.Time `json:"createDatetime"`
	UpdateDatetime time.Time `json:"updateDatetime"`
}

type ClubPostListResponse struct {
	Data []ClubPostResponse `json:"data"`
	Page PageResponse       `json:"page"`
}
