package model

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	Id             uuid.UUID
	ClubId         uuid.UUID
	Title          string
	Description    string
	Location       string
	StartDatetime  time.Time
	EndDatetime    time.Time
	ImageObjectKey *string
	CreateDatetime time.Time
	UpdateDatetime time.Time
	CreateUserId   uuid.UUID
	UpdateUserId   uuid.UUID
}

type EventCreateRequest struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	StartDatetime time.Time `json:"startDatetime"`
	EndDatetime   time.Time `json:"endDatetime"`
}

type EventResponse struct {
	Id            uuid.UUID `json:"id"`
	ClubId        uuid.UUID `json:"clubId"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	StartDatetime time.Time `json:"startDatetime"`
	EndDatetime   time.Time `json:"endDatetime"`
	ImageUrl      *string   `json:"imageUrl"`
}
