package model

import (
	"time"

	"github.com/google/uuid"
)

type MembershipStatus string

const (
	MembershipStatusPending  MembershipStatus = "pending"
	MembershipStatusApproved MembershipStatus = "approved"
	MembershipStatusRejected MembershipStatus = "rejected"
)

func (status MembershipStatus) IsValid() bool {
	switch status {
	case MembershipStatusPending, MembershipStatusApproved, MembershipStatusRejected:
		return true
	}
	return false
}

// Membership is unique per (UserId, ClubId).
type Membership struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	ClubId         uuid.UUID
	Status         MembershipStatus
	JoinedDatetime time.Time
	UpdateDatetime time.Time
	UpdateUserId   uuid.UUID
}

type MembershipResponse struct {
	Id             uuid.UUID        `json:"id"`
	UserId         uuid.UUID        `json:"userId"`
	Username       string           `json:"username"`
	ClubId         uuid.UUID        `json:"clubId"`
	ClubName       string           `json:"clubName"`
	Status         MembershipStatus `json:"status"`
	JoinedDatetime time.Time        `json:"joinedDatetime"`
	UpdateDatetime time.Time        `json:"updateDatetime"`
}

type MembershipListResponse struct {
	Data []MembershipResponse `json:"data"`
}

// ActionResponse is returned by state changing operations: a message for the
// user and where the client should navigate next.
type ActionResponse struct {
	Message  string      `json:"message"`
	Redirect string      `json:"redirect"`
	Data     interface{} `json:"data,omitempty"`
}
