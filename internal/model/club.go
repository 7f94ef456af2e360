package model

import (
	"time"

	"github.com/google/uuid"
)

type Club struct {
	Id               uuid.UUID
	Name             string
	ShortDescription string
	LongDescription  string
	DomainTags       string
	FacultyAdvisor   *string
	LogoObjectKey    *string
	CreateDatetime   time.Time
	UpdateDatetime   time.Time
	CreateUserId     uuid.UUID
	UpdateUserId     uuid.UUID
}

type ClubCreateRequest struct {
	Name             string  `json:"name"`
	ShortDescription string  `json:"shortDescription"`
	LongDescription  string  `json:"longDescription"`
	DomainTags       string  `json:"domainTags"`
	FacultyAdvisor   *string `json:"facultyAdvisor"`
}

type ClubUpdateRequest struct {
	Name             string  `json:"name"`
	ShortDescription string  `json:"shortDescription"`
	LongDescription  string  `json:"longDescription"`
	DomainTags       string  `json:"domainTags"`
	FacultyAdvisor   *string `json:"facultyAdvisor"`
}

type ClubAssignFounderRequest struct {
	FounderId string `json:"founderId"`
}

type ClubResponse struct {
	Id               uuid.UUID     `json:"id"`
	Name             string        `json:"name"`
	ShortDescription string        `json:"shortDescription"`
	LongDescription  string        `json:"longDescription"`
	DomainTags       []string      `json:"domainTags"`
	FacultyAdvisor   *string       `json:"facultyAdvisor"`
	LogoUrl          *string       `json:"logoUrl"`
	Founders         []UserSummary `json:"founders,omitempty"`
	CreateDatetime   time.Time     `json:"createDatetime"`
	UpdateDatetime   time.Time     `json:"updateDatetime"`
}

type ClubDetailResponse struct {
	Club             ClubResponse           `json:"club"`
	Events           []EventResponse        `json:"events"`
	Announcements    []AnnouncementResponse `json:"announcements"`
	IsMember         bool                   `json:"isMember"`
	IsFounder        bool                   `json:"isFounder"`
	MembershipStatus *MembershipStatus      `json:"membershipStatus"`
}

type ClubCursor struct {
	Id             string    `json:"id"`
	CreateDatetime time.Time `json:"createDatetime"`
}

type PageResponse struct {
	NextCursor string `json:"nextCursor"`
}

type ClubListResponse struct {
	Data []ClubResponse `json:"data"`
	Page PageResponse   `json:"page"`
}

type FounderCandidateListResponse struct {
	Data  []FounderCandidateResponse `json:"data"`
	Query string                     `json:"query"`
}
