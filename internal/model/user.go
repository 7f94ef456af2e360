package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleFounder Role = "founder"
	RoleStudent Role = "student"
)

type UserRegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
	Password string `json:"password"`
}

type UserLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserResponse struct {
	Id               string     `json:"id"`
	Username         string     `json:"username"`
	Fullname         string     `json:"fullname"`
	Email            string     `json:"email"`
	Role             Role       `json:"role"`
	IsStaff          bool       `json:"isStaff"`
	LastSeenDatetime *time.Time `json:"lastSeenDatetime"`
	CreateDatetime   time.Time  `json:"createDatetime"`
	UpdateDatetime   time.Time  `json:"updateDatetime"`
}

// UserSummary is the public projection of a user shown next to club data.
type UserSummary struct {
	Id       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Fullname string    `json:"fullname"`
	Role     Role      `json:"role"`
}

type FounderCandidateResponse struct {
	Id       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Fullname string    `json:"fullname"`
	Email    string    `json:"email"`
	Role     Role      `json:"role"`
}

type User struct {
	Id               uuid.UUID
	Username         string
	Fullname         string
	Email            string
	Password         string
	Role             Role
	IsStaff          bool
	LastSeenDatetime *time.Time
	CreateDatetime   time.Time
	UpdateDatetime   time.Time
	CreateUserId     uuid.UUID
	UpdateUserId     uuid.UUID
}

func (user User) ToResponse() UserResponse {
	return UserResponse{
		Id:               user.Id.String(),
		Username:         user.Username,
		Fullname:         user.Fullname,
		Email:            user.Email,
		Role:             user.Role,
		IsStaff:          user.IsStaff,
		LastSeenDatetime: user.LastSeenDatetime,
		CreateDatetime:   user.CreateDatetime,
		UpdateDatetime:   user.UpdateDatetime,
	}
}
