package usecase

import (
	"bytes"
	"context"
	"time"

	"github.com/ferdian3456/clubconnect/internal/model"
	"github.com/google/uuid"
)

// The interfaces below are satisfied by the pgx/redis/minio backed types in
// internal/repository. Method names are unique across interfaces.

type UserRepository interface {
	Register(ctx context.Context, user model.User) error
	CheckUsernameOrEmailUnique(ctx context.Context, username string, email string) (string, string, error)
	GetUserAuth(ctx context.Context, username string) (uuid.UUID, string, error)
	FindUserById(ctx context.Context, id uuid.UUID) (model.User, error)
	FindUserByUsername(ctx context.Context, username string) (model.User, error)
	UpdateUserRole(ctx context.Context, userId uuid.UUID, role model.Role, isStaff bool, updateUserId uuid.UUID, updateDatetime time.Time) error
	UpdateLastSeen(ctx context.Context, userId uuid.UUID, lastSeen time.Time) error
	SearchFounderCandidates(ctx context.Context, query string, limit int) ([]model.FounderCandidateResponse, error)
	ListUsersByRole(ctx context.Context, role model.Role) ([]model.UserSummary, error)
	SetAuthTokenInCache(ctx context.Context, accessToken string, refreshToken string, userId uuid.UUID) error
	GetAccessTokenInCache(ctx context.Context, userId uuid.UUID) (string, error)
	RemoveAuthToken(ctx context.Context, userId uuid.UUID) error
}

type ClubRepository interface {
	CreateClub(ctx context.Context, club model.Club) error
	FindClubById(ctx context.Context, clubId uuid.UUID) (model.Club, error)
	UpdateClub(ctx context.Context, club model.Club) error
	UpdateClubLogo(ctx context.Context, clubId uuid.UUID, objectKey string, updateUserId uuid.UUID, updateDatetime time.Time) error
	ListClubs(ctx context.Context, limit int, cursor *model.ClubCursor) ([]model.Club, error)
	SearchClubs(ctx context.Context, search string, limit int) ([]model.Club, error)
	GetClubFounders(ctx context.Context, clubId uuid.UUID) ([]model.UserSummary, error)
	CheckClubFounder(ctx context.Context, clubId uuid.UUID, userId uuid.UUID) (int, error)
	AssignFounder(ctx context.Context, clubId uuid.UUID, userId uuid.UUID, promote bool, actorId uuid.UUID, now time.Time) error
	GetClubFromCache(ctx context.Context, clubId uuid.UUID) (model.Club, bool, error)
	SetClubInCache(ctx context.Context, club model.Club) error
	DeleteClubFromCache(ctx context.Context, clubId uuid.UUID) error
}

type MembershipRepository interface {
	CreateMembership(ctx context.Context, membership model.Membership) error
	FindMembershipById(ctx context.Context, membershipId uuid.UUID) (model.Membership, error)
	FindMembership(ctx context.Context, userId uuid.UUID, clubId uuid.UUID) (model.Membership, error)
	UpdateMembershipStatus(ctx context.Context, membershipId uuid.UUID, status model.MembershipStatus, updateUserId uuid.UUID, updateDatetime time.Time) error
	DeleteMembership(ctx context.Context, membershipId uuid.UUID) error
	CheckApprovedMember(ctx context.Context, clubId uuid.UUID, userId uuid.UUID) (int, error)
	ListClubMemberships(ctx context.Context, clubId uuid.UUID, status model.MembershipStatus) ([]model.MembershipResponse, error)
	ListUserMemberships(ctx context.Context, userId uuid.UUID) ([]model.MembershipResponse, error)
	ListApprovedMemberUsers(ctx context.Context, clubId uuid.UUID) ([]model.UserSummary, error)
}

type EventRepository interface {
	CreateEvent(ctx context.Context, event model.Event) error
	FindEventById(ctx context.Context, eventId uuid.UUID) (model.Event, error)
	UpdateEventImage(ctx context.Context, eventId uuid.UUID, objectKey string, updateUserId uuid.UUID, updateDatetime time.Time) error
	ListClubEvents(ctx context.Context, clubId uuid.UUID) ([]model.Event, error)
}

type AnnouncementRepository interface {
	CreateAnnouncement(ctx context.Context, announcement model.Announcement) error
	FindAnnouncementById(ctx context.Context, announcementId uuid.UUID) (model.Announcement, error)
	DeleteAnnouncement(ctx context.Context, announcementId uuid.UUID) error
	ListClubAnnouncements(ctx context.Context, clubId uuid.UUID, limit int) ([]model.Announcement, error)
	ListGlobalAnnouncements(ctx context.Context, limit int) ([]model.Announcement, error)
}

type MessageRepository interface {
	CreateMessage(ctx context.Context, message model.Message) error
	FindMessageById(ctx context.Context, messageId uuid.UUID) (model.Message, error)
	MarkMessageRead(ctx context.Context, messageId uuid.UUID) error
	ListClubMessages(ctx context.Context, clubId uuid.UUID) ([]model.MessageResponse, error)
	ListReceivedMessages(ctx context.Context, userId uuid.UUID, limit int) ([]model.MessageResponse, error)
}

type PostRepository interface {
	CreatePost(ctx context.Context, post model.ClubPost) error
	FindPostById(ctx context.Context, postId uuid.UUID) (model.ClubPost, error)
	ListClubPosts(ctx context.Context, clubId uuid.UUID, limit int, cursor *model.ClubPostCursor) ([]model.ClubPostResponse, error)
	CreatePostLike(ctx context.Context, like model.ClubPostLike) error
	DeletePostLike(ctx context.Context, postId uuid.UUID, userId uuid.UUID) (bool, error)
}

type MediaRepository interface {
	UploadImageObject(ctx context.Context, objectKey string, imageFile *bytes.Reader, imageSize int64) error
	DeleteImageObject(ctx context.Context, objectKey string) error
}
