package usecase

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ferdian3456/clubconnect/internal/constant"
	"github.com/ferdian3456/clubconnect/internal/model"
	"github.com/ferdian3456/clubconnect/internal/util"
	"github.com/google/uuid"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type likeKey struct {
	postId uuid.UUID
	userId uuid.UUID
}

// memoryStore implements every repository interface in memory. The unique
// constraints of the schema are enforced under mu.
type memoryStore struct {
	mu            sync.Mutex
	users         map[uuid.UUID]model.User
	clubs         map[uuid.UUID]model.Club
	founders      map[uuid.UUID]map[uuid.UUID]bool
	memberships   map[uuid.UUID]model.Membership
	events        map[uuid.UUID]model.Event
	announcements map[uuid.UUID]model.Announcement
	messages      map[uuid.UUID]model.Message
	posts         map[uuid.UUID]model.ClubPost
	likes         map[likeKey]bool
	tokens        map[uuid.UUID]string
	clubCache     map[uuid.UUID]model.Club
	objects       map[string]int64
	clock         time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:         map[uuid.UUID]model.User{},
		clubs:         map[uuid.UUID]model.Club{},
		founders:      map[uuid.UUID]map[uuid.UUID]bool{},
		memberships:   map[uuid.UUID]model.Membership{},
		events:        map[uuid.UUID]model.Event{},
		announcements: map[uuid.UUID]model.Announcement{},
		messages:      map[uuid.UUID]model.Message{},
		posts:         map[uuid.UUID]model.ClubPost{},
		likes:         map[likeKey]bool{},
		tokens:        map[uuid.UUID]string{},
		clubCache:     map[uuid.UUID]model.Club{},
		objects:       map[string]int64{},
		clock:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns strictly increasing timestamps so orderings are stable.
func (store *memoryStore) tick() time.Time {
	store.clock = store.clock.Add(time.Second)
	return store.clock
}

func (store *memoryStore) summary(userId uuid.UUID) model.UserSummary {
	user := store.users[userId]
	return model.UserSummary{Id: user.Id, Username: user.Username, Fullname: user.Fullname, Role: user.Role}
}

func sortSummaries(users []model.UserSummary) {
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
}

// Users

func (store *memoryStore) Register(ctx context.Context, user model.User) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, existing := range store.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return model.ErrDuplicate
		}
	}
	store.users[user.Id] = user
	return nil
}

func (store *memoryStore) CheckUsernameOrEmailUnique(ctx context.Context, username string, email string) (string, string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	var existUsername, existEmail string
	for _, user := range store.users {
		if user.Username == username {
			existUsername = user.Username
		}
		if user.Email == email {
			existEmail = user.Email
		}
	}
	return existUsername, existEmail, nil
}

func (store *memoryStore) GetUserAuth(ctx context.Context, username string) (uuid.UUID, string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, user := range store.users {
		if user.Username == username {
			return user.Id, user.Password, nil
		}
	}
	return uuid.Nil, "", &model.ValidationError{
		Code:    constant.ERR_VALIDATION_CODE,
		Message: "Username is not found",
		Param:   "username",
	}
}

func (store *memoryStore) FindUserById(ctx context.Context, id uuid.UUID) (model.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.users[id], nil
}

func (store *memoryStore) FindUserByUsername(ctx context.Context, username string) (model.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, user := range store.users {
		if user.Username == username {
			return user, nil
		}
	}
	return model.User{}, nil
}

func (store *memoryStore) UpdateUserRole(ctx context.Context, userId uuid.UUID, role model.Role, isStaff bool, updateUserId uuid.UUID, updateDatetime time.Time) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	user := store.users[userId]
	user.Role = role
	user.IsStaff = isStaff
	user.UpdateUserId = updateUserId
	user.UpdateDatetime = updateDatetime
	store.users[userId] = user
	return nil
}

func (store *memoryStore) UpdateLastSeen(ctx context.Context, userId uuid.UUID, lastSeen time.Time) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	user := store.users[userId]
	user.LastSeenDatetime = &lastSeen
	store.users[userId] = user
	return nil
}

func (store *memoryStore) SearchFounderCandidates(ctx context.Context, query string, limit int) ([]model.FounderCandidateResponse, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	query = strings.ToLower(query)
	candidates := []model.FounderCandidateResponse{}
	for _, user := range store.users {
		if query == "" && user.Role != model.RoleFounder {
			continue
		}
		if query != "" {
			if user.Role == model.RoleAdmin {
				continue
			}
			haystack := strings.ToLower(user.Username + " " + user.Email + " " + user.Fullname)
			if !strings.Contains(haystack, query) {
				continue
			}
		}
		candidates = append(candidates, model.FounderCandidateResponse{
			Id: user.Id, Username: user.Username, Fullname: user.Fullname, Email: user.Email, Role: user.Role,
		})
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Username < candidates[j].Username })
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

func (store *memoryStore) ListUsersByRole(ctx context.Context, role model.Role) ([]model.UserSummary, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	users := []model.UserSummary{}
	for id, user := range store.users {
		if user.Role == role {
			users = append(users, store.summary(id))
		}
	}
	sortSummaries(users)
	return users, nil
}

func (store *memoryStore) SetAuthTokenInCache(ctx context.Context, accessToken string, refreshToken string, userId uuid.UUID) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.tokens[userId] = util.HashToken(accessToken)
	return nil
}

func (store *memoryStore) GetAccessTokenInCache(ctx context.Context, userId uuid.UUID) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	hashed, ok := store.tokens[userId]
	if !ok {
		return "", &model.ValidationError{
			Code:    constant.ERR_UNATHORIZED_ERROR,
			Message: "Authorization token not found or expired",
			Param:   "accessToken",
		}
	}
	return hashed, nil
}

func (store *memoryStore) RemoveAuthToken(ctx context.Context, userId uuid.UUID) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.tokens, userId)
	return nil
}

// Clubs

func (store *memoryStore) CreateClub(ctx context.Context, club model.Club) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.clubs[club.Id] = club
	return nil
}

func (store *memoryStore) FindClubById(ctx context.Context, clubId uuid.UUID) (model.Club, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.clubs[clubId], nil
}

func (store *memoryStore) UpdateClub(ctx context.Context, club model.Club) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.clubs[club.Id] = club
	return nil
}

func (store *memoryStore) UpdateClubLogo(ctx context.Context, clubId uuid.UUID, objectKey string, updateUserId uuid.UUID, updateDatetime time.Time) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	club := store.clubs[clubId]
	club.LogoObjectKey = &objectKey
	club.UpdateUserId = updateUserId
	club.UpdateDatetime = updateDatetime
	store.clubs[clubId] = club
	return nil
}

func clubBefore(a model.Club, b model.Club) bool {
	if !a.CreateDatetime.Equal(b.CreateDatetime) {
		return a.CreateDatetime.After(b.CreateDatetime)
	}
	return a.Id.String() > b.Id.String()
}

func (store *memoryStore) ListClubs(ctx context.Context, limit int, cursor *model.ClubCursor) ([]model.Club, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	clubs := []model.Club{}
	for _, club := range store.clubs {
		if cursor.Id != "" {
			if !clubBefore(model.Club{Id: uuid.MustParse(cursor.Id), CreateDatetime: cursor.CreateDatetime}, club) {
				continue
			}
		}
		clubs = append(clubs, club)
	}

	sort.Slice(clubs, func(i, j int) bool { return clubBefore(clubs[i], clubs[j]) })
	if len(clubs) > limit {
		clubs = clubs[:limit]
	}
	return clubs, nil
}

func (store *memoryStore) SearchClubs(ctx context.Context, search string, limit int) ([]model.Club, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	search = strings.ToLower(search)
	clubs := []model.Club{}
	for _, club := range store.clubs {
		haystack := strings.ToLower(club.Name + " " + club.ShortDescription + " " + club.DomainTags)
		if strings.Contains(haystack, search) {
			clubs = append(clubs, club)
		}
	}

	sort.Slice(clubs, func(i, j int) bool { return clubs[i].Name < clubs[j].Name })
	if len(clubs) > limit {
		clubs = clubs[:limit]
	}
	return clubs, nil
}

func (store *memoryStore) GetClubFounders(ctx context.Context, clubId uuid.UUID) ([]model.UserSummary, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	founders := []model.UserSummary{}
	for userId := range store.founders[clubId] {
		founders = append(founders, store.summary(userId))
	}
	sortSummaries(founders)
	return founders, nil
}

func (store *memoryStore) CheckClubFounder(ctx context.Context, clubId uuid.UUID, userId uuid.UUID) (int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.founders[clubId][userId] {
		return 1, nil
	}
	return 0, nil
}

func (store *memoryStore) AssignFounder(ctx context.Context, clubId uuid.UUID, userId uuid.UUID, promote bool, actorId uuid.UUID, now time.Time) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if promote {
		user := store.users[userId]
		user.Role = model.RoleFounder
		user.UpdateUserId = actorId
		user.UpdateDatetime = now
		store.users[userId] = user
	}

	if store.founders[clubId] == nil {
		store.founders[clubId] = map[uuid.UUID]bool{}
	}
	store.founders[clubId][userId] = true
	return nil
}

func (store *memoryStore) GetClubFromCache(ctx context.Context, clubId uuid.UUID) (model.Club, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	club, ok := store.clubCache[clubId]
	return club, ok, nil
}

func (store *memoryStore) SetClubInCache(ctx context.Context, club model.Club) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.clubCache[club.Id] = club
	return nil
}

func (store *memoryStore) DeleteClubFromCache(ctx context.Context, clubId uuid.UUID) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.clubCache, clubId)
	return nil
}

// Memberships

func (store *memoryStore) CreateMembership(ctx context.Context, membership model.Membership) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, existing := range store.memberships {
		if existing.UserId == membership.UserId && existing.ClubId == membership.ClubId {
			return model.ErrDuplicate
		}
	}
	store.memberships[membership.Id] = membership
	return nil
}

func (store *memoryStore) FindMembershipById(ctx context.Context, membershipId uuid.UUID) (model.Membership, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.memberships[membershipId], nil
}

func (store *memoryStore) FindMembership(ctx context.Context, userId uuid.UUID, clubId uuid.UUID) (model.Membership, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, membership := range store.memberships {
		if membership.UserId == userId && membership.ClubId == clubId {
			return membership, nil
		}
	}
	return model.Membership{}, nil
}

func (store *memoryStore) UpdateMembershipStatus(ctx context.Context, membershipId uuid.UUID, status model.MembershipStatus, updateUserId uuid.UUID, updateDatetime time.Time) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	membership, ok := store.memberships[membershipId]
	if !ok {
		return nil
	}
	membership.Status = status
	membership.UpdateUserId = updateUserId
	membership.UpdateDatetime = updateDatetime
	store.memberships[membershipId] = membership
	return nil
}

func (store *memoryStore) DeleteMembership(ctx context.Context, membershipId uuid.UUID) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.memberships, membershipId)
	return nil
}

func (store *memoryStore) CheckApprovedMember(ctx context.Context, clubId uuid.UUID, userId uuid.UUID) (int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, membership := range store.memberships {
		if membership.UserId == userId && membership.ClubId == clubId && membership.Status == model.MembershipStatusApproved {
			return 1, nil
		}
	}
	return 0, nil
}

func (store *memoryStore) membershipResponse(membership model.Membership) model.MembershipResponse {
	return toMembershipResponse(membership, store.users[membership.UserId].Username, store.clubs[membership.ClubId].Name)
}

func (store *memoryStore) ListClubMemberships(ctx context.Context, clubId uuid.UUID, status model.MembershipStatus) ([]model.MembershipResponse, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	memberships := []model.MembershipResponse{}
	for _, membership := range store.memberships {
		if membership.ClubId != clubId || (status != "" && membership.Status != status) {
			continue
		}
		memberships = append(memberships, store.membershipResponse(membership))
	}
	sort.Slice(memberships, func(i, j int) bool { return memberships[i].JoinedDatetime.After(memberships[j].JoinedDatetime) })
	return memberships, nil
}

func (store *memoryStore) ListUserMemberships(ctx context.Context, userId uuid.UUID) ([]model.MembershipResponse, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	memberships := []model.MembershipResponse{}
	for _, membership := range store.memberships {
		if membership.UserId == userId {
			memberships = append(memberships, store.membershipResponse(membership))
		}
	}
	sort.Slice(memberships, func(i, j int) bool { return memberships[i].ClubName < memberships[j].ClubName })
	return memberships, nil
}

func (store *memoryStore) ListApprovedMemberUsers(ctx context.Context, clubId uuid.UUID) ([]model.UserSummary, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	users := []model.UserSummary{}
	for _, membership := range store.memberships {
		if membership.ClubId == clubId && membership.Status == model.MembershipStatusApproved {
			users = append(users, store.summary(membership.UserId))
		}
	}
	sortSummaries(users)
	return users, nil
}

// Events

func (store *memoryStore) CreateEvent(ctx context.Context, event model.Event) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.events[event.Id] = event
	return nil
}

func (store *memoryStore) FindEventById(ctx context.Context, eventId uuid.UUID) (model.Event, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.events[eventId], nil
}

func (store *memoryStore) UpdateEventImage(ctx context.Context, eventId uuid.UUID, objectKey string, updateUserId uuid.UUID, updateDatetime time.Time) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	event := store.events[eventId]
	event.ImageObjectKey = &objectKey
	event.UpdateUserId = updateUserId
	event.UpdateDatetime = updateDatetime
	store.events[eventId] = event
	return nil
}

func (store *memoryStore) ListClubEvents(ctx context.Context, clubId uuid.UUID) ([]model.Event, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	events := []model.Event{}
	for _, event := range store.events {
		if event.ClubId == clubId {
			events = append(events, event)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].StartDatetime.Before(events[j].StartDatetime) })
	return events, nil
}

// Announcements

func (store *memoryStore) CreateAnnouncement(ctx context.Context, announcement model.Announcement) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	announcement.CreateDatetime = store.tick()
	store.announcements[announcement.Id] = announcement
	return nil
}

func (store *memoryStore) FindAnnouncementById(ctx context.Context, announcementId uuid.UUID) (model.Announcement, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.announcements[announcementId], nil
}

func (store *memoryStore) DeleteAnnouncement(ctx context.Context, announcementId uuid.UUID) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.announcements, announcementId)
	return nil
}

func (store *memoryStore) listAnnouncements(limit int, match func(model.Announcement) bool) []model.Announcement {
	announcements := []model.Announcement{}
	for _, announcement := range store.announcements {
		if match(announcement) {
			announcements = append(announcements, announcement)
		}
	}
	sort.Slice(announcements, func(i, j int) bool {
		return announcements[i].CreateDatetime.After(announcements[j].CreateDatetime)
	})
	if len(announcements) > limit {
		announcements = announcements[:limit]
	}
	return announcements
}

func (store *memoryStore) ListClubAnnouncements(ctx context.Context, clubId uuid.UUID, limit int) ([]model.Announcement, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.listAnnouncements(limit, func(announcement model.Announcement) bool {
		return announcement.ClubId != nil && *announcement.ClubId == clubId
	}), nil
}

func (store *memoryStore) ListGlobalAnnouncements(ctx context.Context, limit int) ([]model.Announcement, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.listAnnouncements(limit, func(announcement model.Announcement) bool {
		return announcement.ClubId == nil
	}), nil
}

// Messages

func (store *memoryStore) CreateMessage(ctx context.Context, message model.Message) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	message.CreateDatetime = store.tick()
	store.messages[message.Id] = message
	return nil
}

func (store *memoryStore) FindMessageById(ctx context.Context, messageId uuid.UUID) (model.Message, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.messages[messageId], nil
}

func (store *memoryStore) MarkMessageRead(ctx context.Context, messageId uuid.UUID) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	message := store.messages[messageId]
	message.IsRead = true
	store.messages[messageId] = message
	return nil
}

func (store *memoryStore) messageResponse(message model.Message) model.MessageResponse {
	return model.MessageResponse{
		Id:               message.Id,
		SenderId:         message.SenderId,
		SenderUsername:   store.users[message.SenderId].Username,
		ReceiverId:       message.ReceiverId,
		ReceiverUsername: store.users[message.ReceiverId].Username,
		ClubId:           message.ClubId,
		Content:          message.Content,
		IsRead:           message.IsRead,
		CreateDatetime:   message.CreateDatetime,
	}
}

func (store *memoryStore) ListClubMessages(ctx context.Context, clubId uuid.UUID) ([]model.MessageResponse, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	messages := []model.MessageResponse{}
	for _, message := range store.messages {
		if message.ClubId != nil && *message.ClubId == clubId {
			messages = append(messages, store.messageResponse(message))
		}
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].CreateDatetime.Before(messages[j].CreateDatetime) })
	return messages, nil
}

func (store *memoryStore) ListReceivedMessages(ctx context.Context, userId uuid.UUID, limit int) ([]model.MessageResponse, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	messages := []model.MessageResponse{}
	for _, message := range store.messages {
		if message.ReceiverId == userId {
			messages = append(messages, store.messageResponse(message))
		}
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].CreateDatetime.After(messages[j].CreateDatetime) })
	if len(messages) > limit {
		messages = messages[:limit]
	}
	return messages, nil
}

// Posts

func (store *memoryStore) CreatePost(ctx context.Context, post model.ClubPost) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	post.CreateDatetime = store.tick()
	store.posts[post.Id] = post
	return nil
}

func (store *memoryStore) FindPostById(ctx context.Context, postId uuid.UUID) (model.ClubPost, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.posts[postId], nil
}

func (store *memoryStore) ListClubPosts(ctx context.Context, clubId uuid.UUID, limit int, cursor *model.ClubPostCursor) ([]model.ClubPostResponse, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	posts := []model.ClubPostResponse{}
	for _, post := range store.posts {
		if post.ClubId != clubId {
			continue
		}
		if cursor.Id != "" && !post.CreateDatetime.Before(cursor.CreateDatetime) {
			continue
		}
		posts = append(posts, model.ClubPostResponse{
			Id:             post.Id,
			ClubId:         post.ClubId,
			AuthorId:       post.AuthorId,
			AuthorUsername: store.users[post.AuthorId].Username,
			Content:        post.Content,
			LikeCount:      post.LikeCount,
			CreateDatetime: post.CreateDatetime,
			UpdateDatetime: post.UpdateDatetime,
		})
	}

	sort.Slice(posts, func(i, j int) bool { return posts[i].CreateDatetime.After(posts[j].CreateDatetime) })
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (store *memoryStore) CreatePostLike(ctx context.Context, like model.ClubPostLike) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	key := likeKey{postId: like.PostId, userId: like.UserId}
	if store.likes[key] {
		return model.ErrDuplicate
	}
	store.likes[key] = true

	post := store.posts[like.PostId]
	post.LikeCount++
	store.posts[like.PostId] = post
	return nil
}

func (store *memoryStore) DeletePostLike(ctx context.Context, postId uuid.UUID, userId uuid.UUID) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	key := likeKey{postId: postId, userId: userId}
	if !store.likes[key] {
		return false, nil
	}
	delete(store.likes, key)

	post := store.posts[postId]
	if post.LikeCount > 0 {
		post.LikeCount--
	}
	store.posts[postId] = post
	return true, nil
}

// Media

func (store *memoryStore) UploadImageObject(ctx context.Context, objectKey string, imageFile *bytes.Reader, imageSize int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.objects[objectKey] = imageSize
	return nil
}

func (store *memoryStore) DeleteImageObject(ctx context.Context, objectKey string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.objects, objectKey)
	return nil
}

// Seeding helpers

func (store *memoryStore) addUser(username string, role model.Role, isStaff bool) model.User {
	store.mu.Lock()
	defer store.mu.Unlock()

	now := store.tick()
	user := model.User{
		Id:             uuid.New(),
		Username:       username,
		Fullname:       strings.ToUpper(username[:1]) + username[1:],
		Email:          username + "@campus.test",
		Role:           role,
		IsStaff:        isStaff,
		CreateDatetime: now,
		UpdateDatetime: now,
	}
	store.users[user.Id] = user
	return user
}

func (store *memoryStore) addClub(name string) model.Club {
	store.mu.Lock()
	defer store.mu.Unlock()

	now := store.tick()
	club := model.Club{
		Id:               uuid.New(),
		Name:             name,
		ShortDescription: name + " club",
		LongDescription:  "All about " + name,
		DomainTags:       "campus",
		CreateDatetime:   now,
		UpdateDatetime:   now,
	}
	store.clubs[club.Id] = club
	return club
}

func (store *memoryStore) addFounder(clubId uuid.UUID, userId uuid.UUID) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.founders[clubId] == nil {
		store.founders[clubId] = map[uuid.UUID]bool{}
	}
	store.founders[clubId][userId] = true
}

func (store *memoryStore) addMembership(userId uuid.UUID, clubId uuid.UUID, status model.MembershipStatus) model.Membership {
	store.mu.Lock()
	defer store.mu.Unlock()

	now := store.tick()
	membership := model.Membership{
		Id:             uuid.New(),
		UserId:         userId,
		ClubId:         clubId,
		Status:         status,
		JoinedDatetime: now,
		UpdateDatetime: now,
		UpdateUserId:   userId,
	}
	store.memberships[membership.Id] = membership
	return membership
}

func (store *memoryStore) membershipCount(userId uuid.UUID, clubId uuid.UUID) int {
	store.mu.Lock()
	defer store.mu.Unlock()

	count := 0
	for _, membership := range store.memberships {
		if membership.UserId == userId && membership.ClubId == clubId {
			count++
		}
	}
	return count
}

// testApp bundles every usecase over one memoryStore.
type testApp struct {
	store        *memoryStore
	config       *koanf.Koanf
	access       *AccessUsecase
	user         *UserUsecase
	club         *ClubUsecase
	membership   *MembershipUsecase
	event        *EventUsecase
	announcement *AnnouncementUsecase
	message      *MessageUsecase
	post         *PostUsecase
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	store := newMemoryStore()
	log := zap.NewNop()

	config := koanf.New(".")
	_ = config.Set("JWT_SECRET_KEY", "test-secret-key-for-jwt-token-generation")
	_ = config.Set("MINIO_HTTP", "http://")
	_ = config.Set("MINIO_URL", "localhost:9000")
	_ = config.Set("MINIO_BUCKET_NAME", "clubconnect-test")

	access := NewAccessUsecase(store, store, store, log)

	return &testApp{
		store:        store,
		config:       config,
		access:       access,
		user:         NewUserUsecase(store, log, config),
		club:         NewClubUsecase(access, store, store, store, store, store, store, log, config),
		membership:   NewMembershipUsecase(access, store, store, store, log),
		event:        NewEventUsecase(access, store, store, store, log, config),
		announcement: NewAnnouncementUsecase(access, store, store, log),
		message:      NewMessageUsecase(access, store, store, store, store, log),
		post:         NewPostUsecase(access, store, store, log),
	}
}
