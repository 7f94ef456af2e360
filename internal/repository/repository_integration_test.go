package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ferdian3456/clubconnect/internal/model"
	"github.com/ferdian3456/clubconnect/internal/repository"
	"github.com/ferdian3456/clubconnect/internal/testinfra"
	"github.com/ferdian3456/clubconnect/internal/util"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	db          *pgxpool.Pool
	users       *repository.UserRepository
	clubs       *repository.ClubRepository
	memberships *repository.MembershipRepository
	posts       *repository.PostRepository
}

func (f fixture) user(t *testing.T, username string, role model.Role) model.User {
	t.Helper()

	now := time.Now().UTC()
	user := model.User{
		Id:             uuid.New(),
		Username:       username,
		Fullname:       "Test " + username,
		Email:          username + "@campus.test",
		Password:       "hashed",
		Role:           role,
		CreateDatetime: now,
		UpdateDatetime: now,
	}
	user.CreateUserId = user.Id
	user.UpdateUserId = user.Id

	require.NoError(t, f.users.Register(context.Background(), user))
	return user
}

func (f fixture) club(t *testing.T, name string, creator uuid.UUID) model.Club {
	t.Helper()

	now := time.Now().UTC()
	club := model.Club{
		Id:               uuid.New(),
		Name:             name,
		ShortDescription: "short",
		LongDescription:  "long",
		DomainTags:       "ai, robotics",
		CreateDatetime:   now,
		UpdateDatetime:   now,
		CreateUserId:     creator,
		UpdateUserId:     creator,
	}

	require.NoError(t, f.clubs.CreateClub(context.Background(), club))
	return club
}

func newMembership(userId uuid.UUID, clubId uuid.UUID) model.Membership {
	now := time.Now().UTC()
	return model.Membership{
		Id:             uuid.New(),
		UserId:         userId,
		ClubId:         clubId,
		Status:         model.MembershipStatusPending,
		JoinedDatetime: now,
		UpdateDatetime: now,
		UpdateUserId:   userId,
	}
}

func TestRepositoriesIntegration(t *testing.T) {
	infra := testinfra.Start(t)
	app := testinfra.SetupTestApp(t, infra)

	log := zap.NewNop()
	f := fixture{
		db:          app.DB,
		users:       repository.NewUserRepository(log, app.DB, app.Redis),
		clubs:       repository.NewClubRepository(log, app.DB, app.Redis),
		memberships: repository.NewMembershipRepository(log, app.DB),
		posts:       repository.NewPostRepository(log, app.DB),
	}
	ctx := context.Background()

	t.Run("duplicate username returns ErrDuplicate", func(t *testing.T) {
		t.Cleanup(func() { testinfra.TruncateAllTables(t, app.DB) })

		alice := f.user(t, "alice", model.RoleStudent)
		duplicate := alice
		duplicate.Id = uuid.New()
		duplicate.Email = "other@campus.test"

		require.ErrorIs(t, f.users.Register(ctx, duplicate), model.ErrDuplicate)
	})

	t.Run("missing rows read as zero values", func(t *testing.T) {
		user, err := f.users.FindUserById(ctx, uuid.New())
		require.NoError(t, err)
		require.Equal(t, uuid.Nil, user.Id)

		membership, err := f.memberships.FindMembershipById(ctx, uuid.New())
		require.NoError(t, err)
		require.Equal(t, uuid.Nil, membership.Id)
	})

	t.Run("concurrent membership requests insert one row", func(t *testing.T) {
		t.Cleanup(func() { testinfra.TruncateAllTables(t, app.DB) })

		alice := f.user(t, "alice", model.RoleStudent)
		club := f.club(t, "robotics", alice.Id)

		const attempts = 8
		var wg sync.WaitGroup
		errs := make(chan error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- f.memberships.CreateMembership(ctx, newMembership(alice.Id, club.Id))
			}()
		}
		wg.Wait()
		close(errs)

		created := 0
		for err := range errs {
			if err == nil {
				created++
				continue
			}
			require.ErrorIs(t, err, model.ErrDuplicate)
		}
		require.Equal(t, 1, created)

		var count int
		err := f.db.QueryRow(ctx, "SELECT COUNT(*) FROM memberships WHERE user_id = $1 AND club_id = $2", alice.Id, club.Id).Scan(&count)
		require.NoError(t, err)
		require.Equal(t, 1, count)
	})

	t.Run("approved membership and founder checks", func(t *testing.T) {
		t.Cleanup(func() { testinfra.TruncateAllTables(t, app.DB) })

		admin := f.user(t, "admin", model.RoleAdmin)
		alice := f.user(t, "alice", model.RoleStudent)
		club := f.club(t, "robotics", admin.Id)

		membership := newMembership(alice.Id, club.Id)
		require.NoError(t, f.memberships.CreateMembership(ctx, membership))

		exists, err := f.memberships.CheckApprovedMember(ctx, club.Id, alice.Id)
		require.NoError(t, err)
		require.Equal(t, 0, exists)

		require.NoError(t, f.memberships.UpdateMembershipStatus(ctx, membership.Id, model.MembershipStatusApproved, admin.Id, time.Now().UTC()))

		exists, err = f.memberships.CheckApprovedMember(ctx, club.Id, alice.Id)
		require.NoError(t, err)
		require.Equal(t, 1, exists)

		require.NoError(t, f.clubs.AssignFounder(ctx, club.Id, alice.Id, true, admin.Id, time.Now().UTC()))
		require.NoError(t, f.clubs.AssignFounder(ctx, club.Id, alice.Id, true, admin.Id, time.Now().UTC()))

		founders, err := f.clubs.GetClubFounders(ctx, club.Id)
		require.NoError(t, err)
		require.Len(t, founders, 1)

		promoted, err := f.users.FindUserById(ctx, alice.Id)
		require.NoError(t, err)
		require.Equal(t, model.RoleFounder, promoted.Role)
	})

	t.Run("club cache round trip", func(t *testing.T) {
		t.Cleanup(func() { testinfra.TruncateAllTables(t, app.DB) })

		admin := f.user(t, "admin", model.RoleAdmin)
		club := f.club(t, "robotics", admin.Id)

		_, found, err := f.clubs.GetClubFromCache(ctx, club.Id)
		require.NoError(t, err)
		require.False(t, found)

		require.NoError(t, f.clubs.SetClubInCache(ctx, club))

		cached, found, err := f.clubs.GetClubFromCache(ctx, club.Id)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, club.Name, cached.Name)

		require.NoError(t, f.clubs.DeleteClubFromCache(ctx, club.Id))
		_, found, err = f.clubs.GetClubFromCache(ctx, club.Id)
		require.NoError(t, err)
		require.False(t, found)
	})

	t.Run("auth token cache", func(t *testing.T) {
		userId := uuid.New()

		_, err := f.users.GetAccessTokenInCache(ctx, userId)
		var validationErr *model.ValidationError
		require.ErrorAs(t, err, &validationErr)

		require.NoError(t, f.users.SetAuthTokenInCache(ctx, "access", "refresh", userId))
		hashed, err := f.users.GetAccessTokenInCache(ctx, userId)
		require.NoError(t, err)
		require.Equal(t, util.HashToken("access"), hashed)

		require.NoError(t, f.users.RemoveAuthToken(ctx, userId))
		_, err = f.users.GetAccessTokenInCache(ctx, userId)
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("post likes keep the counter in sync", func(t *testing.T) {
		t.Cleanup(func() { testinfra.TruncateAllTables(t, app.DB) })

		alice := f.user(t, "alice", model.RoleStudent)
		club := f.club(t, "robotics", alice.Id)

		now := time.Now().UTC()
		post := model.ClubPost{
			Id:             uuid.New(),
			ClubId:         club.Id,
			AuthorId:       alice.Id,
			Content:        "hello",
			CreateDatetime: now,
			UpdateDatetime: now,
			CreateUserId:   alice.Id,
			UpdateUserId:   alice.Id,
		}
		require.NoError(t, f.posts.CreatePost(ctx, post))

		like := model.ClubPostLike{PostId: post.Id, UserId: alice.Id, CreateDatetime: now}
		require.NoError(t, f.posts.CreatePostLike(ctx, like))
		require.ErrorIs(t, f.posts.CreatePostLike(ctx, like), model.ErrDuplicate)

		stored, err := f.posts.FindPostById(ctx, post.Id)
		require.NoError(t, err)
		require.Equal(t, 1, stored.LikeCount)

		removed, err := f.posts.DeletePostLike(ctx, post.Id, alice.Id)
		require.NoError(t, err)
		require.True(t, removed)

		removed, err = f.posts.DeletePostLike(ctx, post.Id, alice.Id)
		require.NoError(t, err)
		require.False(t, removed)

		stored, err = f.posts.FindPostById(ctx, post.Id)
		require.NoError(t, err)
		require.Equal(t, 0, stored.LikeCount)
	})
}
