package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ferdian3456/clubconnect/internal/constant"
	"github.com/ferdian3456/clubconnect/internal/metrics"
	"github.com/ferdian3456/clubconnect/internal/model"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRequestMembershipCreatesPending(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	club := app.store.addClub("robotics")
	student := app.store.addUser("alice", model.RoleStudent, false)
	requested := testutil.ToFloat64(metrics.MembershipTransitions.WithLabelValues("requested"))

	response, err := app.membership.RequestMembership(ctx, student.Id, club.Id.String())
	require.NoError(t, err)
	require.Equal(t, requested+1, testutil.ToFloat64(metrics.MembershipTransitions.WithLabelValues("requested")))
	require.Equal(t, "Your registration request for robotics has been submitted", response.Message)
	require.Equal(t, "/dashboard", response.Redirect)

	membership, err := app.store.FindMembership(ctx, student.Id, club.Id)
	require.NoError(t, err)
	require.Equal(t, model.MembershipStatusPending, membership.Status)
}

func TestRequestMembershipConflictCarriesState(t *testing.T) {
	tests := []struct {
		status  model.MembershipStatus
		message string
	}{
		{model.MembershipStatusPending, "Your membership request is pending approval"},
		{model.MembershipStatusApproved, "You are already a member of this club"},
		{model.MembershipStatusRejected, "Your previous membership request was rejected"},
	}

	for _, test := range tests {
		t.Run(string(test.status), func(t *testing.T) {
			app := newTestApp(t)
			club := app.store.addClub("robotics")
			student := app.store.addUser("alice", model.RoleStudent, false)
			app.store.addMembership(student.Id, club.Id, test.status)

			_, err := app.membership.RequestMembership(context.Background(), student.Id, club.Id.String())
			validationErr := requireCode(t, err, constant.ERR_CONFLICT_ERROR)
			require.Equal(t, string(test.status), validationErr.State)
			require.Equal(t, test.message, validationErr.Message)
			require.Equal(t, 1, app.store.membershipCount(student.Id, club.Id))
		})
	}
}

func TestRequestMembershipRequiresStudentRole(t *testing.T) {
	app := newTestApp(t)
	club := app.store.addClub("robotics")

	for _, role := range []model.Role{model.RoleFounder, model.RoleAdmin} {
		actor := app.store.addUser("user"+string(role), role, false)

		_, err := app.membership.RequestMembership(context.Background(), actor.Id, club.Id.String())
		validationErr := requireCode(t, err, constant.ERR_FORBIDDEN_ERROR)
		require.Equal(t, "Only students can register for clubs", validationErr.Message)
		require.Equal(t, 0, app.store.membershipCount(actor.Id, club.Id))
	}
}

func TestRequestMembershipUnknownClub(t *testing.T) {
	app := newTestApp(t)
	student := app.store.addUser("alice", model.RoleStudent, false)

	_, err := app.membership.RequestMembership(context.Background(), student.Id, uuid.NewString())
	requireCode(t, err, constant.ERR_NOT_FOUND_ERROR)

	_, err = app.membership.RequestMembership(context.Background(), student.Id, "not-a-uuid")
	validationErr := requireCode(t, err, constant.ERR_VALIDATION_CODE)
	require.Equal(t, "clubId", validationErr.Param)
}

func TestRequestMembershipConcurrent(t *testing.T) {
	app := newTestApp(t)
	club := app.store.addClub("robotics")
	student := app.store.addUser("alice", model.RoleStudent, false)

	const attempts = 16
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := app.membership.RequestMembership(context.Background(), student.Id, club.Id.String())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		validationErr := requireCode(t, err, constant.ERR_CONFLICT_ERROR)
		require.Equal(t, string(model.MembershipStatusPending), validationErr.State)
	}

	require.Equal(t, 1, succeeded)
	require.Equal(t, 1, app.store.membershipCount(student.Id, club.Id))
}

func TestApproveMembershipByFounder(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	club := app.store.addClub("robotics")
	founder := app.store.addUser("founder", model.RoleFounder, false)
	student := app.store.addUser("alice", model.RoleStudent, false)
	app.store.addFounder(club.Id, founder.Id)
	membership := app.store.addMembership(student.Id, club.Id, model.MembershipStatusPending)

	response, err := app.membership.ApproveMembership(ctx, founder.Id, membership.Id.String())
	require.NoError(t, err)
	require.Equal(t, "Membership for alice has been approved", response.Message)
	require.Equal(t, "/founder/dashboard", response.Redirect)

	isMember, err := app.access.IsApprovedMemberOf(ctx, student.Id, club.Id)
	require.NoError(t, err)
	require.True(t, isMember)
}

func TestReviewMembershipForbiddenLeavesStatus(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	club := app.store.addClub("robotics")
	otherClub := app.store.addClub("chess")
	otherFounder := app.store.addUser("chessfounder", model.RoleFounder, false)
	admin := app.store.addUser("admin", model.RoleAdmin, true)
	student := app.store.addUser("alice", model.RoleStudent, false)
	app.store.addFounder(otherClub.Id, otherFounder.Id)
	membership := app.store.addMembership(student.Id, club.Id, model.MembershipStatusPending)

	for _, actor := range []model.User{otherFounder, admin, student} {
		_, err := app.membership.ApproveMembership(ctx, actor.Id, membership.Id.String())
		validationErr := requireCode(t, err, constant.ERR_FORBIDDEN_ERROR)
		require.Equal(t, "Only club founders can approve memberships", validationErr.Message)

		_, err = app.membership.RejectMembership(ctx, actor.Id, membership.Id.String())
		requireCode(t, err, constant.ERR_FORBIDDEN_ERROR)
	}

	stored, err := app.store.FindMembershipById(ctx, membership.Id)
	require.NoError(t, err)
	require.Equal(t, model.MembershipStatusPending, stored.Status)
}

func TestReviewMembershipLastWriteWins(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	club := app.store.addClub("robotics")
	founder := app.store.addUser("founder", model.RoleFounder, false)
	coFounder := app.store.addUser("cofounder", model.RoleFounder, false)
	student := app.store.addUser("alice", model.RoleStudent, false)
	app.store.addFounder(club.Id, founder.Id)
	app.store.addFounder(club.Id, coFounder.Id)
	membership := app.store.addMembership(student.Id, club.Id, model.MembershipStatusPending)

	_, err := app.membership.ApproveMembership(ctx, founder.Id, membership.Id.String())
	require.NoError(t, err)

	response, err := app.membership.RejectMembership(ctx, coFounder.Id, membership.Id.String())
	require.NoError(t, err)
	require.Equal(t, "Membership for alice has been rejected", response.Message)

	stored, err := app.store.FindMembershipById(ctx, membership.Id)
	require.NoError(t, err)
	require.Equal(t, model.MembershipStatusRejected, stored.Status)
	require.Equal(t, coFounder.Id, stored.UpdateUserId)

	_, err = app.membership.RequestMembership(ctx, student.Id, club.Id.String())
	validationErr := requireCode(t, err, constant.ERR_CONFLICT_ERROR)
	require.Equal(t, string(model.MembershipStatusRejected), validationErr.State)
}

func TestReviewMissingMembership(t *testing.T) {
	app := newTestApp(t)
	founder := app.store.addUser("founder", model.RoleFounder, false)

	_, err := app.membership.ApproveMembership(context.Background(), founder.Id, uuid.NewString())
	validationErr := requireCode(t, err, constant.ERR_NOT_FOUND_ERROR)
	require.Equal(t, "/founder/dashboard", validationErr.Redirect)
}

func TestLeaveClub(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	club := app.store.addClub("robotics")
	student := app.store.addUser("alice", model.RoleStudent, false)
	app.store.addMembership(student.Id, club.Id, model.MembershipStatusApproved)

	response, err := app.membership.LeaveClub(ctx, student.Id, club.Id.String(), "me")
	require.NoError(t, err)
	require.Equal(t, "You have left robotics", response.Message)
	require.Equal(t, 0, app.store.membershipCount(student.Id, club.Id))

	_, err = app.membership.LeaveClub(ctx, student.Id, club.Id.String(), student.Id.String())
	validationErr := requireCode(t, err, constant.ERR_NOT_FOUND_ERROR)
	require.Equal(t, "You are not a member of this club", validationErr.Message)

	// Leaving resets the lifecycle, a new request starts pending again.
	_, err = app.membership.RequestMembership(ctx, student.Id, club.Id.String())
	require.NoError(t, err)

	membership, err := app.store.FindMembership(ctx, student.Id, club.Id)
	require.NoError(t, err)
	require.Equal(t, model.MembershipStatusPending, membership.Status)
}

func TestLeaveClubOnBehalfOfOtherIsForbidden(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	club := app.store.addClub("robotics")
	founder := app.store.addUser("founder", model.RoleFounder, false)
	student := app.store.addUser("alice", model.RoleStudent, false)
	app.store.addFounder(club.Id, founder.Id)
	app.store.addMembership(student.Id, club.Id, model.MembershipStatusApproved)

	_, err := app.membership.LeaveClub(ctx, founder.Id, club.Id.String(), student.Id.String())
	requireCode(t, err, constant.ERR_FORBIDDEN_ERROR)
	require.Equal(t, 1, app.store.membershipCount(student.Id, club.Id))
}

func TestListClubMemberships(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	club := app.store.addClub("robotics")
	founder := app.store.addUser("founder", model.RoleFounder, false)
	app.store.addFounder(club.Id, founder.Id)

	alice := app.store.addUser("alice", model.RoleStudent, false)
	bob := app.store.addUser("bob", model.RoleStudent, false)
	app.store.addMembership(alice.Id, club.Id, model.MembershipStatusPending)
	app.store.addMembership(bob.Id, club.Id, model.MembershipStatusApproved)

	all, err := app.membership.ListClubMemberships(ctx, founder.Id, club.Id.String(), "")
	require.NoError(t, err)
	require.Len(t, all.Data, 2)

	pending, err := app.membership.ListClubMemberships(ctx, founder.Id, club.Id.String(), "pending")
	require.NoError(t, err)
	require.Len(t, pending.Data, 1)
	require.Equal(t, "alice", pending.Data[0].Username)

	_, err = app.membership.ListClubMemberships(ctx, founder.Id, club.Id.String(), "banned")
	validationErr := requireCode(t, err, constant.ERR_VALIDATION_CODE)
	require.Equal(t, "status", validationErr.Param)

	_, err = app.membership.ListClubMemberships(ctx, bob.Id, club.Id.String(), "")
	requireCode(t, err, constant.ERR_FORBIDDEN_ERROR)

	mine, err := app.membership.ListMyMemberships(ctx, bob.Id)
	require.NoError(t, err)
	require.Len(t, mine.Data, 1)
	require.Equal(t, "robotics", mine.Data[0].ClubName)
}

func TestRequestMembershipSurfacesStorageErrors(t *testing.T) {
	app := newTestApp(t)
	club := app.store.addClub("robotics")
	student := app.store.addUser("alice", model.RoleStudent, false)

	failing := &failingMembershipStore{memoryStore: app.store, err: errors.New("connection reset")}
	app.membership.MembershipRepository = failing

	_, err := app.membership.RequestMembership(context.Background(), student.Id, club.Id.String())
	require.ErrorIs(t, err, failing.err)

	var validationErr *model.ValidationError
	require.False(t, errors.As(err, &validationErr))
}

type failingMembershipStore struct {
	*memoryStore
	err error
}

func (store *failingMembershipStore) CreateMembership(ctx context.Context, membership model.Membership) error {
	return store.err
}
