package usecase

import (
	"context"
	"testing"

	"github.com/ferdian3456/clubconnect/internal/constant"
	"github.com/ferdian3456/clubconnect/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func validClubRequest(name string) model.ClubCreateRequest {
	advisor := "  Dr. Rivera "
	return model.ClubCreateRequest{
		Name:             name,
		ShortDescription: "Build robots",
		LongDescription:  "We build robots every friday",
		DomainTags:       " ai,robotics,, embedded ",
		FacultyAdvisor:   &advisor,
	}
}

func TestCreateClubByAdmin(t *testing.T) {
	app := newTestApp(t)
	admin := app.store.addUser("admin", model.RoleAdmin, true)

	response, err := app.club.CreateClub(context.Background(), admin.Id, validClubRequest("Robotics"))
	require.NoError(t, err)
	require.Equal(t, "Club 'Robotics' has been created successfully", response.Message)

	club, ok := response.Data.(model.ClubResponse)
	require.True(t, ok)
	require.Equal(t, "/clubs/"+club.Id.String()+"/founders", response.Redirect)
	require.Equal(t, []string{"ai", "robotics", "embedded"}, club.DomainTags)
	require.NotNil(t, club.FacultyAdvisor)
	require.Equal(t, "Dr. Rivera", *club.FacultyAdvisor)

	stored, err := app.store.FindClubById(context.Background(), club.Id)
	require.NoError(t, err)
	require.Equal(t, "ai, robotics, embedded", stored.DomainTags)
}

func TestCreateClubRequiresAdmin(t *testing.T) {
	app := newTestApp(t)
	staff := app.store.addUser("staffer", model.RoleStudent, true)

	_, err := app.club.CreateClub(context.Background(), staff.Id, validClubRequest("Robotics"))
	validationErr := requireCode(t, err, constant.ERR_FORBIDDEN_ERROR)
	require.Equal(t, "Only administrators can create clubs", validationErr.Message)
	require.Empty(t, app.store.clubs)
}

func TestCreateClubValidation(t *testing.T) {
	app := newTestApp(t)
	admin := app.store.addUser("admin", model.RoleAdmin, true)

	request := validClubRequest("   ")
	_, err := app.club.CreateClub(context.Background(), admin.Id, request)
	validationErr := requireCode(t, err, constant.ERR_VALIDATION_CODE)
	require.Equal(t, "name", validationErr.Param)

	request = validClubRequest("Robotics")
	request.LongDescription = ""
	_, err = app.club.CreateClub(context.Background(), admin.Id, request)
	validationErr = requireCode(t, err, constant.ERR_VALIDATION_CODE)
	require.Equal(t, "longDescription", validationErr.Param)
}

func TestAssignFounderPromotesStudent(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	admin := app.store.addUser("admin", model.RoleAdmin, true)
	student := app.store.addUser("alice", model.RoleStudent, false)
	club := app.store.addClub("robotics")

	response, err := app.club.AssignFounder(ctx, admin.Id, club.Id.String(), model.ClubAssignFounderRequest{FounderId: student.Id.String()})
	require.NoError(t, err)
	require.Equal(t, "alice was promoted to founder and assigned to robotics", response.Message)

	promoted, err := app.store.FindUserById(ctx, student.Id)
	require.NoError(t, err)
	require.Equal(t, model.RoleFounder, promoted.Role)

	isFounder, err := app.access.IsFounderOf(ctx, student.Id, club.Id)
	require.NoError(t, err)
	require.True(t, isFounder)

	// Assigning twice keeps a single founder entry.
	_, err = app.club.AssignFounder(ctx, admin.Id, club.Id.String(), model.ClubAssignFounderRequest{FounderId: student.Id.String()})
	require.NoError(t, err)

	founders, err := app.store.GetClubFounders(ctx, club.Id)
	require.NoError(t, err)
	require.Len(t, founders, 1)
}

func TestAssignFounderKeepsAdminRole(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	admin := app.store.addUser("admin", model.RoleAdmin, true)
	club := app.store.addClub("robotics")

	response, err := app.club.AssignFounder(ctx, admin.Id, club.Id.String(), model.ClubAssignFounderRequest{FounderId: admin.Id.String()})
	require.NoError(t, err)
	require.Equal(t, "admin has been assigned as a founder of robotics", response.Message)

	stored, err := app.store.FindUserById(ctx, admin.Id)
	require.NoError(t, err)
	require.Equal(t, model.RoleAdmin, stored.Role)
}

func TestAssignFounderErrors(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	admin := app.store.addUser("admin", model.RoleAdmin, true)
	founder := app.store.addUser("founder", model.RoleFounder, false)
	club := app.store.addClub("robotics")

	_, err := app.club.AssignFounder(ctx, founder.Id, club.Id.String(), model.ClubAssignFounderRequest{FounderId: founder.Id.String()})
	requireCode(t, err, constant.ERR_FORBIDDEN_ERROR)

	_, err = app.club.AssignFounder(ctx, admin.Id, club.Id.String(), model.ClubAssignFounderRequest{FounderId: "nobody"})
	requireCode(t, err, constant.ERR_VALIDATION_CODE)

	_, err = app.club.AssignFounder(ctx, admin.Id, club.Id.String(), model.ClubAssignFounderRequest{FounderId: club.Id.String()})
	requireCode(t, err, constant.ERR_NOT_FOUND_ERROR)
}

func TestListFounderCandidates(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	admin := app.store.addUser("admin", model.RoleAdmin, true)
	app.store.addUser("maria", model.RoleFounder, false)
	app.store.addUser("mario", model.RoleStudent, false)
	app.store.addUser("zed", model.RoleStudent, false)
	club := app.store.addClub("robotics")

	founders, err := app.club.ListFounderCandidates(ctx, admin.Id, club.Id.String(), "")
	require.NoError(t, err)
	require.Len(t, founders.Data, 1)
	require.Equal(t, "maria", founders.Data[0].Username)

	matches, err := app.club.ListFounderCandidates(ctx, admin.Id, club.Id.String(), "mar")
	require.NoError(t, err)
	require.Len(t, matches.Data, 2)
	require.Equal(t, "mar", matches.Query)
}

func TestListClubsPaginates(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	app.store.addClub("first")
	app.store.addClub("second")
	app.store.addClub("third")

	page, err := app.club.ListClubs(ctx, 2, "")
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	require.Equal(t, "third", page.Data[0].Name)
	require.NotEmpty(t, page.Page.NextCursor)

	next, err := app.club.ListClubs(ctx, 2, page.Page.NextCursor)
	require.NoError(t, err)
	require.Len(t, next.Data, 1)
	require.Equal(t, "first", next.Data[0].Name)
	require.Empty(t, next.Page.NextCursor)

	_, err = app.club.ListClubs(ctx, 2, "%%%")
	requireCode(t, err, constant.ERR_VALIDATION_CODE)

	_, err = app.club.ListClubs(ctx, constant.MAX_LIMIT+1, "")
	requireCode(t, err, constant.ERR_VALIDATION_CODE)
}

func TestSearchClubs(t *testing.T) {
	app := newTestApp(t)

	app.store.addClub("robotics")
	app.store.addClub("chess")

	result, err := app.club.SearchClubs(context.Background(), "ROBO")
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	require.Equal(t, "robotics", result.Data[0].Name)
}

func TestGetClubDetail(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	club := app.store.addClub("robotics")
	founder := app.store.addUser("founder", model.RoleFounder, false)
	member := app.store.addUser("member", model.RoleStudent, false)
	pending := app.store.addUser("pending", model.RoleStudent, false)
	app.store.addFounder(club.Id, founder.Id)
	app.store.addMembership(member.Id, club.Id, model.MembershipStatusApproved)
	app.store.addMembership(pending.Id, club.Id, model.MembershipStatusPending)

	for i := 0; i < constant.LATEST_ANNOUNCEMENT_LIMIT+2; i++ {
		_, err := app.announcement.CreateClubAnnouncement(ctx, founder.Id, club.Id.String(), model.AnnouncementCreateRequest{Title: "News", Content: "Weekly update"})
		require.NoError(t, err)
	}

	anonymous, err := app.club.GetClubDetail(ctx, uuid.Nil, club.Id.String())
	require.NoError(t, err)
	require.Len(t, anonymous.Club.Founders, 1)
	require.Len(t, anonymous.Announcements, constant.LATEST_ANNOUNCEMENT_LIMIT)
	require.Nil(t, anonymous.MembershipStatus)
	require.False(t, anonymous.IsFounder)

	asFounder, err := app.club.GetClubDetail(ctx, founder.Id, club.Id.String())
	require.NoError(t, err)
	require.True(t, asFounder.IsFounder)
	require.False(t, asFounder.IsMember)

	asMember, err := app.club.GetClubDetail(ctx, member.Id, club.Id.String())
	require.NoError(t, err)
	require.True(t, asMember.IsMember)
	require.Equal(t, model.MembershipStatusApproved, *asMember.MembershipStatus)

	asPending, err := app.club.GetClubDetail(ctx, pending.Id, club.Id.String())
	require.NoError(t, err)
	require.False(t, asPending.IsMember)
	require.Equal(t, model.MembershipStatusPending, *asPending.MembershipStatus)
}

func TestEditClubInvalidatesCache(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	club := app.store.addClub("robotics")
	founder := app.store.addUser("founder", model.RoleFounder, false)
	app.store.addFounder(club.Id, founder.Id)

	_, err := app.club.GetClubDetail(ctx, founder.Id, club.Id.String())
	require.NoError(t, err)
	_, cached, _ := app.store.GetClubFromCache(ctx, club.Id)
	require.True(t, cached)

	update := model.ClubUpdateRequest{
		Name:             "Robotics Society",
		ShortDescription: "Robots",
		LongDescription:  "Robots and more robots",
		DomainTags:       "ai",
	}
	_, err = app.club.EditClub(ctx, founder.Id, club.Id.String(), update)
	require.NoError(t, err)

	_, cached, _ = app.store.GetClubFromCache(ctx, club.Id)
	require.False(t, cached)

	detail, err := app.club.GetClubDetail(ctx, founder.Id, club.Id.String())
	require.NoError(t, err)
	require.Equal(t, "Robotics Society", detail.Club.Name)
}

func TestEditClubRequiresFounder(t *testing.T) {
	app := newTestApp(t)

	club := app.store.addClub("robotics")
	admin := app.store.addUser("admin", model.RoleAdmin, true)

	_, err := app.club.EditClub(context.Background(), admin.Id, club.Id.String(), model.ClubUpdateRequest{Name: "Hijacked"})
	validationErr := requireCode(t, err, constant.ERR_FORBIDDEN_ERROR)
	require.Equal(t, "Only club founders can edit club information", validationErr.Message)

	stored, err := app.store.FindClubById(context.Background(), club.Id)
	require.NoError(t, err)
	require.Equal(t, "robotics", stored.Name)
}

func TestUpdateClubLogoRequiresFile(t *testing.T) {
	app := newTestApp(t)

	club := app.store.addClub("robotics")
	founder := app.store.addUser("founder", model.RoleFounder, false)
	app.store.addFounder(club.Id, founder.Id)

	_, err := app.club.UpdateClubLogo(context.Background(), founder.Id, club.Id.String(), nil)
	validationErr := requireCode(t, err, constant.ERR_VALIDATION_CODE)
	require.Equal(t, "logo", validationErr.Param)
}
