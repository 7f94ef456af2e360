package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ferdian3456/clubconnect/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type MembershipRepository struct {
	Log *zap.Logger
	DB  *pgxpool.Pool
}

func NewMembershipRepository(zap *zap.Logger, db *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{
		Log: zap,
		DB:  db,
	}
}

const membershipColumns = "id, user_id, club_id, status, joined_datetime, update_datetime, update_user_id"

func scanMembership(row pgx.Row) (model.Membership, error) {
	membership := model.Membership{}
	err := row.Scan(&membership.Id, &membership.UserId, &membership.ClubId, &membership.Status, &membership.JoinedDatetime, &membership.UpdateDatetime, &membership.UpdateUserId)
	return membership, err
}

// CreateMembership relies on uq_memberships_user_club for the (user, club)
// uniqueness; a concurrent duplicate insert returns model.ErrDuplicate.
func (repository *MembershipRepository) CreateMembership(ctx context.Context, membership model.Membership) error {
	query := "INSERT INTO memberships (" + membershipColumns + ") VALUES ($1,$2,$3,$4,$5,$6,$7)"

	_, err := repository.DB.Exec(ctx, query, membership.Id, membership.UserId, membership.ClubId, membership.Status, membership.JoinedDatetime, membership.UpdateDatetime, membership.UpdateUserId)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrDuplicate
		}
		return err
	}

	return nil
}

// FindMembershipById returns a zero Membership when the id does not exist.
func (repository *MembershipRepository) FindMembershipById(ctx context.Context, membershipId uuid.UUID) (model.Membership, error) {
	query := "SELECT " + membershipColumns + " FROM memberships WHERE id = $1"

	membership, err := scanMembership(repository.DB.QueryRow(ctx, query, membershipId))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Membership{}, nil
		}
		return model.Membership{}, err
	}

	return membership, nil
}

func (repository *MembershipRepository) FindMembership(ctx context.Context, userId uuid.UUID, clubId uuid.UUID) (model.Membership, error) {
	query := "SELECT " + membershipColumns + " FROM memberships WHERE user_id = $1 AND club_id = $2"

	membership, err := scanMembership(repository.DB.QueryRow(ctx, query, userId, clubId))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Membership{}, nil
		}
		return model.Membership{}, err
	}

	return membership, nil
}

// UpdateMembershipStatus overwrites the status unconditionally; the last write wins.
func (repository *MembershipRepository) UpdateMembershipStatus(ctx context.Context, membershipId uuid.UUID, status model.MembershipStatus, updateUserId uuid.UUID, updateDatetime time.Time) error {
	query := "UPDATE memberships SET status = $1, update_datetime = $2, update_user_id = $3 WHERE id = $4"

	_, err := repository.DB.Exec(ctx, query, status, updateDatetime, updateUserId, membershipId)
	if err != nil {
		return err
	}

	return nil
}

func (repository *MembershipRepository) DeleteMembership(ctx context.Context, membershipId uuid.UUID) error {
	query := "DELETE FROM memberships WHERE id = $1"

	_, err := repository.DB.Exec(ctx, query, membershipId)
	if err != nil {
		return err
	}

	return nil
}

func (repository *MembershipRepository) CheckApprovedMember(ctx context.Context, clubId uuid.UUID, userId uuid.UUID) (int, error) {
	query := "SELECT 1 FROM memberships WHERE club_id = $1 AND user_id = $2 AND status = 'approved'"

	var exists int
	err := repository.DB.QueryRow(ctx, query, clubId, userId).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return exists, nil
		}

		return exists, err
	}

	return exists, nil
}

func scanMembershipResponses(rows pgx.Rows) ([]model.MembershipResponse, error) {
	defer rows.Close()

	memberships := []model.MembershipResponse{}
	for rows.Next() {
		var membership model.MembershipResponse
		err := rows.Scan(&membership.Id, &membership.UserId, &membership.Username, &membership.ClubId, &membership.ClubName, &membership.Status, &membership.JoinedDatetime, &membership.UpdateDatetime)
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, membership)
	}

	return memberships, rows.Err()
}

// ListClubMemberships lists the club's memberships, filtered by status when it is not empty.
func (repository *MembershipRepository) ListClubMemberships(ctx context.Context, clubId uuid.UUID, status model.MembershipStatus) ([]model.MembershipResponse, error) {
	query := `
		SELECT m.id, m.user_id, u.username, m.club_id, c.name, m.status, m.joined_datetime, m.update_datetime
		FROM memberships m
		INNER JOIN users u ON u.id = m.user_id
		INNER JOIN clubs c ON c.id = m.club_id
		WHERE m.club_id = $1 AND ($2 = '' OR m.status = $2)
		ORDER BY m.joined_datetime
	`

	rows, err := repository.DB.Query(ctx, query, clubId, string(status))
	if err != nil {
		return nil, err
	}

	return scanMembershipResponses(rows)
}

func (repository *MembershipRepository) ListUserMemberships(ctx context.Context, userId uuid.UUID) ([]model.MembershipResponse, error) {
	query := `
		SELECT m.id, m.user_id, u.username, m.club_id, c.name, m.status, m.joined_datetime, m.update_datetime
		FROM memberships m
		INNER JOIN users u ON u.id = m.user_id
		INNER JOIN clubs c ON c.id = m.club_id
		WHERE m.user_id = $1
		ORDER BY m.joined_datetime DESC
	`

	rows, err := repository.DB.Query(ctx, query, userId)
	if err != nil {
		return nil, err
	}

	return scanMembershipResponses(rows)
}

func (repository *MembershipRepository) ListApprovedMemberUsers(ctx context.Context, clubId uuid.UUID) ([]model.UserSummary, error) {
	query := `
		SELECT u.id, u.username, u.fullname, u.role
		FROM memberships m
		INNER JOIN users u ON u.id = m.user_id
		WHERE m.club_id = $1 AND m.status = 'approved'
		ORDER BY u.username
	`

	rows, err := repository.DB.Query(ctx, query, clubId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.UserSummary{}
	for rows.Next() {
		var user model.UserSummary
		err := rows.Scan(&user.Id, &user.Username, &user.Fullname, &user.Role)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}
