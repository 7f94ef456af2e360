package repository

import (
	"context"
	"errors"

	"github.com/ferdian3456/clubconnect/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type AnnouncementRepository struct {
	Log *zap.Logger
	DB  *pgxpool.Pool
}

func NewAnnouncementRepository(zap *zap.Logger, db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{
		Log: zap,
		DB:  db,
	}
}

const announcementColumns = "id, club_id, title, content, create_datetime, create_user_id"

func scanAnnouncements(rows pgx.Rows) ([]model.Announcement, error) {
	defer rows.Close()

	announcements := []model.Announcement{}
	for rows.Next() {
		var announcement model.Announcement
		err := rows.Scan(&announcement.Id, &announcement.ClubId, &announcement.Title, &announcement.Content, &announcement.CreateDatetime, &announcement.CreateUserId)
		if err != nil {
			return nil, err
		}
		announcements = append(announcements, announcement)
	}

	return announcements, rows.Err()
}

func (repository *AnnouncementRepository) CreateAnnouncement(ctx context.Context, announcement model.Announcement) error {
	query := "INSERT INTO announcements (" + announcementColumns + ") VALUES ($1,$2,$3,$4,$5,$6)"

	_, err := repository.DB.Exec(ctx, query, announcement.Id, announcement.ClubId, announcement.Title, announcement.Content, announcement.CreateDatetime, announcement.CreateUserId)
	if err != nil {
		return err
	}

	return nil
}

func (repository *AnnouncementRepository) FindAnnouncementById(ctx context.Context, announcementId uuid.UUID) (model.Announcement, error) {
	query := "SELECT " + announcementColumns + " FROM announcements WHERE id = $1"

	announcement := model.Announcement{}
	err := repository.DB.QueryRow(ctx, query, announcementId).Scan(&announcement.Id, &announcement.ClubId, &announcement.Title, &announcement.Content, &announcement.CreateDatetime, &announcement.CreateUserId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Announcement{}, nil
		}
		return model.Announcement{}, err
	}

	return announcement, nil
}

func (repository *AnnouncementRepository) DeleteAnnouncement(ctx context.Context, announcementId uuid.UUID) error {
	query := "DELETE FROM announcements WHERE id = $1"

	_, err := repository.DB.Exec(ctx, query, announcementId)
	if err != nil {
		return err
	}

	return nil
}

// ListClubAnnouncements returns the newest announcements of a club first.
func (repository *AnnouncementRepository) ListClubAnnouncements(ctx context.Context, clubId uuid.UUID, limit int) ([]model.Announcement, error) {
	query := "SELECT " + announcementColumns + " FROM announcements WHERE club_id = $1 ORDER BY create_datetime DESC LIMIT $2"

	rows, err := repository.DB.Query(ctx, query, clubId, limit)
	if err != nil {
		return nil, err
	}

	return scanAnnouncements(rows)
}

func (repository *AnnouncementRepository) ListGlobalAnnouncements(ctx context.Context, limit int) ([]model.Announcement, error) {
	query := "SELECT " + announcementColumns + " FROM announcements WHERE club_id IS NULL ORDER BY create_datetime DESC LIMIT $1"

	rows, err := repository.DB.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	return scanAnnouncements(rows)
}
