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

type EventRepository struct {
	Log *zap.Logger
	DB  *pgxpool.Pool
}

func NewEventRepository(zap *zap.Logger, db *pgxpool.Pool) *EventRepository {
	return &EventRepository{
		Log: zap,
		DB:  db,
	}
}

const eventColumns = "id, club_id, title, description, location, start_datetime, end_datetime, image_object_key, create_datetime, update_datetime, create_user_id, update_user_id"

func scanEvent(row pgx.Row) (model.Event, error) {
	event := model.Event{}
	err := row.Scan(&event.Id, &event.ClubId, &event.Title, &event.Description, &event.Location, &event.StartDatetime, &event.EndDatetime, &event.ImageObjectKey, &event.CreateDatetime, &event.UpdateDatetime, &event.CreateUserId, &event.UpdateUserId)
	return event, err
}

func (repository *EventRepository) CreateEvent(ctx context.Context, event model.Event) error {
	query := "INSERT INTO events (" + eventColumns + ") VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)"

	_, err := repository.DB.Exec(ctx, query, event.Id, event.ClubId, event.Title, event.Description, event.Location, event.StartDatetime, event.EndDatetime, event.ImageObjectKey, event.CreateDatetime, event.UpdateDatetime, event.CreateUserId, event.UpdateUserId)
	if err != nil {
		return err
	}

	return nil
}

func (repository *EventRepository) FindEventById(ctx context.Context, eventId uuid.UUID) (model.Event, error) {
	query := "SELECT " + eventColumns + " FROM events WHERE id = $1"

	event, err := scanEvent(repository.DB.QueryRow(ctx, query, eventId))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Event{}, nil
		}
		return model.Event{}, err
	}

	return event, nil
}

func (repository *EventRepository) UpdateEventImage(ctx context.Context, eventId uuid.UUID, objectKey string, updateUserId uuid.UUID, updateDatetime time.Time) error {
	query := "UPDATE events SET image_object_key = $1, update_datetime = $2, update_user_id = $3 WHERE id = $4"

	_, err := repository.DB.Exec(ctx, query, objectKey, updateDatetime, updateUserId, eventId)
	if err != nil {
		return err
	}

	return nil
}

// ListClubEvents returns the club events ordered by start time.
func (repository *EventRepository) ListClubEvents(ctx context.Context, clubId uuid.UUID) ([]model.Event, error) {
	query := "SELECT " + eventColumns + " FROM events WHERE club_id = $1 ORDER BY start_datetime"

	rows, err := repository.DB.Query(ctx, query, clubId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}
