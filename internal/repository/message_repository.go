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

type MessageRepository struct {
	Log *zap.Logger
	DB  *pgxpool.Pool
}

func NewMessageRepository(zap *zap.Logger, db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{
		Log: zap,
		DB:  db,
	}
}

const messageResponseQuery = `
	SELECT m.id, m.sender_id, s.username, m.receiver_id, r.username, m.club_id, m.content, m.is_read, m.create_datetime
	FROM messages m
	INNER JOIN users s ON s.id = m.sender_id
	INNER JOIN users r ON r.id = m.receiver_id
`

func scanMessageResponses(rows pgx.Rows) ([]model.MessageResponse, error) {
	defer rows.Close()

	messages := []model.MessageResponse{}
	for rows.Next() {
		var message model.MessageResponse
		err := rows.Scan(&message.Id, &message.SenderId, &message.SenderUsername, &message.ReceiverId, &message.ReceiverUsername, &message.ClubId, &message.Content, &message.IsRead, &message.CreateDatetime)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}

	return messages, rows.Err()
}

func (repository *MessageRepository) CreateMessage(ctx context.Context, message model.Message) error {
	query := "INSERT INTO messages (id, sender_id, receiver_id, club_id, content, is_read, create_datetime) VALUES ($1,$2,$3,$4,$5,$6,$7)"

	_, err := repository.DB.Exec(ctx, query, message.Id, message.SenderId, message.ReceiverId, message.ClubId, message.Content, message.IsRead, message.CreateDatetime)
	if err != nil {
		return err
	}

	return nil
}

func (repository *MessageRepository) FindMessageById(ctx context.Context, messageId uuid.UUID) (model.Message, error) {
	query := "SELECT id, sender_id, receiver_id, club_id, content, is_read, create_datetime FROM messages WHERE id = $1"

	message := model.Message{}
	err := repository.DB.QueryRow(ctx, query, messageId).Scan(&message.Id, &message.SenderId, &message.ReceiverId, &message.ClubId, &message.Content, &message.IsRead, &message.CreateDatetime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Message{}, nil
		}
		return model.Message{}, err
	}

	return message, nil
}

func (repository *MessageRepository) MarkMessageRead(ctx context.Context, messageId uuid.UUID) error {
	query := "UPDATE messages SET is_read = TRUE WHERE id = $1"

	_, err := repository.DB.Exec(ctx, query, messageId)
	if err != nil {
		return err
	}

	return nil
}

// ListClubMessages returns the club scoped conversation, oldest first.
func (repository *MessageRepository) ListClubMessages(ctx context.Context, clubId uuid.UUID) ([]model.MessageResponse, error) {
	query := messageResponseQuery + " WHERE m.club_id = $1 ORDER BY m.create_datetime"

	rows, err := repository.DB.Query(ctx, query, clubId)
	if err != nil {
		return nil, err
	}

	return scanMessageResponses(rows)
}

func (repository *MessageRepository) ListReceivedMessages(ctx context.Context, userId uuid.UUID, limit int) ([]model.MessageResponse, error) {
	query := messageResponseQuery + " WHERE m.receiver_id = $1 ORDER BY m.create_datetime DESC LIMIT $2"

	rows, err := repository.DB.Query(ctx, query, userId, limit)
	if err != nil {
		return nil, err
	}

	return scanMessageResponses(rows)
}
