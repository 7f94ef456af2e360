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

type PostRepository struct {
	Log *zap.Logger
	DB  *pgxpool.Pool
}

func NewPostRepository(zap *zap.Logger, db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		Log: zap,
		DB:  db,
	}
}

func (repository *PostRepository) CreatePost(ctx context.Context, post model.ClubPost) error {
	query := "INSERT INTO club_posts (id, club_id, author_id, content, like_count, create_datetime, update_datetime, create_user_id, update_user_id) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)"

	_, err := repository.DB.Exec(ctx, query, post.Id, post.ClubId, post.AuthorId, post.Content, post.LikeCount, post.CreateDatetime, post.UpdateDatetime, post.CreateUserId, post.UpdateUserId)
	if err != nil {
		return err
	}

	return nil
}

func (repository *PostRepository) FindPostById(ctx context.Context, postId uuid.UUID) (model.ClubPost, error) {
	query := "SELECT id, club_id, author_id, content, like_count, create_datetime, update_datetime, create_user_id, update_user_id FROM club_posts WHERE id = $1"

	post := model.ClubPost{}
	err := repository.DB.QueryRow(ctx, query, postId).Scan(&post.Id, &post.ClubId, &post.AuthorId, &post.Content, &post.LikeCount, &post.CreateDatetime, &post.UpdateDatetime, &post.CreateUserId, &post.UpdateUserId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ClubPost{}, nil
		}
		return model.ClubPost{}, err
	}

	return post, nil
}

func (repository *PostRepository) ListClubPosts(ctx context.Context, clubId uuid.UUID, limit int, cursor *model.ClubPostCursor) ([]model.ClubPostResponse, error) {
	var rows pgx.Rows
	var err error

	cursorId, parseErr := uuid.Parse(cursor.Id)
	if parseErr == nil && !cursor.CreateDatetime.IsZero() {
		queryWithCursor := `
			SELECT p.id, p.club_id, p.author_id, u.username, p.content, p.like_count, p.create_datetime, p.update_datetime
			FROM club_posts p
			INNER JOIN users u ON u.id = p.author_id
			WHERE p.club_id = $1
			AND (p.create_datetime < $2 OR (p.create_datetime = $2 AND p.id < $3))
			ORDER BY p.create_datetime DESC, p.id DESC
			LIMIT $4
		`
		rows, err = repository.DB.Query(ctx, queryWithCursor, clubId, cursor.CreateDatetime, cursorId, limit)
	} else {
		query := `
			SELECT p.id, p.club_id, p.author_id, u.username, p.content, p.like_count, p.create_datetime, p.update_datetime
			FROM club_posts p
			INNER JOIN users u ON u.id = p.author_id
			WHERE p.club_id = $1
			ORDER BY p.create_datetime DESC, p.id DESC
			LIMIT $2
		`
		rows, err = repository.DB.Query(ctx, query, clubId, limit)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []model.ClubPostResponse{}
	for rows.Next() {
		var post model.ClubPostResponse
		err := rows.Scan(&post.Id, &post.ClubId, &post.AuthorId, &post.AuthorUsername, &post.Content, &post.LikeCount, &post.CreateDatetime, &post.UpdateDatetime)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, rows.Err()
}

// CreatePostLike records the like and bumps the post counter atomically.
// A second like by the same user returns model.ErrDuplicate.
func (repository *PostRepository) CreatePostLike(ctx context.Context, like model.ClubPostLike) error {
	commited := false

	tx, err := repository.DB.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if !commited {
			_ = tx.Rollback(ctx)
		}
	}()

	query := "INSERT INTO club_post_likes (post_id, user_id, create_datetime) VALUES ($1, $2, $3)"
	_, err = tx.Exec(ctx, query, like.PostId, like.UserId, like.CreateDatetime)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrDuplicate
		}
		return err
	}

	query = "UPDATE club_posts SET like_count = like_count + 1 WHERE id = $1"
	_, err = tx.Exec(ctx, query, like.PostId)
	if err != nil {
		return err
	}

	err = tx.Commit(ctx)
	if err != nil {
		return err
	}

	commited = true

	return nil
}

// DeletePostLike reports whether a like was removed.
func (repository *PostRepository) DeletePostLike(ctx context.Context, postId uuid.UUID, userId uuid.UUID) (bool, error) {
	commited := false

	tx, err := repository.DB.Begin(ctx)
	if err != nil {
		return false, err
	}

	defer func() {
		if !commited {
			_ = tx.Rollback(ctx)
		}
	}()

	query := "DELETE FROM club_post_likes WHERE post_id = $1 AND user_id = $2"
	tag, err := tx.Exec(ctx, query, postId, userId)
	if err != nil {
		return false, err
	}

	if tag.RowsAffected() == 0 {
		return false, nil
	}

	query = "UPDATE club_posts SET like_count = like_count - 1 WHERE id = $1 AND like_count > 0"
	_, err = tx.Exec(ctx, query, postId)
	if err != nil {
		return false, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		return false, err
	}

	commited = true

	return true, nil
}
