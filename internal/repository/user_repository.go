package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ferdian3456/clubconnect/internal/constant"
	"github.com/ferdian3456/clubconnect/internal/model"
	"github.com/ferdian3456/clubconnect/internal/util"
	"github.com/google/uuid"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type UserRepository struct {
	Log     *zap.Logger
	DB      *pgxpool.Pool
	DBCache *redis.Client
}

func NewUserRepository(zap *zap.Logger, db *pgxpool.Pool, dbCache *redis.Client) *UserRepository {
	return &UserRepository{
		Log:     zap,
		DB:      db,
		DBCache: dbCache,
	}
}

const userColumns = "id, username, fullname, email, password, role, is_staff, last_seen_datetime, create_datetime, update_datetime, create_user_id, update_user_id"

func scanUser(row pgx.Row) (model.User, error) {
	user := model.User{}
	err := row.Scan(&user.Id, &user.Username, &user.Fullname, &user.Email, &user.Password, &user.Role, &user.IsStaff, &user.LastSeenDatetime, &user.CreateDatetime, &user.UpdateDatetime, &user.CreateUserId, &user.UpdateUserId)
	return user, err
}

// Postgresql
func (repository *UserRepository) Register(ctx context.Context, user model.User) error {
	query := "INSERT INTO users (" + userColumns + ") VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)"

	_, err := repository.DB.Exec(ctx, query, user.Id, user.Username, user.Fullname, user.Email, user.Password, user.Role, user.IsStaff, user.LastSeenDatetime, user.CreateDatetime, user.UpdateDatetime, user.CreateUserId, user.UpdateUserId)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrDuplicate
		}
		return err
	}

	return nil
}

func (repository *UserRepository) CheckUsernameOrEmailUnique(ctx context.Context, username string, email string) (string, string, error) {
	query := "SELECT username,email FROM users WHERE username=$1 OR email=$2 LIMIT 1"

	var existUsername string
	var existEmail string
	err := repository.DB.QueryRow(ctx, query, username, email).Scan(&existUsername, &existEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return existUsername, existEmail, nil
		}
		return existUsername, existEmail, err
	}

	return existUsername, existEmail, nil
}

func (repository *UserRepository) GetUserAuth(ctx context.Context, username string) (uuid.UUID, string, error) {
	query := "SELECT id,password FROM users WHERE username=$1 LIMIT 1"

	var id uuid.UUID
	var passwordHash string

	err := repository.DB.QueryRow(ctx, query, username).Scan(&id, &passwordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return id, passwordHash, &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: "Username is not found",
				Param:   "username",
			}
		}
		return id, passwordHash, err
	}

	return id, passwordHash, nil
}

// FindUserById returns a zero User when the id does not exist.
func (repository *UserRepository) FindUserById(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id=$1"

	user, err := scanUser(repository.DB.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, nil
		}
		return model.User{}, err
	}

	return user, nil
}

func (repository *UserRepository) FindUserByUsername(ctx context.Context, username string) (model.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE username=$1"

	user, err := scanUser(repository.DB.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, nil
		}
		return model.User{}, err
	}

	return user, nil
}

func (repository *UserRepository) UpdateUserRole(ctx context.Context, userId uuid.UUID, role model.Role, isStaff bool, updateUserId uuid.UUID, updateDatetime time.Time) error {
	query := "UPDATE users SET role = $1, is_staff = $2, update_datetime = $3, update_user_id = $4 WHERE id = $5"

	_, err := repository.DB.Exec(ctx, query, role, isStaff, updateDatetime, updateUserId, userId)
	if err != nil {
		return err
	}

	return nil
}

func (repository *UserRepository) UpdateLastSeen(ctx context.Context, userId uuid.UUID, lastSeen time.Time) error {
	query := "UPDATE users SET last_seen_datetime = $1 WHERE id = $2"

	_, err := repository.DB.Exec(ctx, query, lastSeen, userId)
	if err != nil {
		return err
	}

	return nil
}

// SearchFounderCandidates lists founders, or founders and students matching
// query on username, email or fullname when query is not empty.
func (repository *UserRepository) SearchFounderCandidates(ctx context.Context, query string, limit int) ([]model.FounderCandidateResponse, error) {
	var rows pgx.Rows
	var err error

	if query == "" {
		sql := `
			SELECT id, username, fullname, email, role
			FROM users
			WHERE role = 'founder'
			ORDER BY username
			LIMIT $1
		`
		rows, err = repository.DB.Query(ctx, sql, limit)
	} else {
		sql := `
			SELECT id, username, fullname, email, role
			FROM users
			WHERE role IN ('founder', 'student')
			AND (username ILIKE $1 OR email ILIKE $1 OR fullname ILIKE $1)
			ORDER BY username
			LIMIT $2
		`
		rows, err = repository.DB.Query(ctx, sql, "%"+query+"%", limit)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := []model.FounderCandidateResponse{}
	for rows.Next() {
		var candidate model.FounderCandidateResponse
		err := rows.Scan(&candidate.Id, &candidate.Username, &candidate.Fullname, &candidate.Email, &candidate.Role)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, candidate)
	}

	return candidates, rows.Err()
}

func (repository *UserRepository) ListUsersByRole(ctx context.Context, role model.Role) ([]model.UserSummary, error) {
	query := "SELECT id, username, fullname, role FROM users WHERE role = $1 ORDER BY username"

	rows, err := repository.DB.Query(ctx, query, role)
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

// Redis - Cache
func (repository *UserRepository) SetAuthTokenInCache(ctx context.Context, accessToken string, refreshToken string, userId uuid.UUID) error {
	accessTokenKey := fmt.Sprintf("auth:accessToken:%s", userId)
	refreshTokenKey := fmt.Sprintf("auth:refreshToken:%s", userId)

	hashedAccessToken := util.HashToken(accessToken)
	hashedRefreshToken := util.HashToken(refreshToken)

	_, err := repository.DBCache.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, accessTokenKey, hashedAccessToken, util.AccessTokenDuration)
		pipe.Set(ctx, refreshTokenKey, hashedRefreshToken, util.RefreshTokenDuration)
		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

func (repository *UserRepository) GetAccessTokenInCache(ctx context.Context, userId uuid.UUID) (string, error) {
	accessTokenKey := fmt.Sprintf("auth:accessToken:%s", userId)
	hashedToken, err := repository.DBCache.Get(ctx, accessTokenKey).Result()
	if errors.Is(err, redis.Nil) {
		return hashedToken, &model.ValidationError{
			Code:    constant.ERR_UNATHORIZED_ERROR,
			Message: "Authorization token not found or expired",
			Param:   "accessToken",
		}
	} else if err != nil {
		return hashedToken, err
	}

	return hashedToken, nil
}

func (repository *UserRepository) RemoveAuthToken(ctx context.Context, userId uuid.UUID) error {
	accessTokenKey := fmt.Sprintf("auth:accessToken:%s", userId)
	refreshTokenKey := fmt.Sprintf("auth:refreshToken:%s", userId)

	err := repository.DBCache.Del(ctx, accessTokenKey, refreshTokenKey).Err()
	if err != nil {
		return err
	}

	return nil
}
