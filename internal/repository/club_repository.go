package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/ferdian3456/clubconnect/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const clubCacheTTL = 10 * time.Minute

type ClubRepository struct {
	Log     *zap.Logger
	DB      *pgxpool.Pool
	DBCache *redis.Client
}

func NewClubRepository(zap *zap.Logger, db *pgxpool.Pool, dbCache *redis.Client) *ClubRepository {
	return &ClubRepository{
		Log:     zap,
		DB:      db,
		DBCache: dbCache,
	}
}

const clubColumns = "id, name, short_description, long_description, domain_tags, faculty_advisor, logo_object_key, create_datetime, update_datetime, create_user_id, update_user_id"

func scanClub(row pgx.Row) (model.Club, error) {
	club := model.Club{}
	err := row.Scan(&club.Id, &club.Name, &club.ShortDescription, &club.LongDescription, &club.DomainTags, &club.FacultyAdvisor, &club.LogoObjectKey, &club.CreateDatetime, &club.UpdateDatetime, &club.CreateUserId, &club.UpdateUserId)
	return club, err
}

func scanClubs(rows pgx.Rows) ([]model.Club, error) {
	defer rows.Close()

	clubs := []model.Club{}
	for rows.Next() {
		club, err := scanClub(rows)
		if err != nil {
			return nil, err
		}
		clubs = append(clubs, club)
	}

	return clubs, rows.Err()
}

func (repository *ClubRepository) CreateClub(ctx context.Context, club model.Club) error {
	query := "INSERT INTO clubs (" + clubColumns + ") VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)"

	_, err := repository.DB.Exec(ctx, query, club.Id, club.Name, club.ShortDescription, club.LongDescription, club.DomainTags, club.FacultyAdvisor, club.LogoObjectKey, club.CreateDatetime, club.UpdateDatetime, club.CreateUserId, club.UpdateUserId)
	if err != nil {
		return err
	}

	return nil
}

// FindClubById returns a zero Club when the id does not exist.
func (repository *ClubRepository) FindClubById(ctx context.Context, clubId uuid.UUID) (model.Club, error) {
	query := "SELECT " + clubColumns + " FROM clubs WHERE id = $1"

	club, err := scanClub(repository.DB.QueryRow(ctx, query, clubId))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Club{}, nil
		}
		return model.Club{}, err
	}

	return club, nil
}

func (repository *ClubRepository) UpdateClub(ctx context.Context, club model.Club) error {
	query := `
		UPDATE clubs
		SET name = $1, short_description = $2, long_description = $3, domain_tags = $4, faculty_advisor = $5,
		    update_datetime = $6, update_user_id = $7
		WHERE id = $8
	`

	_, err := repository.DB.Exec(ctx, query, club.Name, club.ShortDescription, club.LongDescription, club.DomainTags, club.FacultyAdvisor, club.UpdateDatetime, club.UpdateUserId, club.Id)
	if err != nil {
		return err
	}

	return nil
}

func (repository *ClubRepository) UpdateClubLogo(ctx context.Context, clubId uuid.UUID, objectKey string, updateUserId uuid.UUID, updateDatetime time.Time) error {
	query := "UPDATE clubs SET logo_object_key = $1, update_datetime = $2, update_user_id = $3 WHERE id = $4"

	_, err := repository.DB.Exec(ctx, query, objectKey, updateDatetime, updateUserId, clubId)
	if err != nil {
		return err
	}

	return nil
}

func (repository *ClubRepository) ListClubs(ctx context.Context, limit int, cursor *model.ClubCursor) ([]model.Club, error) {
	var rows pgx.Rows
	var err error

	cursorId, parseErr := uuid.Parse(cursor.Id)
	if parseErr == nil && !cursor.CreateDatetime.IsZero() {
		queryWithCursor := "SELECT " + clubColumns + `
			FROM clubs
			WHERE (create_datetime < $1 OR (create_datetime = $1 AND id < $2))
			ORDER BY create_datetime DESC, id DESC
			LIMIT $3
		`
		rows, err = repository.DB.Query(ctx, queryWithCursor, cursor.CreateDatetime, cursorId, limit)
	} else {
		query := "SELECT " + clubColumns + `
			FROM clubs
			ORDER BY create_datetime DESC, id DESC
			LIMIT $1
		`
		rows, err = repository.DB.Query(ctx, query, limit)
	}

	if err != nil {
		return nil, err
	}

	return scanClubs(rows)
}

func (repository *ClubRepository) SearchClubs(ctx context.Context, search string, limit int) ([]model.Club, error) {
	query := "SELECT " + clubColumns + `
		FROM clubs
		WHERE name ILIKE $1 OR short_description ILIKE $1 OR domain_tags ILIKE $1
		ORDER BY name
		LIMIT $2
	`

	rows, err := repository.DB.Query(ctx, query, "%"+search+"%", limit)
	if err != nil {
		return nil, err
	}

	return scanClubs(rows)
}

func (repository *ClubRepository) GetClubFounders(ctx context.Context, clubId uuid.UUID) ([]model.UserSummary, error) {
	query := `
		SELECT u.id, u.username, u.fullname, u.role
		FROM club_founders cf
		INNER JOIN users u ON u.id = cf.user_id
		WHERE cf.club_id = $1
		ORDER BY u.username
	`

	rows, err := repository.DB.Query(ctx, query, clubId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	founders := []model.UserSummary{}
	for rows.Next() {
		var founder model.UserSummary
		err := rows.Scan(&founder.Id, &founder.Username, &founder.Fullname, &founder.Role)
		if err != nil {
			return nil, err
		}
		founders = append(founders, founder)
	}

	return founders, rows.Err()
}

func (repository *ClubRepository) CheckClubFounder(ctx context.Context, clubId uuid.UUID, userId uuid.UUID) (int, error) {
	query := "SELECT 1 FROM club_founders WHERE club_id = $1 AND user_id = $2"

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

// AssignFounder adds userId to the club founders, promoting a student to the
// founder role in the same transaction. Assigning an existing founder is a no-op.
func (repository *ClubRepository) AssignFounder(ctx context.Context, clubId uuid.UUID, userId uuid.UUID, promote bool, actorId uuid.UUID, now time.Time) error {
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

	if promote {
		query := "UPDATE users SET role = 'founder', update_datetime = $1, update_user_id = $2 WHERE id = $3 AND role = 'student'"
		_, err = tx.Exec(ctx, query, now, actorId, userId)
		if err != nil {
			return err
		}
	}

	query := "INSERT INTO club_founders (club_id, user_id, create_datetime, create_user_id) VALUES ($1, $2, $3, $4) ON CONFLICT (club_id, user_id) DO NOTHING"
	_, err = tx.Exec(ctx, query, clubId, userId, now, actorId)
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

// Redis - Cache
func clubCacheKey(clubId uuid.UUID) string {
	return fmt.Sprintf("club:%s", clubId)
}

func (repository *ClubRepository) GetClubFromCache(ctx context.Context, clubId uuid.UUID) (model.Club, bool, error) {
	club := model.Club{}

	value, err := repository.DBCache.Get(ctx, clubCacheKey(clubId)).Bytes()
	if errors.Is(err, redis.Nil) {
		return club, false, nil
	} else if err != nil {
		return club, false, err
	}

	err = sonic.Unmarshal(value, &club)
	if err != nil {
		return club, false, err
	}

	return club, true, nil
}

func (repository *ClubRepository) SetClubInCache(ctx context.Context, club model.Club) error {
	value, err := sonic.Marshal(club)
	if err != nil {
		return err
	}

	return repository.DBCache.Set(ctx, clubCacheKey(club.Id), value, clubCacheTTL).Err()
}

func (repository *ClubRepository) DeleteClubFromCache(ctx context.Context, clubId uuid.UUID) error {
	return repository.DBCache.Del(ctx, clubCacheKey(clubId)).Err()
}
