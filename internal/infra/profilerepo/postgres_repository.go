package profilerepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/mindmend/internal/domain/profile"
)

const profileColumns = `user_id, nickname, timezone, COALESCE(avatar_key, ''), COALESCE(avatar_content_type, ''), created_at, updated_at`

// PostgresRepository stores profiles in the profiles table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Get(ctx context.Context, userID int64) (profile.Profile, bool, error) {
	p, err := scanProfile(r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return profile.Profile{}, false, nil
	}
	if err != nil {
		return profile.Profile{}, false, err
	}
	return p, true, nil
}

// CreateIfAbsent relies on the user_id primary key so concurrent syncs for the
// same user converge on one row.
func (r *PostgresRepository) CreateIfAbsent(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO profiles (user_id, nickname, timezone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO NOTHING
	`, p.UserID, p.Nickname, p.Timezone, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return profile.Profile{}, err
	}
	stored, found, err := r.Get(ctx, p.UserID)
	if err != nil {
		return profile.Profile{}, err
	}
	if !found {
		return profile.Profile{}, errors.New("profile vanished after insert")
	}
	return stored, nil
}

func (r *PostgresRepository) SetAvatar(ctx context.Context, userID int64, key, contentType string) (profile.Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx, `
		UPDATE profiles
		SET avatar_key = $2, avatar_content_type = $3, updated_at = NOW()
		WHERE user_id = $1
		RETURNING `+profileColumns, userID, key, contentType))
}

func scanProfile(row pgx.Row) (profile.Profile, error) {
	var p profile.Profile
	if err := row.Scan(&p.UserID, &p.Nickname, &p.Timezone, &p.AvatarKey, &p.AvatarContentType, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return profile.Profile{}, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

var _ profile.Repository = (*PostgresRepository)(nil)
