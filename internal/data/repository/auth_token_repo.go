package repository

import (
	"context"
	"fmt"
	"time"

	"passwordless-auth/internal/data/entity"
	"passwordless-auth/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AuthTokenRepository interface {
	// GetOrCreate returns the user's auth token, creating one on first
	// login. The second return value reports whether a new token was
	// created by this call.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.AuthToken, bool, error)
	FindByKey(ctx context.Context, key string) (*entity.AuthToken, error)
	Revoke(ctx context.Context, key string) error
}

type authTokenRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAuthTokenRepository(db database.PgxIface, log *zap.Logger) AuthTokenRepository {
	return &authTokenRepository{
		db:  db,
		log: log.With(zap.String("repository", "auth_token")),
	}
}

func (r *authTokenRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.AuthToken, bool, error) {
	// Upsert keyed on user_id: a concurrent first login races to a single
	// row instead of two credentials.
	query := `
		INSERT INTO auth_tokens (id, user_id, key, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET user_id = auth_tokens.user_id
		RETURNING id, user_id, key, created_at, (xmax = 0) AS inserted
	`

	candidate := &entity.AuthToken{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID: userID,
		Key:    uuid.New(),
	}

	var token entity.AuthToken
	var inserted bool
	err := r.db.QueryRow(ctx, query,
		candidate.ID,
		candidate.UserID,
		candidate.Key,
		candidate.CreatedAt,
	).Scan(
		&token.ID,
		&token.UserID,
		&token.Key,
		&token.CreatedAt,
		&inserted,
	)

	if err != nil {
		r.log.Error("Failed to get or create auth token",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, false, fmt.Errorf("get or create auth token for user %s: %w", userID.String(), err)
	}

	return &token, inserted, nil
}

func (r *authTokenRepository) FindByKey(ctx context.Context, key string) (*entity.AuthToken, error) {
	query := `
		SELECT id, user_id, key, created_at
		FROM auth_tokens
		WHERE key = $1
	`

	var token entity.AuthToken
	err := r.db.QueryRow(ctx, query, key).Scan(
		&token.ID,
		&token.UserID,
		&token.Key,
		&token.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find auth token", zap.Error(err))
		return nil, fmt.Errorf("find auth token: %w", err)
	}

	return &token, nil
}

func (r *authTokenRepository) Revoke(ctx context.Context, key string) error {
	query := `
		DELETE FROM auth_tokens
		WHERE key = $1
	`

	result, err := r.db.Exec(ctx, query, key)
	if err != nil {
		r.log.Error("Failed to revoke auth token", zap.Error(err))
		return fmt.Errorf("revoke auth token: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("auth token not found")
	}

	return nil
}
