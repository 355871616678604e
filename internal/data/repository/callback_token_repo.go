package repository

import (
	"context"
	"fmt"
	"time"

	"passwordless-auth/internal/data/entity"
	"passwordless-auth/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CallbackTokenRepository interface {
	Create(ctx context.Context, token *entity.CallbackToken) error
	// FindActive returns every active token matching (key, aliasType) whose
	// created_at is at or after cutoff. All matches are returned so the
	// caller can treat more than one as an integrity failure instead of
	// silently picking one.
	FindActive(ctx context.Context, key string, aliasType entity.AliasType, cutoff time.Time) ([]*entity.CallbackToken, error)
	// DeactivateActive deactivates every active token for the
	// (user, alias type) pair. Called before inserting a replacement.
	DeactivateActive(ctx context.Context, userID uuid.UUID, aliasType entity.AliasType) error
	// Consume deactivates the token iff it is still active. Returns
	// ErrTokenNotActive when a concurrent consumer got there first, so two
	// presentations of the same token can never both succeed.
	Consume(ctx context.Context, token *entity.CallbackToken) error
}

type callbackTokenRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCallbackTokenRepository(db database.PgxIface, log *zap.Logger) CallbackTokenRepository {
	return &callbackTokenRepository{
		db:  db,
		log: log.With(zap.String("repository", "callback_token")),
	}
}

func (r *callbackTokenRepository) Create(ctx context.Context, token *entity.CallbackToken) error {
	query := `
		INSERT INTO callback_tokens (id, user_id, key, alias_type,
		                             to_alias, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		token.ID,
		token.UserID,
		token.Key,
		token.AliasType,
		token.ToAlias,
		token.IsActive,
		token.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create callback token",
			zap.Error(err),
			zap.String("user_id", token.UserID.String()),
			zap.String("alias_type", string(token.AliasType)),
		)
		return fmt.Errorf("create callback token for user %s: %w", token.UserID.String(), err)
	}

	return nil
}

func (r *callbackTokenRepository) FindActive(ctx context.Context, key string, aliasType entity.AliasType, cutoff time.Time) ([]*entity.CallbackToken, error) {
	// created_at >= cutoff keeps a token created exactly one window ago
	// valid (inclusive boundary).
	query := `
		SELECT id, user_id, key, alias_type, to_alias, is_active, created_at
		FROM callback_tokens
		WHERE key = $1
		  AND alias_type = $2
		  AND is_active = true
		  AND created_at >= $3
	`

	rows, err := r.db.Query(ctx, query, key, aliasType, cutoff)
	if err != nil {
		r.log.Error("Failed to find active callback tokens",
			zap.Error(err),
			zap.String("alias_type", string(aliasType)),
		)
		return nil, fmt.Errorf("find active callback tokens type %s: %w", aliasType, err)
	}
	defer rows.Close()

	var tokens []*entity.CallbackToken
	for rows.Next() {
		var token entity.CallbackToken
		err := rows.Scan(
			&token.ID,
			&token.UserID,
			&token.Key,
			&token.AliasType,
			&token.ToAlias,
			&token.IsActive,
			&token.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan callback token row", zap.Error(err))
			return nil, fmt.Errorf("scan callback token row: %w", err)
		}
		tokens = append(tokens, &token)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate callback token rows: %w", err)
	}

	return tokens, nil
}

func (r *callbackTokenRepository) DeactivateActive(ctx context.Context, userID uuid.UUID, aliasType entity.AliasType) error {
	query := `
		UPDATE callback_tokens
		SET is_active = false
		WHERE user_id = $1 AND alias_type = $2 AND is_active = true
	`

	_, err := r.db.Exec(ctx, query, userID, aliasType)
	if err != nil {
		r.log.Error("Failed to deactivate callback tokens",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("alias_type", string(aliasType)),
		)
		return fmt.Errorf("deactivate callback tokens for user %s: %w", userID.String(), err)
	}

	return nil
}

func (r *callbackTokenRepository) Consume(ctx context.Context, token *entity.CallbackToken) error {
	// The is_active guard makes the lookup-then-consume race safe: of two
	// concurrent presentations exactly one update reports an affected row.
	query := `
		UPDATE callback_tokens
		SET is_active = false
		WHERE id = $1 AND is_active = true
	`

	result, err := r.db.Exec(ctx, query, token.ID)
	if err != nil {
		r.log.Error("Failed to consume callback token",
			zap.Error(err),
			zap.String("token_id", token.ID.String()),
		)
		return fmt.Errorf("consume callback token %s: %w", token.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrTokenNotActive
	}

	return nil
}
