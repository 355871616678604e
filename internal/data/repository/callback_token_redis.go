package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"passwordless-auth/internal/data/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis-backed callback token store. Layout:
//
//	cbtoken:{alias_type}:{key}           hash of user_id -> token payload
//	cbtoken:active:{alias_type}:{user}   key of the user's current token
//
// Tokens for distinct users that happen to share a key land in the same
// hash, which is what lets FindActive see a collision instead of one entry
// silently overwriting the other. Keys carry a TTL of the expiry window as
// a cleanup mechanism only; validity is still decided by the cutoff check
// at read time.
type redisCallbackTokenRepository struct {
	client redis.UniversalClient
	window time.Duration
	log    *zap.Logger
}

type redisTokenPayload struct {
	ID        uuid.UUID `json:"id"`
	ToAlias   string    `json:"to_alias"`
	CreatedAt time.Time `json:"created_at"`
}

func NewRedisCallbackTokenRepository(client redis.UniversalClient, window time.Duration, log *zap.Logger) CallbackTokenRepository {
	return &redisCallbackTokenRepository{
		client: client,
		window: window,
		log:    log.With(zap.String("repository", "callback_token_redis")),
	}
}

func tokenHashKey(aliasType entity.AliasType, key string) string {
	return fmt.Sprintf("cbtoken:%s:%s", aliasType, key)
}

func activeIndexKey(aliasType entity.AliasType, userID uuid.UUID) string {
	return fmt.Sprintf("cbtoken:active:%s:%s", aliasType, userID.String())
}

func (r *redisCallbackTokenRepository) Create(ctx context.Context, token *entity.CallbackToken) error {
	payload, err := json.Marshal(redisTokenPayload{
		ID:        token.ID,
		ToAlias:   token.ToAlias,
		CreatedAt: token.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal callback token payload: %w", err)
	}

	hashKey := tokenHashKey(token.AliasType, token.Key)
	indexKey := activeIndexKey(token.AliasType, token.UserID)

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, hashKey, token.UserID.String(), payload)
	pipe.PExpire(ctx, hashKey, r.window)
	pipe.Set(ctx, indexKey, token.Key, r.window)

	if _, err := pipe.Exec(ctx); err != nil {
		r.log.Error("Failed to create callback token",
			zap.Error(err),
			zap.String("user_id", token.UserID.String()),
			zap.String("alias_type", string(token.AliasType)),
		)
		return fmt.Errorf("create callback token for user %s: %w", token.UserID.String(), err)
	}

	return nil
}

func (r *redisCallbackTokenRepository) FindActive(ctx context.Context, key string, aliasType entity.AliasType, cutoff time.Time) ([]*entity.CallbackToken, error) {
	entries, err := r.client.HGetAll(ctx, tokenHashKey(aliasType, key)).Result()
	if err != nil {
		r.log.Error("Failed to find active callback tokens",
			zap.Error(err),
			zap.String("alias_type", string(aliasType)),
		)
		return nil, fmt.Errorf("find active callback tokens type %s: %w", aliasType, err)
	}

	var tokens []*entity.CallbackToken
	for field, raw := range entries {
		userID, err := uuid.Parse(field)
		if err != nil {
			r.log.Error("Malformed user id field in token hash", zap.String("field", field))
			continue
		}

		var payload redisTokenPayload
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			r.log.Error("Malformed callback token payload", zap.Error(err), zap.String("field", field))
			continue
		}

		// TTL cleanup is best effort; the inclusive cutoff check is
		// authoritative.
		if payload.CreatedAt.Before(cutoff) {
			continue
		}

		tokens = append(tokens, &entity.CallbackToken{
			BaseSimple: entity.BaseSimple{
				ID:        payload.ID,
				CreatedAt: payload.CreatedAt,
			},
			UserID:    userID,
			Key:       key,
			AliasType: aliasType,
			ToAlias:   payload.ToAlias,
			IsActive:  true,
		})
	}

	return tokens, nil
}

func (r *redisCallbackTokenRepository) DeactivateActive(ctx context.Context, userID uuid.UUID, aliasType entity.AliasType) error {
	indexKey := activeIndexKey(aliasType, userID)

	previousKey, err := r.client.GetDel(ctx, indexKey).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		r.log.Error("Failed to read active token index",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("deactivate callback tokens for user %s: %w", userID.String(), err)
	}

	if err := r.client.HDel(ctx, tokenHashKey(aliasType, previousKey), userID.String()).Err(); err != nil {
		r.log.Error("Failed to remove superseded token",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("deactivate callback tokens for user %s: %w", userID.String(), err)
	}

	return nil
}

func (r *redisCallbackTokenRepository) Consume(ctx context.Context, token *entity.CallbackToken) error {
	// HDEL is atomic: of two concurrent presentations only one removal
	// reports a deleted field.
	removed, err := r.client.HDel(ctx, tokenHashKey(token.AliasType, token.Key), token.UserID.String()).Result()
	if err != nil {
		r.log.Error("Failed to consume callback token",
			zap.Error(err),
			zap.String("token_id", token.ID.String()),
		)
		return fmt.Errorf("consume callback token %s: %w", token.ID.String(), err)
	}

	if removed == 0 {
		return ErrTokenNotActive
	}

	// Best-effort index cleanup; a stale index entry only costs one extra
	// HDEL on the next issuance.
	r.client.Del(ctx, activeIndexKey(token.AliasType, token.UserID))

	return nil
}
