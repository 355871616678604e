package usecase

import (
	"context"
	"errors"
	"time"

	"passwordless-auth/internal/data/entity"
	"passwordless-auth/internal/data/repository"
	"passwordless-auth/internal/notify"
	"passwordless-auth/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PasswordlessService interface {
	// RequestToken issues a login token for the user owning the alias and
	// hands it to the channel's sender. The token is created even when
	// delivery fails; that case returns the token together with
	// ErrDeliveryFailed so the caller can report it separately.
	RequestToken(ctx context.Context, alias string, aliasType entity.AliasType) (*entity.CallbackToken, error)

	// RequestVerificationToken issues a verification token for the
	// authenticated user's own alias of the given type.
	RequestVerificationToken(ctx context.Context, userID uuid.UUID, aliasType entity.AliasType) (*entity.CallbackToken, error)

	// IssueToken deactivates the user's prior active tokens for the alias
	// type and persists a fresh one. Delivery is the caller's concern.
	IssueToken(ctx context.Context, user *entity.User, aliasType entity.AliasType) (*entity.CallbackToken, error)

	// RedeemForSession exchanges a presented token for the resolved user's
	// auth token, creating the credential on first login.
	RedeemForSession(ctx context.Context, key string, aliasType entity.AliasType) (*entity.AuthToken, *entity.User, error)

	// RedeemForVerification consumes a presented token owned by
	// requestingUser and marks the corresponding alias verified. No
	// credential is minted; the requester is authenticated separately.
	RedeemForVerification(ctx context.Context, key string, aliasType entity.AliasType, requestingUser uuid.UUID) error
}

type passwordlessService struct {
	repo    *repository.Repository
	senders notify.Senders
	config  *utils.Config
	log     *zap.Logger
}

func NewPasswordlessService(
	repo *repository.Repository,
	senders notify.Senders,
	config *utils.Config,
	log *zap.Logger,
) PasswordlessService {
	return &passwordlessService{
		repo:    repo,
		senders: senders,
		config:  config,
		log:     log,
	}
}

func (s *passwordlessService) RequestToken(ctx context.Context, alias string, aliasType entity.AliasType) (*entity.CallbackToken, error) {
	// 1. Reject disabled channels before touching issuance
	if !s.config.Token.AliasTypeEnabled(string(aliasType)) {
		return nil, ErrAliasTypeDisabled
	}

	// 2. Resolve the alias to a user
	user, err := s.findUserByAlias(ctx, alias, aliasType)
	if err != nil {
		return nil, err
	}
	if user == nil {
		if !s.config.Token.RegisterNewUsers {
			return nil, ErrUserNotFound
		}
		user, err = s.registerUser(ctx, alias, aliasType)
		if err != nil {
			return nil, err
		}
	}
	if !user.IsActive {
		s.log.Warn("Token requested for inactive user", zap.String("user_id", user.ID.String()))
		return nil, ErrUserNotFound
	}

	// 3. Issue and deliver
	return s.issueAndDeliver(ctx, user, aliasType)
}

func (s *passwordlessService) RequestVerificationToken(ctx context.Context, userID uuid.UUID, aliasType entity.AliasType) (*entity.CallbackToken, error) {
	if !s.config.Token.AliasTypeEnabled(string(aliasType)) {
		return nil, ErrAliasTypeDisabled
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user for verification token",
			zap.Error(err), zap.String("user_id", userID.String()))
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrUserNotFound
	}

	// The token has to go somewhere: no alias of this type, no flow.
	if user.AliasValue(aliasType) == "" {
		return nil, ErrNoAlias
	}

	return s.issueAndDeliver(ctx, user, aliasType)
}

func (s *passwordlessService) IssueToken(ctx context.Context, user *entity.User, aliasType entity.AliasType) (*entity.CallbackToken, error) {
	// 1. Supersede prior active tokens for this (user, alias type) pair
	if err := s.repo.CallbackToken.DeactivateActive(ctx, user.ID, aliasType); err != nil {
		s.log.Error("Failed to deactivate prior tokens",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, err
	}

	// 2. Generate and persist the replacement
	token := &entity.CallbackToken{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    user.ID,
		Key:       utils.GenerateTokenKey(s.config.Token.Length),
		AliasType: aliasType,
		ToAlias:   user.AliasValue(aliasType),
		IsActive:  true,
	}

	if err := s.repo.CallbackToken.Create(ctx, token); err != nil {
		return nil, err
	}

	s.log.Info("Callback token issued",
		zap.String("user_id", user.ID.String()),
		zap.String("alias_type", string(aliasType)),
	)

	return token, nil
}

func (s *passwordlessService) RedeemForSession(ctx context.Context, key string, aliasType entity.AliasType) (*entity.AuthToken, *entity.User, error) {
	// 1. Match and consume the presented token
	user, err := s.matchToken(ctx, key, aliasType, nil)
	if err != nil {
		return nil, nil, err
	}

	// 2. Look up or create the persistent credential
	authToken, created, err := s.repo.AuthToken.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	// 3. First login through this path: make password auth impossible for
	// the account
	if created {
		if err := s.repo.User.SetPasswordHash(ctx, user.ID, utils.UnusablePasswordHash()); err != nil {
			s.log.Error("Failed to set unusable password",
				zap.Error(err), zap.String("user_id", user.ID.String()))
			// Credential already exists; the account stays usable
		}
	}

	s.log.Info("Callback token redeemed for session",
		zap.String("user_id", user.ID.String()),
		zap.String("alias_type", string(aliasType)),
		zap.Bool("token_created", created),
	)

	return authToken, user, nil
}

func (s *passwordlessService) RedeemForVerification(ctx context.Context, key string, aliasType entity.AliasType, requestingUser uuid.UUID) error {
	// 1. Match and consume; the token must belong to the requester
	user, err := s.matchToken(ctx, key, aliasType, &requestingUser)
	if err != nil {
		return err
	}

	// 2. Flip the verified flag for the channel
	if err := s.repo.User.SetAliasVerified(ctx, user.ID, aliasType); err != nil {
		s.log.Error("Failed to mark alias verified",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		return err
	}

	s.log.Info("Alias verified",
		zap.String("user_id", user.ID.String()),
		zap.String("alias_type", string(aliasType)),
	)

	return nil
}

// matchToken finds the single active, unexpired token for
// (key, alias type), binds it to exactly one user, and consumes it.
func (s *passwordlessService) matchToken(ctx context.Context, key string, aliasType entity.AliasType, expectedUser *uuid.UUID) (*entity.User, error) {
	window := time.Duration(s.config.Token.ExpiryMinutes) * time.Minute
	cutoff := time.Now().Add(-window)

	// 1. Active, unexpired candidates only; the boundary is inclusive
	tokens, err := s.repo.CallbackToken.FindActive(ctx, key, aliasType, cutoff)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, ErrInvalidOrExpiredToken
	}

	// 2. More than one active user per key is an integrity violation.
	// Never guess; fail and alert.
	if len(tokens) > 1 {
		s.log.Error("Ambiguous callback token: key matches multiple active users",
			zap.String("alias_type", string(aliasType)),
			zap.Int("matches", len(tokens)),
		)
		return nil, ErrAmbiguousToken
	}

	token := tokens[0]

	// 3. Verification flow authenticates the requester separately; the
	// token must resolve to that same user. Checked before consumption so
	// someone else's token is not burned.
	if expectedUser != nil && token.UserID != *expectedUser {
		s.log.Warn("Callback token user mismatch",
			zap.String("token_user", token.UserID.String()),
			zap.String("requesting_user", expectedUser.String()),
		)
		return nil, ErrTokenUserMismatch
	}

	// 4. Single-use: consumption is atomic with the lookup, so a
	// concurrent presentation of the same token fails here
	if err := s.repo.CallbackToken.Consume(ctx, token); err != nil {
		if errors.Is(err, repository.ErrTokenNotActive) {
			return nil, ErrInvalidOrExpiredToken
		}
		return nil, err
	}

	// 5. Resolve the owner
	user, err := s.repo.User.FindByID(ctx, token.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		s.log.Error("Consumed token resolves to missing or inactive user",
			zap.String("user_id", token.UserID.String()))
		return nil, ErrInvalidOrExpiredToken
	}

	return user, nil
}

func (s *passwordlessService) findUserByAlias(ctx context.Context, alias string, aliasType entity.AliasType) (*entity.User, error) {
	var user *entity.User
	var err error

	switch aliasType {
	case entity.AliasTypeEmail:
		user, err = s.repo.User.FindByEmail(ctx, alias)
	case entity.AliasTypeMobile:
		user, err = s.repo.User.FindByMobile(ctx, alias)
	default:
		return nil, ErrAliasTypeDisabled
	}

	if err != nil {
		s.log.Error("Failed to find user by alias",
			zap.Error(err), zap.String("alias_type", string(aliasType)))
		return nil, err
	}

	return user, nil
}

// registerUser creates a new account from nothing but an alias. Accounts
// created this way never get a usable password.
func (s *passwordlessService) registerUser(ctx context.Context, alias string, aliasType entity.AliasType) (*entity.User, error) {
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     alias,
		PasswordHash: utils.UnusablePasswordHash(),
		IsActive:     true,
	}

	switch aliasType {
	case entity.AliasTypeEmail:
		user.Email = alias
	case entity.AliasTypeMobile:
		mobile := alias
		user.Mobile = &mobile
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("Registered new user from alias",
		zap.String("user_id", user.ID.String()),
		zap.String("alias_type", string(aliasType)),
	)

	return user, nil
}

func (s *passwordlessService) issueAndDeliver(ctx context.Context, user *entity.User, aliasType entity.AliasType) (*entity.CallbackToken, error) {
	token, err := s.IssueToken(ctx, user, aliasType)
	if err != nil {
		return nil, err
	}

	sender, ok := s.senders[aliasType]
	if !ok {
		s.log.Error("No sender configured for alias type",
			zap.String("alias_type", string(aliasType)))
		return token, ErrDeliveryFailed
	}

	if err := sender.Send(ctx, token.ToAlias, token); err != nil {
		s.log.Error("Failed to deliver callback token",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
			zap.String("alias_type", string(aliasType)),
		)
		// The token exists and stays redeemable; only delivery failed
		return token, ErrDeliveryFailed
	}

	return token, nil
}
