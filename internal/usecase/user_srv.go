package usecase

import (
	"context"

	"passwordless-auth/internal/data/entity"
	"passwordless-auth/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	Me(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	Logout(ctx context.Context, tokenKey string) error
}

type userService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.AuthTokenRepository
	log       *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, tokenRepo repository.AuthTokenRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		log:       log,
	}
}

func (s *userService) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load user profile",
			zap.Error(err), zap.String("user_id", userID.String()))
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

func (s *userService) Logout(ctx context.Context, tokenKey string) error {
	if err := s.tokenRepo.Revoke(ctx, tokenKey); err != nil {
		s.log.Warn("Failed to revoke auth token", zap.Error(err))
		return err
	}

	s.log.Info("User logged out")
	return nil
}
