package usecase

import (
	"passwordless-auth/internal/data/repository"
	"passwordless-auth/internal/notify"
	"passwordless-auth/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Passwordless PasswordlessService
	User         UserService
}

func NewService(repo *repository.Repository, senders notify.Senders, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Passwordless: NewPasswordlessService(repo, senders, config, log),
		User:         NewUserService(repo.User, repo.AuthToken, log),
	}
}
