package repository

import (
	"errors"

	"passwordless-auth/pkg/database"

	"go.uber.org/zap"
)

// ErrTokenNotActive is returned by CallbackTokenRepository.Consume when the
// token was already deactivated by the time the conditional update ran,
// typically because a concurrent presentation won the race or a newer token
// superseded it.
var ErrTokenNotActive = errors.New("callback token is no longer active")

type Repository struct {
	User          UserRepository
	CallbackToken CallbackTokenRepository
	AuthToken     AuthTokenRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:          NewUserRepository(db, log),
		CallbackToken: NewCallbackTokenRepository(db, log),
		AuthToken:     NewAuthTokenRepository(db, log),
	}
}
