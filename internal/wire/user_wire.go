package wire

import (
	"passwordless-auth/internal/adaptor"
	"passwordless-auth/internal/data/repository"
	"passwordless-auth/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	auth := middleware.Auth(repo.AuthToken, log)
	r.With(auth).Get("/api/me", userHandler.Me)
	r.With(auth).Post("/api/logout", userHandler.Logout)
}
