package wire

import (
	"passwordless-auth/internal/adaptor"
	"passwordless-auth/internal/data/repository"
	"passwordless-auth/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Obtain a login token, then trade it for the auth token
	r.Post("/api/auth/email", authHandler.ObtainEmailToken)
	r.Post("/api/auth/mobile", authHandler.ObtainMobileToken)
	r.Post("/api/auth/token", authHandler.RedeemAuthToken)

	// ==================== PROTECTED ROUTES ====================
	// Alias verification requires an already authenticated requester
	auth := middleware.Auth(repo.AuthToken, log)
	r.With(auth).Post("/api/verify/email", authHandler.ObtainEmailVerificationToken)
	r.With(auth).Post("/api/verify/mobile", authHandler.ObtainMobileVerificationToken)
	r.With(auth).Post("/api/verify", authHandler.VerifyAlias)
}
