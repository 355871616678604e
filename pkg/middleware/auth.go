package middleware

import (
	"net/http"
	"strings"

	"passwordless-auth/internal/data/repository"
	"passwordless-auth/pkg/utils"

	"go.uber.org/zap"
)

// Auth validates the persistent auth token from the Authorization header
// and puts the owning user on the request context.
func Auth(tokenRepo repository.AuthTokenRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			key := parts[1]

			token, err := tokenRepo.FindByKey(r.Context(), key)
			if err != nil {
				logger.Error("Failed to validate auth token", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if token == nil {
				logger.Warn("Unknown auth token presented")
				utils.ResponseUnauthorized(w, "Invalid token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), token.UserID)
			ctx = utils.SetTokenContext(ctx, key)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
