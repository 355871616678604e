package adaptor

import (
	"net/http"

	"passwordless-auth/internal/dto/response"
	"passwordless-auth/internal/usecase"
	"passwordless-auth/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

// Me handles GET /api/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	user, err := h.service.Me(r.Context(), userID)
	if err != nil {
		h.log.Error("Failed to load profile", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseOK(w, response.UserToResponse(user))
}

// Logout handles POST /api/logout
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tokenKey, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Logout(r.Context(), tokenKey); err != nil {
		h.log.Warn("Logout failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Could not log you out.", nil)
		return
	}

	utils.ResponseSuccess(w, "Logged out.")
}
