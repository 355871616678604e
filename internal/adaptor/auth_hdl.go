package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"passwordless-auth/internal/data/entity"
	"passwordless-auth/internal/dto/request"
	"passwordless-auth/internal/dto/response"
	"passwordless-auth/internal/usecase"
	"passwordless-auth/pkg/utils"

	"go.uber.org/zap"
)

// Response wording mirrors the original API: every redemption failure gets
// the same generic line so callers cannot probe which check failed.
const (
	msgLoginFailed  = "Couldn't log you in. Try again later."
	msgVerifyFailed = "We couldn't verify this alias. Try again later."
)

type AuthHandler struct {
	service usecase.PasswordlessService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.PasswordlessService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log,
	}
}

// ObtainEmailToken handles POST /api/auth/email
func (h *AuthHandler) ObtainEmailToken(w http.ResponseWriter, r *http.Request) {
	var req request.ObtainEmailTokenRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	_, err := h.service.RequestToken(r.Context(), req.Email, entity.AliasTypeEmail)
	if err != nil {
		h.handleObtainError(w, err, "Unable to email you a login code. Try again later.")
		return
	}

	utils.ResponseSuccess(w, "A login token has been sent to your email.")
}

// ObtainMobileToken handles POST /api/auth/mobile
func (h *AuthHandler) ObtainMobileToken(w http.ResponseWriter, r *http.Request) {
	var req request.ObtainMobileTokenRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	_, err := h.service.RequestToken(r.Context(), req.Mobile, entity.AliasTypeMobile)
	if err != nil {
		h.handleObtainError(w, err, "Unable to send you a login code. Try again later.")
		return
	}

	utils.ResponseSuccess(w, "We texted you a login code.")
}

// RedeemAuthToken handles POST /api/auth/token
func (h *AuthHandler) RedeemAuthToken(w http.ResponseWriter, r *http.Request) {
	var req request.RedeemTokenRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	aliasType, ok := entity.ParseAliasType(req.AliasType)
	if !ok {
		utils.ResponseBadRequest(w, msgLoginFailed, nil)
		return
	}

	authToken, _, err := h.service.RedeemForSession(r.Context(), req.Token, aliasType)
	if err != nil {
		h.handleRedeemError(w, err, msgLoginFailed)
		return
	}

	utils.ResponseOK(w, response.AuthTokenToResponse(authToken))
}

// ObtainEmailVerificationToken handles POST /api/verify/email (authenticated)
func (h *AuthHandler) ObtainEmailVerificationToken(w http.ResponseWriter, r *http.Request) {
	h.obtainVerificationToken(w, r, entity.AliasTypeEmail,
		"A verification token has been sent to your email.",
		"Unable to email you a verification code. Try again later.")
}

// ObtainMobileVerificationToken handles POST /api/verify/mobile (authenticated)
func (h *AuthHandler) ObtainMobileVerificationToken(w http.ResponseWriter, r *http.Request) {
	h.obtainVerificationToken(w, r, entity.AliasTypeMobile,
		"We texted you a verification code.",
		"Unable to send you a verification code. Try again later.")
}

func (h *AuthHandler) obtainVerificationToken(w http.ResponseWriter, r *http.Request, aliasType entity.AliasType, successMsg, failureMsg string) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	_, err := h.service.RequestVerificationToken(r.Context(), userID, aliasType)
	if err != nil {
		h.handleObtainError(w, err, failureMsg)
		return
	}

	utils.ResponseSuccess(w, successMsg)
}

// VerifyAlias handles POST /api/verify (authenticated)
func (h *AuthHandler) VerifyAlias(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.VerifyAliasRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	aliasType, ok := entity.ParseAliasType(req.AliasType)
	if !ok {
		utils.ResponseBadRequest(w, msgVerifyFailed, nil)
		return
	}

	if err := h.service.RedeemForVerification(r.Context(), req.Token, aliasType, userID); err != nil {
		h.handleRedeemError(w, err, msgVerifyFailed)
		return
	}

	utils.ResponseSuccess(w, "Alias verified.")
}

// handleObtainError maps token request failures. Disabled channels look
// like missing routes; everything else is the flow's generic failure line.
func (h *AuthHandler) handleObtainError(w http.ResponseWriter, err error, failureMsg string) {
	switch {
	case errors.Is(err, usecase.ErrAliasTypeDisabled):
		utils.ResponseNotFound(w, "Not found.")

	case errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrNoAlias),
		errors.Is(err, usecase.ErrDeliveryFailed):
		h.log.Warn("Token request failed", zap.Error(err))
		utils.ResponseBadRequest(w, failureMsg, nil)

	default:
		h.log.Error("Token request failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// handleRedeemError collapses every matcher failure into one generic
// message. An ambiguous token is a server-side integrity fault and is
// logged loudly, but the caller still sees the same line as an expired
// token.
func (h *AuthHandler) handleRedeemError(w http.ResponseWriter, err error, genericMsg string) {
	switch {
	case errors.Is(err, usecase.ErrAmbiguousToken):
		h.log.Error("Ambiguous callback token presented", zap.Error(err))
		utils.ResponseBadRequest(w, genericMsg, nil)

	case errors.Is(err, usecase.ErrInvalidOrExpiredToken),
		errors.Is(err, usecase.ErrTokenUserMismatch):
		h.log.Warn("Callback token redemption failed", zap.Error(err))
		utils.ResponseBadRequest(w, genericMsg, nil)

	default:
		h.log.Error("Callback token redemption failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
