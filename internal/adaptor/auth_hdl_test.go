package adaptor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"passwordless-auth/internal/data/entity"
	"passwordless-auth/internal/usecase"
	"passwordless-auth/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func authedContext(ctx context.Context) context.Context {
	return utils.SetUserContext(ctx, uuid.New())
}

// stubService steers each operation's outcome per test
type stubService struct {
	requestErr error
	redeemErr  error
	verifyErr  error
	authToken  *entity.AuthToken
}

func (s *stubService) RequestToken(ctx context.Context, alias string, aliasType entity.AliasType) (*entity.CallbackToken, error) {
	if s.requestErr != nil {
		return nil, s.requestErr
	}
	return &entity.CallbackToken{Key: "123456", AliasType: aliasType, ToAlias: alias}, nil
}

func (s *stubService) RequestVerificationToken(ctx context.Context, userID uuid.UUID, aliasType entity.AliasType) (*entity.CallbackToken, error) {
	if s.requestErr != nil {
		return nil, s.requestErr
	}
	return &entity.CallbackToken{Key: "123456", AliasType: aliasType}, nil
}

func (s *stubService) IssueToken(ctx context.Context, user *entity.User, aliasType entity.AliasType) (*entity.CallbackToken, error) {
	return nil, nil
}

func (s *stubService) RedeemForSession(ctx context.Context, key string, aliasType entity.AliasType) (*entity.AuthToken, *entity.User, error) {
	if s.redeemErr != nil {
		return nil, nil, s.redeemErr
	}
	return s.authToken, &entity.User{}, nil
}

func (s *stubService) RedeemForVerification(ctx context.Context, key string, aliasType entity.AliasType, requestingUser uuid.UUID) error {
	return s.verifyErr
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return payload.Detail
}

func TestRedeemAuthTokenSuccess(t *testing.T) {
	key := uuid.New()
	h := NewAuthHandler(&stubService{authToken: &entity.AuthToken{Key: key}}, zap.NewNop())

	rec := postJSON(t, h.RedeemAuthToken, `{"token":"482913","alias_type":"EMAIL"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Token != key.String() {
		t.Fatalf("token = %q, want %q", payload.Token, key.String())
	}
}

func TestRedeemFailuresAreIndistinguishable(t *testing.T) {
	// Expired, ambiguous and mismatched tokens must produce the identical
	// response so callers cannot probe token state.
	failures := []error{
		usecase.ErrInvalidOrExpiredToken,
		usecase.ErrAmbiguousToken,
		usecase.ErrTokenUserMismatch,
	}

	var bodies []string
	var codes []int
	for _, failure := range failures {
		h := NewAuthHandler(&stubService{redeemErr: failure}, zap.NewNop())
		rec := postJSON(t, h.RedeemAuthToken, `{"token":"482913","alias_type":"EMAIL"}`)
		bodies = append(bodies, rec.Body.String())
		codes = append(codes, rec.Code)
	}

	for i := 1; i < len(bodies); i++ {
		if bodies[i] != bodies[0] || codes[i] != codes[0] {
			t.Fatalf("failure responses differ: %d %q vs %d %q", codes[0], bodies[0], codes[i], bodies[i])
		}
	}

	if codes[0] != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", codes[0])
	}
	if detail := bodies[0]; !strings.Contains(detail, "Couldn't log you in") {
		t.Fatalf("unexpected failure body: %q", detail)
	}
}

func TestObtainTokenDisabledAliasTypeIsNotFound(t *testing.T) {
	h := NewAuthHandler(&stubService{requestErr: usecase.ErrAliasTypeDisabled}, zap.NewNop())

	rec := postJSON(t, h.ObtainMobileToken, `{"mobile":"+15551234567"}`)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestObtainTokenUnknownUserGenericFailure(t *testing.T) {
	h := NewAuthHandler(&stubService{requestErr: usecase.ErrUserNotFound}, zap.NewNop())

	rec := postJSON(t, h.ObtainEmailToken, `{"email":"ghost@example.com"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if detail := decodeDetail(t, rec); detail != "Unable to email you a login code. Try again later." {
		t.Fatalf("unexpected detail: %q", detail)
	}
}

func TestObtainTokenDeliveryFailure(t *testing.T) {
	h := NewAuthHandler(&stubService{requestErr: usecase.ErrDeliveryFailed}, zap.NewNop())

	rec := postJSON(t, h.ObtainEmailToken, `{"email":"alice@example.com"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if detail := decodeDetail(t, rec); detail != "Unable to email you a login code. Try again later." {
		t.Fatalf("unexpected detail: %q", detail)
	}
}

func TestObtainTokenSuccessMessage(t *testing.T) {
	h := NewAuthHandler(&stubService{}, zap.NewNop())

	rec := postJSON(t, h.ObtainEmailToken, `{"email":"alice@example.com"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if detail := decodeDetail(t, rec); detail != "A login token has been sent to your email." {
		t.Fatalf("unexpected detail: %q", detail)
	}
}

func TestObtainTokenValidation(t *testing.T) {
	h := NewAuthHandler(&stubService{}, zap.NewNop())

	tests := []struct {
		name    string
		handler http.HandlerFunc
		body    string
	}{
		{"malformed json", h.ObtainEmailToken, `{"email":`},
		{"missing email", h.ObtainEmailToken, `{}`},
		{"bad email", h.ObtainEmailToken, `{"email":"not-an-email"}`},
		{"bad mobile", h.ObtainMobileToken, `{"mobile":"12345"}`},
		{"non-numeric token", h.RedeemAuthToken, `{"token":"abc123","alias_type":"EMAIL"}`},
		{"bad alias type", h.RedeemAuthToken, `{"token":"482913","alias_type":"CARRIER_PIGEON"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, tt.handler, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestVerifyAliasRequiresAuthentication(t *testing.T) {
	h := NewAuthHandler(&stubService{}, zap.NewNop())

	// No user on the context: the auth middleware never ran
	rec := postJSON(t, h.VerifyAlias, `{"token":"482913","alias_type":"EMAIL"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestVerifyAliasGenericFailure(t *testing.T) {
	h := NewAuthHandler(&stubService{verifyErr: usecase.ErrTokenUserMismatch}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"token":"482913","alias_type":"EMAIL"}`))
	req = req.WithContext(authedContext(req.Context()))
	rec := httptest.NewRecorder()
	h.VerifyAlias(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if detail := decodeDetail(t, rec); detail != "We couldn't verify this alias. Try again later." {
		t.Fatalf("unexpected detail: %q", detail)
	}
}

func TestVerifyAliasSuccess(t *testing.T) {
	h := NewAuthHandler(&stubService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"token":"482913","alias_type":"MOBILE"}`))
	req = req.WithContext(authedContext(req.Context()))
	rec := httptest.NewRecorder()
	h.VerifyAlias(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if detail := decodeDetail(t, rec); detail != "Alias verified." {
		t.Fatalf("unexpected detail: %q", detail)
	}
}
