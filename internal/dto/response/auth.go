package response

import (
	"time"

	"passwordless-auth/internal/data/entity"
)

// AuthTokenResponse carries the persistent credential after a successful
// callback token exchange.
type AuthTokenResponse struct {
	Token string `json:"token"`
}

type UserResponse struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email,omitempty"`
	Mobile         *string   `json:"mobile,omitempty"`
	EmailVerified  bool      `json:"email_verified"`
	MobileVerified bool      `json:"mobile_verified"`
	CreatedAt      time.Time `json:"created_at"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:             user.ID.String(),
		Username:       user.Username,
		Email:          user.Email,
		Mobile:         user.Mobile,
		EmailVerified:  user.EmailVerified,
		MobileVerified: user.MobileVerified,
		CreatedAt:      user.CreatedAt,
	}
}

func AuthTokenToResponse(token *entity.AuthToken) AuthTokenResponse {
	return AuthTokenResponse{
		Token: token.Key.String(),
	}
}
