package request

type ObtainEmailTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ObtainMobileTokenRequest struct {
	Mobile string `json:"mobile" validate:"required,e164"`
}

// RedeemTokenRequest exchanges a presented callback token. Exact key length
// is enforced by the store lookup; validation only rejects obviously
// malformed input.
type RedeemTokenRequest struct {
	Token     string `json:"token" validate:"required,numeric,min=4,max=12"`
	AliasType string `json:"alias_type" validate:"required,oneof=EMAIL MOBILE"`
}

type VerifyAliasRequest struct {
	Token     string `json:"token" validate:"required,numeric,min=4,max=12"`
	AliasType string `json:"alias_type" validate:"required,oneof=EMAIL MOBILE"`
}
