package entity

import (
	"time"

	"github.com/google/uuid"
)

type AliasType string

const (
	AliasTypeEmail  AliasType = "EMAIL"
	AliasTypeMobile AliasType = "MOBILE"
)

// ParseAliasType maps a request value to an AliasType. Returns false for
// anything outside the known channels.
func ParseAliasType(s string) (AliasType, bool) {
	switch AliasType(s) {
	case AliasTypeEmail:
		return AliasTypeEmail, true
	case AliasTypeMobile:
		return AliasTypeMobile, true
	}
	return "", false
}

// CallbackToken is the short numeric code sent to a user's email or mobile
// alias. A token is matchable while IsActive is true and CreatedAt is within
// the configured expiry window; issuing a new token for the same
// (user, alias type) pair deactivates the previous one, and successful
// redemption deactivates it as well (single use).
type CallbackToken struct {
	BaseSimple
	UserID    uuid.UUID `db:"user_id"`
	Key       string    `db:"key"`
	AliasType AliasType `db:"alias_type"`
	ToAlias   string    `db:"to_alias"`
	IsActive  bool      `db:"is_active"`
}

// Expired reports whether the token fell out of the expiry window at the
// given instant. A token exactly at the boundary is still valid.
func (t *CallbackToken) Expired(now time.Time, window time.Duration) bool {
	return t.CreatedAt.Add(window).Before(now)
}
