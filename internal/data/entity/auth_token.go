package entity

import (
	"github.com/google/uuid"
)

// AuthToken is the persistent session credential returned after a
// successful callback token exchange. One per user, created on first
// successful login (get-or-create).
type AuthToken struct {
	BaseSimple
	UserID uuid.UUID `db:"user_id"`
	Key    uuid.UUID `db:"key"`
}
