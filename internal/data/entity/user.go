package entity

type User struct {
	Base
	Username       string  `db:"username"`
	Email          string  `db:"email"`
	Mobile         *string `db:"mobile"`
	PasswordHash   string  `db:"password"`
	EmailVerified  bool    `db:"email_verified"`
	MobileVerified bool    `db:"mobile_verified"`
	IsActive       bool    `db:"is_active"`
}

// AliasValue returns the user's alias value for the given channel,
// or "" if the user has no alias of that type.
func (u *User) AliasValue(aliasType AliasType) string {
	switch aliasType {
	case AliasTypeEmail:
		return u.Email
	case AliasTypeMobile:
		if u.Mobile != nil {
			return *u.Mobile
		}
	}
	return ""
}
