package usecase

import "errors"

var (
	// ErrInvalidOrExpiredToken covers every normal matcher miss: unknown
	// key, wrong alias type, expired, superseded, or already consumed.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired callback token")

	// ErrAmbiguousToken means one (key, alias type) pair resolved to more
	// than one active user. That is a generation collision inside the
	// active window or a store integrity bug, never a user error; it is
	// logged as a server-side fault and must not be resolved by picking
	// one match.
	ErrAmbiguousToken = errors.New("callback token matches more than one user")

	// ErrTokenUserMismatch means the token is valid but belongs to a
	// different user than the authenticated requester.
	ErrTokenUserMismatch = errors.New("callback token does not belong to this user")

	// ErrAliasTypeDisabled means the requested channel is not in
	// ENABLED_ALIAS_TYPES. Surfaced as not-found upstream.
	ErrAliasTypeDisabled = errors.New("alias type is not enabled")

	// ErrDeliveryFailed means the token was created but could not be
	// handed to the email/SMS transport. Re-requesting issues a fresh
	// token.
	ErrDeliveryFailed = errors.New("could not deliver callback token")

	// ErrUserNotFound means no user owns the given alias and registration
	// of new users is disabled.
	ErrUserNotFound = errors.New("no user with this alias")

	// ErrNoAlias means the authenticated user has no alias of the
	// requested type to send a verification token to.
	ErrNoAlias = errors.New("user has no alias of this type")
)
