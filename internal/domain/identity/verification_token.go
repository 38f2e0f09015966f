package identity

import (
	"time"
)

// VerificationToken is a single-use password reset token. It is deleted
// immediately upon successful validation or when expiry is detected, so a
// token row existing in the store does not imply it is still usable.
type VerificationToken struct {
	Token      string
	Identifier string // user email
	Expires    time.Time
}

// NewVerificationToken creates a token valid until the given expiry
func NewVerificationToken(token, identifier string, expires time.Time) *VerificationToken {
	return &VerificationToken{
		Token:      token,
		Identifier: identifier,
		Expires:    expires,
	}
}

// IsExpired reports whether the token has expired as of now
func (t *VerificationToken) IsExpired(now time.Time) bool {
	return !t.Expires.After(now)
}
