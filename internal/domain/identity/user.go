package identity

import (
	"strings"

	"github.com/doug-fsg/controlei/internal/domain/shared"
)

// User is an authenticated principal. Authentication itself (sessions,
// password verification) lives in the infrastructure layer; the domain
// only carries the identity fields the ledger needs.
type User struct {
	shared.BaseEntity
	Name         string
	Email        string
	PasswordHash string
}

// DisplayName returns the user's name, falling back to the local part of
// the email address. Used to derive an organization name during backfill.
func (u *User) DisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	return u.Email
}

// NewUser creates a user with the given credentials already hashed
func NewUser(name, email, passwordHash string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "email is required")
	}
	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: passwordHash,
	}, nil
}
