package identity

import (
	"time"

	"github.com/doug-fsg/controlei/internal/domain/identity"
	"github.com/doug-fsg/controlei/internal/infrastructure/auth"
	"github.com/google/uuid"
)

// RegisterInput contains the data needed to create an account
type RegisterInput struct {
	Name             string
	Email            string
	Password         string
	OrganizationName string
}

// LoginInput contains login credentials
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is returned on successful authentication
type LoginResult struct {
	Token        auth.Token
	User         UserInfo
	Organization OrganizationInfo
}

// LogoutInput identifies the session being terminated
type LogoutInput struct {
	TokenID   string
	ExpiresAt time.Time
}

// SwitchOrganizationInput selects another organization for the session
type SwitchOrganizationInput struct {
	UserID         uuid.UUID
	OrganizationID uuid.UUID
}

// RequestPasswordResetInput starts the password reset flow
type RequestPasswordResetInput struct {
	Email string
}

// RequestPasswordResetResult carries the token back to the delivery channel.
// The HTTP layer never returns it to the caller.
type RequestPasswordResetResult struct {
	Token   string
	Email   string
	Expires time.Time
}

// ResetPasswordInput completes the password reset flow
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// CreateOrganizationInput contains the data for a new organization
type CreateOrganizationInput struct {
	Name      string
	CreatorID uuid.UUID
}

// UserInfo is the user projection returned to callers
type UserInfo struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// OrganizationInfo is the organization projection returned to callers
type OrganizationInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
	Role string    `json:"role"`
}

func userInfoFrom(user *identity.User) UserInfo {
	return UserInfo{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

func organizationInfoFrom(org *identity.Organization, role identity.Role) OrganizationInfo {
	return OrganizationInfo{
		ID:   org.ID,
		Name: org.Name,
		Slug: org.Slug,
		Role: role.String(),
	}
}
