package identity

import (
	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/google/uuid"
)

// Role represents a member's role within an organization
type Role string

const (
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

// IsValid checks if the role is a valid Role
func (r Role) IsValid() bool {
	return r == RoleOwner || r == RoleMember
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// Membership links a user to an organization. The (UserID, OrganizationID)
// pair is unique; a user may belong to several organizations but exactly one
// is the session's current organization, resolved outside this entity.
type Membership struct {
	shared.BaseEntity
	UserID         uuid.UUID
	OrganizationID uuid.UUID
	Role           Role
	IsActive       bool
}

// NewMembership creates an active membership
func NewMembership(userID, organizationID uuid.UUID, role Role) (*Membership, error) {
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "invalid membership role")
	}
	return &Membership{
		BaseEntity:     shared.NewBaseEntity(),
		UserID:         userID,
		OrganizationID: organizationID,
		Role:           role,
		IsActive:       true,
	}, nil
}

// IsOwner reports whether the member owns the organization
func (m *Membership) IsOwner() bool {
	return m.Role == RoleOwner
}

// Deactivate revokes access without deleting the membership row
func (m *Membership) Deactivate() {
	m.IsActive = false
}

// Activate restores access
func (m *Membership) Activate() {
	m.IsActive = true
}
