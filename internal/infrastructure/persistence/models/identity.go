package models

import (
	"time"

	"github.com/doug-fsg/controlei/internal/domain/identity"
	"github.com/google/uuid"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	BaseModel
	Name         string `gorm:"type:varchar(200)"`
	Email        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Name = u.Name
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
}

// UserModelFromDomain creates a new persistence model from a domain User.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// OrganizationModel is the persistence model for the Organization entity.
type OrganizationModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null"`
	Slug    string `gorm:"type:varchar(250);not null;uniqueIndex"`
	LogoURL string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (OrganizationModel) TableName() string {
	return "organizations"
}

// ToDomain converts the persistence model to a domain Organization entity.
func (m *OrganizationModel) ToDomain() *identity.Organization {
	return &identity.Organization{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Slug:       m.Slug,
		LogoURL:    m.LogoURL,
	}
}

// FromDomain populates the persistence model from a domain Organization.
func (m *OrganizationModel) FromDomain(o *identity.Organization) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.Name = o.Name
	m.Slug = o.Slug
	m.LogoURL = o.LogoURL
}

// OrganizationModelFromDomain creates a new persistence model from a
// domain Organization.
func OrganizationModelFromDomain(o *identity.Organization) *OrganizationModel {
	m := &OrganizationModel{}
	m.FromDomain(o)
	return m
}

// MembershipModel is the persistence model for the Membership entity.
// A user may belong to an organization at most once.
type MembershipModel struct {
	BaseModel
	UserID         uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_membership_user_org,priority:1"`
	OrganizationID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_membership_user_org,priority:2"`
	Role           identity.Role `gorm:"type:varchar(20);not null;default:'member'"`
	IsActive       bool          `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (MembershipModel) TableName() string {
	return "memberships"
}

// ToDomain converts the persistence model to a domain Membership entity.
func (m *MembershipModel) ToDomain() *identity.Membership {
	return &identity.Membership{
		BaseEntity:     m.BaseModel.ToDomain(),
		UserID:         m.UserID,
		OrganizationID: m.OrganizationID,
		Role:           m.Role,
		IsActive:       m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Membership.
func (m *MembershipModel) FromDomain(mem *identity.Membership) {
	m.FromDomainBaseEntity(mem.BaseEntity)
	m.UserID = mem.UserID
	m.OrganizationID = mem.OrganizationID
	m.Role = mem.Role
	m.IsActive = mem.IsActive
}

// MembershipModelFromDomain creates a new persistence model from a
// domain Membership.
func MembershipModelFromDomain(mem *identity.Membership) *MembershipModel {
	m := &MembershipModel{}
	m.FromDomain(mem)
	return m
}

// VerificationTokenModel is the persistence model for password reset
// tokens. The token string itself is the primary key; rows are deleted
// on use.
type VerificationTokenModel struct {
	Token      string    `gorm:"type:varchar(200);primary_key"`
	Identifier string    `gorm:"type:varchar(200);not null;index"`
	Expires    time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (VerificationTokenModel) TableName() string {
	return "verification_tokens"
}

// ToDomain converts the persistence model to a domain VerificationToken.
func (m *VerificationTokenModel) ToDomain() *identity.VerificationToken {
	return &identity.VerificationToken{
		Token:      m.Token,
		Identifier: m.Identifier,
		Expires:    m.Expires,
	}
}

// FromDomain populates the persistence model from a domain token.
func (m *VerificationTokenModel) FromDomain(t *identity.VerificationToken) {
	m.Token = t.Token
	m.Identifier = t.Identifier
	m.Expires = t.Expires
}
