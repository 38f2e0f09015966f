package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email (case-insensitive)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAllOrderedByID returns every user ordered by id ascending.
	// The stable ordering is what makes the tenant backfill resumable.
	FindAllOrderedByID(ctx context.Context) ([]User, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error
}

// OrganizationRepository defines the interface for organization persistence
type OrganizationRepository interface {
	// FindByID finds an organization by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Organization, error)

	// FindBySlug finds an organization by its unique slug
	FindBySlug(ctx context.Context, slug string) (*Organization, error)

	// ExistsBySlug checks whether a slug is already taken
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// Save creates or updates an organization
	Save(ctx context.Context, org *Organization) error
}

// MembershipRepository defines the interface for membership persistence
type MembershipRepository interface {
	// Find finds the membership for a (user, organization) pair
	Find(ctx context.Context, userID, organizationID uuid.UUID) (*Membership, error)

	// FindByUser finds all memberships for a user
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Membership, error)

	// FindActiveByUser finds all active memberships for a user
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]Membership, error)

	// Save creates or updates a membership
	Save(ctx context.Context, membership *Membership) error
}

// VerificationTokenRepository defines the interface for password reset tokens.
// Tokens are delete-on-use: Consume removes the row atomically with the lookup.
type VerificationTokenRepository interface {
	// Save stores a new token
	Save(ctx context.Context, token *VerificationToken) error

	// Consume looks up a token and deletes it in the same transaction.
	// Returns shared.ErrNotFound when the token does not exist.
	Consume(ctx context.Context, token string) (*VerificationToken, error)

	// DeleteExpired removes all tokens that expired before the given time
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
