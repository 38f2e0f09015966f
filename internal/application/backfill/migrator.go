// Package backfill migrates pre-tenancy data into organizations. It is a
// one-shot, out-of-band job: every user without a membership gets an
// organization and owner membership, and their orphaned financial rows are
// re-parented, one transaction per user.
package backfill

import (
	"context"

	"github.com/doug-fsg/controlei/internal/domain/identity"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the persistence surface the migrator needs. MigrateUser runs
// the whole per-user unit of work in one transaction.
type Store interface {
	// FindUsersOrderedByID returns every user, id ascending. The stable
	// order makes interrupted runs resumable.
	FindUsersOrderedByID(ctx context.Context) ([]identity.User, error)

	// HasMembership reports whether the user already belongs to any
	// organization
	HasMembership(ctx context.Context, userID uuid.UUID) (bool, error)

	// MigrateUser creates the organization and membership and re-parents
	// the user's orphaned rows, all in one transaction. It returns the
	// number of re-parented rows per table.
	MigrateUser(ctx context.Context, org *identity.Organization, membership *identity.Membership) (map[string]int64, error)
}

// Config controls a migration run
type Config struct {
	DryRun bool
}

// UserResult records the outcome for one user
type UserResult struct {
	UserID         uuid.UUID
	OrganizationID uuid.UUID
	Slug           string
	Reparented     map[string]int64
	Err            error
}

// Report summarizes a migration run. A run with failures is a partial
// success: the migrated users stay migrated.
type Report struct {
	Migrated int
	Skipped  int
	Failed   int
	Results  []UserResult
}

// Migrator performs the tenant backfill.
type Migrator struct {
	store  Store
	config Config
	logger *zap.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(store Store, config Config, logger *zap.Logger) *Migrator {
	return &Migrator{store: store, config: config, logger: logger}
}

// Run migrates every user that has no membership yet. A failing user is
// logged and skipped; the loop always continues to the next user.
func (m *Migrator) Run(ctx context.Context) (*Report, error) {
	users, err := m.store.FindUsersOrderedByID(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	m.logger.Info("Tenant backfill started",
		zap.Int("users", len(users)),
		zap.Bool("dry_run", m.config.DryRun))

	for i := range users {
		user := &users[i]

		hasMembership, err := m.store.HasMembership(ctx, user.ID)
		if err != nil {
			m.recordFailure(report, user.ID, err)
			continue
		}
		if hasMembership {
			report.Skipped++
			continue
		}

		result := m.migrateUser(ctx, user)
		report.Results = append(report.Results, result)
		if result.Err != nil {
			report.Failed++
			m.logger.Error("User migration failed",
				zap.String("user_id", user.ID.String()),
				zap.Error(result.Err))
			continue
		}
		report.Migrated++
		m.logger.Info("User migrated",
			zap.String("user_id", user.ID.String()),
			zap.String("organization_id", result.OrganizationID.String()),
			zap.String("slug", result.Slug),
			zap.Any("reparented", result.Reparented))
	}

	m.logger.Info("Tenant backfill finished",
		zap.Int("migrated", report.Migrated),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed))
	return report, nil
}

func (m *Migrator) migrateUser(ctx context.Context, user *identity.User) UserResult {
	result := UserResult{UserID: user.ID}

	// The user id suffix keeps slugs unique even when two legacy users
	// share a display name.
	org, err := identity.NewOrganizationForUser(user.DisplayName(), user.ID)
	if err != nil {
		result.Err = err
		return result
	}
	membership, err := identity.NewMembership(user.ID, org.ID, identity.RoleOwner)
	if err != nil {
		result.Err = err
		return result
	}

	result.OrganizationID = org.ID
	result.Slug = org.Slug

	if m.config.DryRun {
		return result
	}

	reparented, err := m.store.MigrateUser(ctx, org, membership)
	if err != nil {
		result.Err = err
		return result
	}
	result.Reparented = reparented
	return result
}

func (m *Migrator) recordFailure(report *Report, userID uuid.UUID, err error) {
	report.Failed++
	report.Results = append(report.Results, UserResult{UserID: userID, Err: err})
	m.logger.Error("User migration failed",
		zap.String("user_id", userID.String()),
		zap.Error(err))
}
