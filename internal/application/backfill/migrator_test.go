package backfill

import (
	"context"
	"errors"
	"testing"

	"github.com/doug-fsg/controlei/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) FindUsersOrderedByID(ctx context.Context) ([]identity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *mockStore) HasMembership(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) MigrateUser(ctx context.Context, org *identity.Organization, membership *identity.Membership) (map[string]int64, error) {
	args := m.Called(ctx, org, membership)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func newTestUser(t *testing.T, name, email string) identity.User {
	t.Helper()
	user, err := identity.NewUser(name, email, "hash")
	require.NoError(t, err)
	return *user
}

func TestMigrator_Run(t *testing.T) {
	t.Run("migrates users without membership and skips the rest", func(t *testing.T) {
		store := new(mockStore)
		migrator := NewMigrator(store, Config{}, zap.NewNop())

		legacy := newTestUser(t, "João Silva", "joao@example.com")
		migrated := newTestUser(t, "Ana", "ana@example.com")

		store.On("FindUsersOrderedByID", mock.Anything).Return([]identity.User{legacy, migrated}, nil)
		store.On("HasMembership", mock.Anything, legacy.ID).Return(false, nil)
		store.On("HasMembership", mock.Anything, migrated.ID).Return(true, nil)
		store.On("MigrateUser", mock.Anything, mock.MatchedBy(func(org *identity.Organization) bool {
			return org.Slug == "jo-o-silva-"+legacy.ID.String()
		}), mock.MatchedBy(func(m *identity.Membership) bool {
			return m.UserID == legacy.ID && m.Role == identity.RoleOwner
		})).Return(map[string]int64{"clients": 4, "sales": 2}, nil)

		report, err := migrator.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, report.Migrated)
		assert.Equal(t, 1, report.Skipped)
		assert.Equal(t, 0, report.Failed)
		require.Len(t, report.Results, 1)
		assert.Equal(t, int64(4), report.Results[0].Reparented["clients"])
		store.AssertExpectations(t)
	})

	t.Run("a failing user does not stop the run", func(t *testing.T) {
		store := new(mockStore)
		migrator := NewMigrator(store, Config{}, zap.NewNop())

		first := newTestUser(t, "First", "first@example.com")
		second := newTestUser(t, "Second", "second@example.com")

		store.On("FindUsersOrderedByID", mock.Anything).Return([]identity.User{first, second}, nil)
		store.On("HasMembership", mock.Anything, mock.Anything).Return(false, nil)
		store.On("MigrateUser", mock.Anything, mock.MatchedBy(func(org *identity.Organization) bool {
			return org.Name == "First"
		}), mock.Anything).Return(nil, errors.New("deadlock detected"))
		store.On("MigrateUser", mock.Anything, mock.MatchedBy(func(org *identity.Organization) bool {
			return org.Name == "Second"
		}), mock.Anything).Return(map[string]int64{}, nil)

		report, err := migrator.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, report.Migrated)
		assert.Equal(t, 1, report.Failed)
		store.AssertExpectations(t)
	})

	t.Run("dry run touches nothing", func(t *testing.T) {
		store := new(mockStore)
		migrator := NewMigrator(store, Config{DryRun: true}, zap.NewNop())

		user := newTestUser(t, "Dry Run", "dry@example.com")
		store.On("FindUsersOrderedByID", mock.Anything).Return([]identity.User{user}, nil)
		store.On("HasMembership", mock.Anything, user.ID).Return(false, nil)

		report, err := migrator.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, report.Migrated)
		assert.NotEmpty(t, report.Results[0].Slug)
		store.AssertNotCalled(t, "MigrateUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("derives the organization name from the email when unnamed", func(t *testing.T) {
		store := new(mockStore)
		migrator := NewMigrator(store, Config{DryRun: true}, zap.NewNop())

		user := newTestUser(t, "", "carlos@example.com")
		store.On("FindUsersOrderedByID", mock.Anything).Return([]identity.User{user}, nil)
		store.On("HasMembership", mock.Anything, user.ID).Return(false, nil)

		report, err := migrator.Run(context.Background())
		require.NoError(t, err)
		require.Len(t, report.Results, 1)
		assert.Equal(t, "carlos-"+user.ID.String(), report.Results[0].Slug)
	})
}
