package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockGormDB builds a gorm.DB backed by sqlmock for repository tests.
// Cleanup closes the underlying connection.
func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	return gormDB, mock
}

func clientColumns() []string {
	return []string{
		"id", "created_at", "updated_at", "organization_id", "created_by",
		"name", "email", "phone", "document", "address",
	}
}

func TestGormClientRepository_FindByIDForOrg(t *testing.T) {
	t.Run("returns the client when it belongs to the organization", func(t *testing.T) {
		db, mock := newMockGormDB(t)
		repo := NewGormClientRepository(db)

		organizationID := uuid.New()
		clientID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE organization_id = \$1 AND id = \$2`).
			WillReturnRows(sqlmock.NewRows(clientColumns()).
				AddRow(clientID, now, now, organizationID, nil, "Acme Ltda", "contact@acme.com", "", "", ""))

		client, err := repo.FindByIDForOrg(context.Background(), organizationID, clientID)
		require.NoError(t, err)
		assert.Equal(t, clientID, client.ID)
		assert.Equal(t, organizationID, client.OrganizationID)
		assert.Equal(t, "Acme Ltda", client.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports not found for a cross-tenant lookup", func(t *testing.T) {
		db, mock := newMockGormDB(t)
		repo := NewGormClientRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE organization_id = \$1 AND id = \$2`).
			WillReturnRows(sqlmock.NewRows(clientColumns()))

		_, err := repo.FindByIDForOrg(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormClientRepository_FindAllForOrg(t *testing.T) {
	t.Run("applies the organization scope and search filter", func(t *testing.T) {
		db, mock := newMockGormDB(t)
		repo := NewGormClientRepository(db)

		organizationID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE organization_id = \$1 AND \(name ILIKE \$2 OR email ILIKE \$3\) ORDER BY name asc`).
			WillReturnRows(sqlmock.NewRows(clientColumns()).
				AddRow(uuid.New(), now, now, organizationID, nil, "Maria Souza", "maria@example.com", "", "", ""))

		filter := shared.DefaultFilter()
		filter.OrderBy = "name"
		filter.OrderDir = "asc"
		filter.Search = "maria"

		clients, err := repo.FindAllForOrg(context.Background(), organizationID, filter)
		require.NoError(t, err)
		require.Len(t, clients, 1)
		assert.Equal(t, "Maria Souza", clients[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls back to safe ordering for unknown sort fields", func(t *testing.T) {
		db, mock := newMockGormDB(t)
		repo := NewGormClientRepository(db)

		organizationID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE organization_id = \$1 ORDER BY name desc`).
			WillReturnRows(sqlmock.NewRows(clientColumns()))

		filter := shared.DefaultFilter()
		filter.OrderBy = "name; DROP TABLE clients"
		filter.OrderDir = "sideways"

		_, err := repo.FindAllForOrg(context.Background(), organizationID, filter)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormClientRepository_CountForOrg(t *testing.T) {
	db, mock := newMockGormDB(t)
	repo := NewGormClientRepository(db)

	organizationID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "clients" WHERE organization_id = \$1`).
		WithArgs(organizationID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountForOrg(context.Background(), organizationID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormClientRepository_DeleteForOrg(t *testing.T) {
	t.Run("deletes within the organization", func(t *testing.T) {
		db, mock := newMockGormDB(t)
		repo := NewGormClientRepository(db)

		organizationID := uuid.New()
		clientID := uuid.New()

		mock.ExpectExec(`DELETE FROM "clients" WHERE organization_id = \$1 AND id = \$2`).
			WithArgs(organizationID, clientID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeleteForOrg(context.Background(), organizationID, clientID)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports not found when nothing matched", func(t *testing.T) {
		db, mock := newMockGormDB(t)
		repo := NewGormClientRepository(db)

		mock.ExpectExec(`DELETE FROM "clients" WHERE organization_id = \$1 AND id = \$2`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteForOrg(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
