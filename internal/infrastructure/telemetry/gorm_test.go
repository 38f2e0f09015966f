package telemetry

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/doug-fsg/controlei/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newTestGormDB(t *testing.T) *gorm.DB {
	t.Helper()

	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db
}

func TestRegisterGormTracing(t *testing.T) {
	t.Run("disabled registers nothing", func(t *testing.T) {
		db := newTestGormDB(t)
		err := RegisterGormTracing(db, config.TelemetryConfig{Enabled: false}, zap.NewNop())
		require.NoError(t, err)
		_, ok := db.Plugins["otelgorm"]
		assert.False(t, ok)
	})

	t.Run("enabled attaches the otelgorm plugin", func(t *testing.T) {
		db := newTestGormDB(t)
		err := RegisterGormTracing(db, config.TelemetryConfig{Enabled: true}, zap.NewNop())
		require.NoError(t, err)
		_, ok := db.Plugins["otelgorm"]
		assert.True(t, ok)
	})
}
