package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"CONTROLEI_APP_NAME":                 os.Getenv("CONTROLEI_APP_NAME"),
		"CONTROLEI_APP_ENV":                  os.Getenv("CONTROLEI_APP_ENV"),
		"CONTROLEI_APP_PORT":                 os.Getenv("CONTROLEI_APP_PORT"),
		"CONTROLEI_DATABASE_HOST":            os.Getenv("CONTROLEI_DATABASE_HOST"),
		"CONTROLEI_DATABASE_PORT":            os.Getenv("CONTROLEI_DATABASE_PORT"),
		"CONTROLEI_DATABASE_USER":            os.Getenv("CONTROLEI_DATABASE_USER"),
		"CONTROLEI_DATABASE_PASSWORD":        os.Getenv("CONTROLEI_DATABASE_PASSWORD"),
		"CONTROLEI_DATABASE_DBNAME":          os.Getenv("CONTROLEI_DATABASE_DBNAME"),
		"CONTROLEI_DATABASE_SSLMODE":         os.Getenv("CONTROLEI_DATABASE_SSLMODE"),
		"CONTROLEI_DATABASE_MAX_OPEN_CONNS":  os.Getenv("CONTROLEI_DATABASE_MAX_OPEN_CONNS"),
		"CONTROLEI_DATABASE_MAX_IDLE_CONNS":  os.Getenv("CONTROLEI_DATABASE_MAX_IDLE_CONNS"),
		"CONTROLEI_JWT_SECRET":               os.Getenv("CONTROLEI_JWT_SECRET"),
		"CONTROLEI_TELEMETRY_SAMPLING_RATIO": os.Getenv("CONTROLEI_TELEMETRY_SAMPLING_RATIO"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "controlei", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "controlei", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.False(t, cfg.Backfill.DryRun)
		assert.False(t, cfg.Telemetry.Enabled)
		assert.Equal(t, "localhost:4317", cfg.Telemetry.Endpoint)
		assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
	})

	t.Run("validates telemetry sampling ratio bounds", func(t *testing.T) {
		clearEnv()
		os.Setenv("CONTROLEI_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})

	t.Run("loads values from environment variables", func(t *testing.T) {
		clearEnv()
		os.Setenv("CONTROLEI_APP_NAME", "test-app")
		os.Setenv("CONTROLEI_APP_PORT", "9000")
		os.Setenv("CONTROLEI_DATABASE_HOST", "testdb.local")
		os.Setenv("CONTROLEI_DATABASE_PORT", "5433")
		os.Setenv("CONTROLEI_DATABASE_PASSWORD", "testpass")
		os.Setenv("CONTROLEI_DATABASE_MAX_OPEN_CONNS", "50")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("CONTROLEI_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("CONTROLEI_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("validates MaxIdleConns cannot be negative", func(t *testing.T) {
		clearEnv()
		os.Setenv("CONTROLEI_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns cannot be negative")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	keys := []string{
		"CONTROLEI_APP_ENV",
		"CONTROLEI_JWT_SECRET",
		"CONTROLEI_DATABASE_PASSWORD",
		"CONTROLEI_DATABASE_SSLMODE",
	}
	originalEnv := map[string]string{}
	for _, k := range keys {
		originalEnv[k] = os.Getenv(k)
	}
	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()
	clearEnv := func() {
		for _, k := range keys {
			os.Unsetenv(k)
		}
	}

	t.Run("requires jwt.secret in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("CONTROLEI_APP_ENV", "production")
		os.Setenv("CONTROLEI_DATABASE_PASSWORD", "secure-password")
		os.Setenv("CONTROLEI_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret is required in production")
	})

	t.Run("requires jwt.secret at least 32 characters", func(t *testing.T) {
		clearEnv()
		os.Setenv("CONTROLEI_APP_ENV", "production")
		os.Setenv("CONTROLEI_JWT_SECRET", "short-secret")
		os.Setenv("CONTROLEI_DATABASE_PASSWORD", "secure-password")
		os.Setenv("CONTROLEI_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 characters")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("CONTROLEI_APP_ENV", "production")
		os.Setenv("CONTROLEI_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("CONTROLEI_DATABASE_PASSWORD", "secure-password")
		os.Setenv("CONTROLEI_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode cannot be 'disable'")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		os.Setenv("CONTROLEI_APP_ENV", "production")
		os.Setenv("CONTROLEI_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("CONTROLEI_DATABASE_PASSWORD", "secure-password")
		os.Setenv("CONTROLEI_DATABASE_SSLMODE", "require")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost")
		assert.Contains(t, dsn, "5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", cfg.Addr())
}
