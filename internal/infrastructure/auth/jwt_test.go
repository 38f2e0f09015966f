package auth

import (
	"testing"
	"time"

	"github.com/doug-fsg/controlei/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-that-is-long-enough",
		AccessTokenExpiration: expiration,
		Issuer:                "controlei-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	userID := uuid.New()
	orgID := uuid.New()

	token, err := svc.GenerateToken(userID, orgID, "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, orgID.String(), claims.OrganizationID)
	assert.Equal(t, "user@example.com", claims.Email)

	gotUser, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)

	gotOrg, err := claims.GetOrganizationUUID()
	require.NoError(t, err)
	assert.Equal(t, orgID, gotOrg)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := newTestJWTService(-time.Minute)

	token, err := svc.GenerateToken(uuid.New(), uuid.New(), "user@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	other := NewJWTService(config.JWTConfig{
		Secret:                "a-completely-different-secret-key-here",
		AccessTokenExpiration: time.Hour,
		Issuer:                "controlei-test",
	})

	token, err := svc.GenerateToken(uuid.New(), uuid.New(), "user@example.com")
	require.NoError(t, err)

	_, err = other.ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	_, err := svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaims_GetRemainingTTL(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	token, err := svc.GenerateToken(uuid.New(), uuid.New(), "user@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token.AccessToken)
	require.NoError(t, err)

	ttl := claims.GetRemainingTTL()
	assert.Greater(t, ttl, 55*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)
}
