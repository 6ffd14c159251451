package jwt_test

import (
	"testing"
	"time"

	"portal-citas-backend/config"
	"portal-citas-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(secret string, expiry time.Duration) *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{Secret: secret, SessionExpiry: expiry})
}

func TestGenerateAndValidateToken(t *testing.T) {
	service := newService("test-secret", time.Hour)
	employeeID := uuid.New()

	token, tokenID, err := service.GenerateToken(employeeID, "jgarcia")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, tokenID)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, employeeID, claims.EmployeeID)
	assert.Equal(t, "jgarcia", claims.Username)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, _, err := newService("secret-a", time.Hour).GenerateToken(uuid.New(), "jgarcia")
	require.NoError(t, err)

	_, err = newService("secret-b", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	service := newService("test-secret", -time.Minute)

	token, _, err := service.GenerateToken(uuid.New(), "jgarcia")
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)
}
