package auth

import (
	"testing"

	"biobank-backend/internal/config"
	"biobank-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "biobank-backend"
	return cfg
}

func TestGenerateAndValidateToken(t *testing.T) {
	mgr := NewJWTManager(testConfig("test-secret"))

	user := &models.User{
		ID:       7,
		Email:    "tech@lab.example",
		Role:     "technician",
		IsActive: true,
	}

	token, err := mgr.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := mgr.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "tech@lab.example", claims.Email)
	assert.Equal(t, "technician", claims.Role)
	assert.True(t, claims.IsActive)
	assert.Equal(t, "biobank-backend", claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	mgr := NewJWTManager(testConfig("secret-a"))
	other := NewJWTManager(testConfig("secret-b"))

	token, err := mgr.GenerateToken(&models.User{ID: 1, Email: "a@lab.example", Role: "admin"})
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	mgr := NewJWTManager(testConfig("test-secret"))

	_, err := mgr.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.True(t, VerifyPassword(hash, "correct horse battery"))
	assert.False(t, VerifyPassword(hash, "wrong password"))
	assert.False(t, VerifyPassword(hash, ""))
}
