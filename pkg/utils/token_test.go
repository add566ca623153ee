package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ducielo/rencontre-coeur-brise/internal/config"
)

func TestGenerateAndValidateToken(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test_secret_key_12345"}

	token, err := GenerateToken("user-123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "rencontre-backend", claims.Issuer)
	assert.NotEmpty(t, claims.GetJTI())
}

func TestValidateToken_WrongSecret(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test_secret_key_12345"}
	token, err := GenerateToken("user-123")
	assert.NoError(t, err)

	config.AppConfig = &config.Config{JWTSecret: "a_different_secret"}
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test_secret_key_12345"}
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestOrderedPair(t *testing.T) {
	a, b := OrderedPair("beta", "alpha")
	assert.Equal(t, "alpha", a)
	assert.Equal(t, "beta", b)

	a, b = OrderedPair("alpha", "beta")
	assert.Equal(t, "alpha", a)
	assert.Equal(t, "beta", b)
}
