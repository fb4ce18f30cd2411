package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WheelShare-Rentals/service-rental/pkg/auth"
)

func TestGenerateAndValidate(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", 15*time.Minute)

	token, err := manager.Generate(42, auth.RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, auth.RoleUser, claims.Role)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := auth.NewJWTManager("secret-a", 15*time.Minute)
	verifier := auth.NewJWTManager("secret-b", 15*time.Minute)

	token, err := issuer.Generate(42, auth.RoleUser)
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", -time.Minute)

	token, err := manager.Generate(42, auth.RoleAdmin)
	require.NoError(t, err)

	_, err = manager.Validate(token)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", 15*time.Minute)

	_, err := manager.Validate("not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
