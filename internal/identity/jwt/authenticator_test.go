package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vindheg/dth-render/internal/domain"
)

func newTestAuthenticator(ttl time.Duration) *Authenticator {
	return NewAuthenticator(Config{
		SecretKey:           "test-secret-key",
		AccessTokenDuration: ttl,
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	auth := newTestAuthenticator(time.Minute)

	token, err := auth.GenerateToken(context.Background(), 42, domain.RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, role, err := auth.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, domain.RoleUser, role)
}

func TestValidateToken_Expired(t *testing.T) {
	auth := newTestAuthenticator(-time.Minute)

	token, err := auth.GenerateToken(context.Background(), 1, domain.RoleUser)
	require.NoError(t, err)

	_, _, err = auth.ValidateToken(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	auth := newTestAuthenticator(time.Minute)
	other := NewAuthenticator(Config{SecretKey: "different", AccessTokenDuration: time.Minute})

	token, err := auth.GenerateToken(context.Background(), 1, domain.RoleAdmin)
	require.NoError(t, err)

	_, _, err = other.ValidateToken(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	auth := newTestAuthenticator(time.Minute)

	_, _, err := auth.ValidateToken(context.Background(), "not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
