package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gridwatch/outage-service/internal/auth"
	"github.com/gridwatch/outage-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := auth.NewTokenManager("test-secret", 5)

	token, expiresAt, err := manager.GenerateToken(42, domain.UserRoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(5*time.Minute), expiresAt, 5*time.Second)

	claims, err := manager.ParseToken(token)
	require.NoError(t, err)
	require.EqualValues(t, 42, claims.UserID)
	require.Equal(t, domain.UserRoleAdmin, claims.Role)
	require.Equal(t, "42", claims.Subject)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := auth.NewTokenManager("secret-a", 5)
	verifier := auth.NewTokenManager("secret-b", 5)

	token, _, err := issuer.GenerateToken(1, domain.UserRoleUser)
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	require.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	manager := auth.NewTokenManager("test-secret", 5)

	_, err := manager.ParseToken("not-a-jwt")
	require.Error(t, err)
}
