package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridwatch/outage-service/internal/auth"
)

func TestPasswordHashAndCompare(t *testing.T) {
	hashed, err := auth.HashPassword("s3cret", 4)
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hashed)

	require.NoError(t, auth.ComparePassword(hashed, "s3cret"))
	require.Error(t, auth.ComparePassword(hashed, "wrong"))
}
