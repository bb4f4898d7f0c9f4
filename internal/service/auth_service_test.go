package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridwatch/outage-service/internal/config"
	"github.com/gridwatch/outage-service/internal/domain"
	"github.com/gridwatch/outage-service/internal/repository/repositorytest"
	"github.com/gridwatch/outage-service/internal/service"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 5,
		BcryptCost:            4,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	users := repositorytest.NewUserRepo()
	authService := service.NewAuthService(testAuthConfig(), users)

	user, token, exp, err := authService.Register(ctx, service.RegisterInput{
		Username: "alice",
		Email:    "alice@x.com",
		Password: "pw1",
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, domain.UserRoleUser, user.Role)
	require.NotEmpty(t, token)
	require.False(t, exp.IsZero())
	require.NotEqual(t, "pw1", user.PasswordHash)

	loggedIn, token, _, err := authService.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	require.Equal(t, user.ID, loggedIn.ID)
	require.Equal(t, "alice", loggedIn.Username)
	require.NotEmpty(t, token)

	claims, err := authService.TokenManager().ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, domain.UserRoleUser, claims.Role)
}

func TestFindByUsernameAndEmail(t *testing.T) {
	ctx := context.Background()
	users := repositorytest.NewUserRepo()
	authService := service.NewAuthService(testAuthConfig(), users)

	registered, _, _, err := authService.Register(ctx, service.RegisterInput{
		Username: "alice", Email: "alice@x.com", Password: "pw1",
	})
	require.NoError(t, err)

	found, err := authService.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, registered.ID, found.ID)

	found, err = authService.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	require.NotNil(t, found)

	missing, err := authService.FindByUsername(ctx, "nobody")
	require.NoError(t, err)
	require.Nil(t, missing)

	missing, err = authService.FindByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	users := repositorytest.NewUserRepo()
	authService := service.NewAuthService(testAuthConfig(), users)

	_, _, _, err := authService.Register(ctx, service.RegisterInput{
		Username: "alice", Email: "alice@x.com", Password: "pw1",
	})
	require.NoError(t, err)

	_, _, _, err = authService.Register(ctx, service.RegisterInput{
		Username: "alice", Email: "other@x.com", Password: "pw2",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Username already exists")

	count, err := users.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := repositorytest.NewUserRepo()
	authService := service.NewAuthService(testAuthConfig(), users)

	_, _, _, err := authService.Register(ctx, service.RegisterInput{
		Username: "alice", Email: "alice@x.com", Password: "pw1",
	})
	require.NoError(t, err)

	_, _, _, err = authService.Register(ctx, service.RegisterInput{
		Username: "bob", Email: "alice@x.com", Password: "pw2",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Email already exists")
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	users := repositorytest.NewUserRepo()
	authService := service.NewAuthService(testAuthConfig(), users)

	_, _, _, err := authService.Register(ctx, service.RegisterInput{
		Username: "alice", Email: "alice@x.com", Password: "pw1",
	})
	require.NoError(t, err)

	_, _, _, err = authService.Login(ctx, "alice", "wrong")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Invalid credentials")

	_, _, _, err = authService.Login(ctx, "nobody", "pw1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Invalid credentials")
}
