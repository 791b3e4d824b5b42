package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	return &AuthService{
		Repo:          newRepo(t),
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, transport.RegisterRequest{Username: " ada ", Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "ada", u.Username)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	_, err = svc.Register(ctx, transport.RegisterRequest{Username: "ada", Password: "another"})
	require.ErrorIs(t, err, ErrConflict)

	_, err = svc.Register(ctx, transport.RegisterRequest{Username: "al", Password: "secret1"})
	require.ErrorIs(t, err, ErrValidation)

	pair, err := svc.Login(ctx, transport.LoginRequest{Username: "ada", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, pair.Role)
	assert.WithinDuration(t, time.Now().Add(DefaultAccessTTL), pair.AccessExp, time.Minute)

	claims, err := tokens.AccessClaimsFromToken(pair.AccessToken, svc.AccessSecret)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.Subject)
	assert.Equal(t, "ada", claims.Username)

	_, err = svc.Login(ctx, transport.LoginRequest{Username: "ada", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, transport.LoginRequest{Username: "nobody", Password: "secret1"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_RotatesOnce(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, transport.RegisterRequest{Username: "ada", Password: "secret1"})
	require.NoError(t, err)
	first, err := svc.Login(ctx, transport.LoginRequest{Username: "ada", Password: "secret1"})
	require.NoError(t, err)

	second, err := svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = svc.Refresh(ctx, first.RefreshToken)
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Refresh(ctx, "not-a-token")
	require.ErrorIs(t, err, ErrUnauthorized)

	// an access token is not accepted as a refresh token
	_, err = svc.Refresh(ctx, second.AccessToken)
	require.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, svc.Logout(ctx, second.RefreshToken))
	_, err = svc.Refresh(ctx, second.RefreshToken)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestEnsureAdmin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "root", "rootpass"))
	require.NoError(t, svc.EnsureAdmin(ctx, "root", "rootpass"))
	require.NoError(t, svc.EnsureAdmin(ctx, "", ""))

	u, err := svc.Repo.GetUserByUsername(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)

	pair, err := svc.Login(ctx, transport.LoginRequest{Username: "root", Password: "rootpass"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, pair.Role)
}
