package tokens

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestAccessRoundTrip(t *testing.T) {
	exp := time.Now().Add(15 * time.Minute)
	tok, err := SignAccess(AccessClaims{
		Role:     "admin",
		Username: "root",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}, secret)
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "root", claims.Username)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestAccessExpired(t *testing.T) {
	tok, err := SignAccess(AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}, secret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(tok, secret)
	require.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestRefreshWrongSecret(t *testing.T) {
	tok, err := SignRefresh("user-1", "jti-1", time.Now().Add(time.Hour), secret)
	require.NoError(t, err)

	claims, err := RefreshClaimsFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "jti-1", claims.ID)

	_, err = RefreshClaimsFromToken(tok, []byte("other"))
	require.Error(t, err)
}
