package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testMaker() *TokenMaker {
	return NewTokenMaker(JWTConfig{
		Secret:            "test-secret",
		AccessExpiryMins:  30,
		RefreshExpiryDays: 7,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	maker := testMaker()
	userID := uuid.New()

	token, expiresAt, err := maker.CreateAccessToken(userID, "customer")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.False(t, expiresAt.IsZero())

	claims, err := maker.VerifyToken(token, TokenTypeAccess)
	require.NoError(t, err)
	require.Equal(t, userID.String(), claims.Subject)
	require.Equal(t, "customer", claims.Role)
	require.Equal(t, TokenTypeAccess, claims.Type)
}

func TestTokensUniquePerIssue(t *testing.T) {
	maker := testMaker()
	userID := uuid.New()

	// Same user, same type, same second: the jti claim must still make
	// every issued token distinct, or rotation stores a duplicate row.
	first, _, err := maker.CreateRefreshToken(userID, "customer")
	require.NoError(t, err)
	second, _, err := maker.CreateRefreshToken(userID, "customer")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	a, _, err := maker.CreateAccessToken(userID, "customer")
	require.NoError(t, err)
	b, _, err := maker.CreateAccessToken(userID, "customer")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestTokenTypeMismatchRejected(t *testing.T) {
	maker := testMaker()
	userID := uuid.New()

	refresh, _, err := maker.CreateRefreshToken(userID, "seller")
	require.NoError(t, err)

	// A refresh token must never pass as an access token
	_, err = maker.VerifyToken(refresh, TokenTypeAccess)
	require.ErrorIs(t, err, ErrInvalidToken)

	access, _, err := maker.CreateAccessToken(userID, "seller")
	require.NoError(t, err)

	_, err = maker.VerifyToken(access, TokenTypeRefresh)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	maker := testMaker()
	other := NewTokenMaker(JWTConfig{Secret: "other-secret", AccessExpiryMins: 30, RefreshExpiryDays: 7})

	token, _, err := maker.CreateAccessToken(uuid.New(), "customer")
	require.NoError(t, err)

	_, err = other.VerifyToken(token, TokenTypeAccess)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenGarbageRejected(t *testing.T) {
	maker := testMaker()

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := maker.VerifyToken(token, TokenTypeAccess)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}
