package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func newIssuer(t *testing.T, clock clockwork.Clock) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer("test-secret", time.Hour, "weather-insight", clock)
	require.NoError(t, err)
	return issuer
}

func TestIssueAndVerify(t *testing.T) {
	clock := clockwork.NewFakeClockAt(epoch)
	issuer := newIssuer(t, clock)

	token, expiresAt, err := issuer.Issue("user-1", "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, epoch.Add(time.Hour), expiresAt)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "weather-insight", claims.Issuer)
	assert.Equal(t, epoch.Unix(), claims.IssuedAt.Unix())
}

func TestVerify_Expired(t *testing.T) {
	clock := clockwork.NewFakeClockAt(epoch)
	issuer := newIssuer(t, clock)

	token, _, err := issuer.Issue("user-1", "ana@example.com")
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	clock := clockwork.NewFakeClockAt(epoch)
	token, _, err := newIssuer(t, clock).Issue("user-1", "ana@example.com")
	require.NoError(t, err)

	other, err := NewTokenIssuer("other-secret", time.Hour, "weather-insight", clock)
	require.NoError(t, err)
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsNoneAlgorithm(t *testing.T) {
	clock := clockwork.NewFakeClockAt(epoch)
	claims := Claims{
		Email: "ana@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "weather-insight",
			ExpiresAt: jwt.NewNumericDate(epoch.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newIssuer(t, clock).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongIssuer(t *testing.T) {
	clock := clockwork.NewFakeClockAt(epoch)
	other, err := NewTokenIssuer("test-secret", time.Hour, "someone-else", clock)
	require.NoError(t, err)
	token, _, err := other.Issue("user-1", "ana@example.com")
	require.NoError(t, err)

	_, err = newIssuer(t, clock).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := newIssuer(t, nil).Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenIssuer_Validation(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour, "x", nil)
	assert.Error(t, err)
	_, err = NewTokenIssuer("s", 0, "x", nil)
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	ok, err := CheckPassword(hash, "s3cret!")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = CheckPassword("not-a-bcrypt-hash", "s3cret!")
	assert.Error(t, err)
}
