package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	tokens := NewTokens([]byte("super-secret"), 30*time.Minute)

	tok, err := tokens.Issue("alice")
	require.NoError(t, err)

	name, err := tokens.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", name)
}

func TestVerify_ExpiresAfterThirtyMinutes(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := issuedAt
	tokens := NewTokens([]byte("secret"), 30*time.Minute).WithClock(func() time.Time { return now })

	tok, err := tokens.Issue("alice")
	require.NoError(t, err)

	now = issuedAt.Add(29*time.Minute + 59*time.Second)
	_, err = tokens.Verify(tok)
	assert.NoError(t, err, "token must be accepted just before expiry")

	now = issuedAt.Add(30*time.Minute + time.Second)
	_, err = tokens.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_SubSecondIssueLastsFullTTL(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 900*int(time.Millisecond), time.UTC)
	now := issuedAt
	tokens := NewTokens([]byte("secret"), 30*time.Minute).WithClock(func() time.Time { return now })

	tok, err := tokens.Issue("alice")
	require.NoError(t, err)

	now = issuedAt.Add(30*time.Minute - 500*time.Millisecond)
	_, err = tokens.Verify(tok)
	assert.NoError(t, err, "token must be accepted until issue time plus TTL")

	now = issuedAt.Add(30*time.Minute + time.Second)
	_, err = tokens.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokens([]byte("right-secret"), time.Hour).Issue("u2")
	require.NoError(t, err)

	_, err = NewTokens([]byte("wrong-secret"), time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewTokens([]byte("k"), time.Hour).Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsNoneAlgorithm(t *testing.T) {
	t.Parallel()

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "mallory",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokens([]byte("k"), time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RequiresExpiry(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "bob"}).SignedString(secret)
	require.NoError(t, err)

	_, err = NewTokens(secret, time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw")
	require.NoError(t, err)
	assert.NotEqual(t, "pw", hash)

	assert.True(t, CheckPassword(hash, "pw"))
	assert.False(t, CheckPassword(hash, "PW"))
	assert.False(t, CheckPassword("not-a-hash", "pw"))

	again, err := HashPassword("pw")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "hashes must be salted")
}

func TestHashPassword_LongPasswords(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("p", 80)
	hash, err := HashPassword(long)
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, long))

	// Passwords sharing the first 72 bytes must still differ.
	assert.False(t, CheckPassword(hash, strings.Repeat("p", 79)+"q"))
	assert.False(t, CheckPassword(hash, long[:72]))
}
