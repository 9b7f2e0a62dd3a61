package credentials

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_SaltedAndVerifiable(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("hunter22")
	require.NoError(t, err)
	h2, err := HashPassword("hunter22")
	require.NoError(t, err)

	require.NotEqual(t, h1, h2, "same plaintext must yield different hashes")
	require.True(t, VerifyPassword("hunter22", h1))
	require.True(t, VerifyPassword("hunter22", h2))
	require.False(t, VerifyPassword("hunter23", h1))
}

func TestTokenManager_IssueAndValidate(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("super-secret", time.Hour)
	tok, exp, err := m.Issue("user-123")
	require.NoError(t, err)
	require.True(t, exp.After(time.Now()))

	uid, err := m.Validate(tok)
	require.NoError(t, err)
	require.Equal(t, "user-123", uid)
}

func TestTokenManager_Expired(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("super-secret", -time.Second)
	tok, _, err := m.Issue("user-123")
	require.NoError(t, err)

	_, err = m.Validate(tok)
	require.Error(t, err)
}

func TestTokenManager_Tampered(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("super-secret", time.Hour)
	tok, _, err := m.Issue("user-123")
	require.NoError(t, err)

	// Flip a byte in the signature segment.
	b := []byte(tok)
	last := len(b) - 1
	if b[last] == 'A' {
		b[last] = 'B'
	} else {
		b[last] = 'A'
	}
	_, err = m.Validate(string(b))
	require.Error(t, err)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, _, err := NewTokenManager("right-secret", time.Hour).Issue("u1")
	require.NoError(t, err)

	_, err = NewTokenManager("wrong-secret", time.Hour).Validate(tok)
	require.Error(t, err)
}

func TestTokenManager_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager("k", time.Hour).Validate("not.a.jwt")
	require.Error(t, err)
}

func TestNewResetToken(t *testing.T) {
	t.Parallel()

	plain, hashed, expiry, err := NewResetToken()
	require.NoError(t, err)
	require.Len(t, plain, 40)
	require.Equal(t, HashResetToken(plain), hashed, "stored form must be derivable from the plain token")
	require.NotEqual(t, plain, hashed)

	until := time.Until(expiry)
	require.Greater(t, until, 9*time.Minute)
	require.LessOrEqual(t, until, 10*time.Minute)

	// Distinct secrets across calls.
	plain2, _, _, err := NewResetToken()
	require.NoError(t, err)
	require.NotEqual(t, plain, plain2)
}
