package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_NeverEqualsPlaintext(t *testing.T) {
	hash, err := HashPassword("p1", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "p1", hash)
	require.True(t, strings.HasPrefix(hash, "$2"))
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("x", 100), bcrypt.MinCost)
	require.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestComparePassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)

	require.NoError(t, ComparePassword(hash, "correct horse"))
	require.Error(t, ComparePassword(hash, "wrong horse"))
}

func TestComparePassword_MalformedDigest(t *testing.T) {
	// a broken digest is a non-match, not a panic
	require.Error(t, ComparePassword("not-a-bcrypt-digest", "anything"))
}
