package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/document-service/internal/domain"
)

const testSecret = "test-secret"

func testCredential() domain.Credential {
	return domain.Credential{
		UserID: 42,
		Email:  "a@x.com",
		Name:   "Ada",
		Active: true,
		Role:   domain.RoleViewer,
	}
}

func TestIssueAndParse_RoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	token, exp, err := tm.Issue(testCredential())
	require.NoError(t, err)
	require.True(t, exp.After(time.Now()))

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	require.Equal(t, testCredential(), claims.Credential)
}

func TestParse_Expired(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	expired := signedToken(t, testSecret, jwt.SigningMethodHS256, time.Now().Add(-time.Minute))
	_, err := tm.Parse(expired)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestParse_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("right-secret", time.Hour)
	verifier := NewTokenManager("wrong-secret", time.Hour)

	token, _, err := issuer.Issue(testCredential())
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	require.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestParse_Malformed(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	_, err := tm.Parse("not.a.jwt")
	require.ErrorIs(t, err, ErrTokenMalformed)
}

func TestParse_RejectsNoneAlgorithm(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	claims := &Claims{
		Credential: testCredential(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.Parse(unsigned)
	require.Error(t, err)
}

func TestParse_RejectsOtherHMACVariant(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	other := signedToken(t, testSecret, jwt.SigningMethodHS512, time.Now().Add(time.Hour))
	_, err := tm.Parse(other)
	require.Error(t, err)
}

func TestSignaturePart(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	token, _, err := tm.Issue(testCredential())
	require.NoError(t, err)

	sig := SignaturePart(token)
	require.NotEmpty(t, sig)
	require.NotEqual(t, token, sig)

	// non-compact strings fall back to the whole value
	require.Equal(t, "opaque", SignaturePart("opaque"))
}

func signedToken(t *testing.T, secret string, method jwt.SigningMethod, expiresAt time.Time) string {
	t.Helper()
	claims := &Claims{
		Credential: testCredential(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}
