package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	a := NewJWTAuthenticator("super-secret", "identity-api", time.Hour)

	token, err := a.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := a.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", userID)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	a := NewJWTAuthenticator("secret", "identity-api", -time.Minute)

	token, err := a.Issue("u1")
	require.NoError(t, err)

	_, err = a.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewJWTAuthenticator("right-secret", "identity-api", time.Hour)
	verifier := NewJWTAuthenticator("wrong-secret", "identity-api", time.Hour)

	token, err := issuer.Issue("u2")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongIssuer(t *testing.T) {
	t.Parallel()

	issuer := NewJWTAuthenticator("secret", "someone-else", time.Hour)
	verifier := NewJWTAuthenticator("secret", "identity-api", time.Hour)

	token, err := issuer.Issue("u3")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	a := NewJWTAuthenticator("secret", "identity-api", time.Hour)

	for _, token := range []string{"", "not.a.jwt", "garbage"} {
		_, err := a.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}
