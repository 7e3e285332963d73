package security

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewHasher(1)

	encoded, err := h.Hash("longpassword1")
	require.NoError(t, err)
	require.NotEmpty(t, encoded)
	require.NotContains(t, encoded, "longpassword1")

	require.True(t, h.Verify("longpassword1", encoded))
	require.False(t, h.Verify("wrongpassword", encoded))
}

func TestHash_UniqueSalt(t *testing.T) {
	t.Parallel()

	h := NewHasher(1)

	first, err := h.Hash("samepassword")
	require.NoError(t, err)
	second, err := h.Hash("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.True(t, h.Verify("samepassword", first))
	require.True(t, h.Verify("samepassword", second))
}

func TestVerify_MalformedHash(t *testing.T) {
	t.Parallel()

	h := NewHasher(1)

	require.False(t, h.Verify("whatever", ""))
	require.False(t, h.Verify("whatever", "not-an-argon2-hash"))
}
