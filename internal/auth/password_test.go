package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifiesRoundTrip(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	require.True(t, CheckPassword("correct horse battery staple", digest))
	require.False(t, CheckPassword("correct horse battery stable", digest))
}

func TestHashPassword_FreshSaltPerCall(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("hunter22")
	require.NoError(t, err)
	second, err := HashPassword("hunter22")
	require.NoError(t, err)

	// Salted digests of the same input must differ; equality comparison
	// of digests is never meaningful.
	require.NotEqual(t, first, second)
	require.True(t, CheckPassword("hunter22", first))
	require.True(t, CheckPassword("hunter22", second))
}

func TestCheckPassword_MalformedDigest(t *testing.T) {
	t.Parallel()

	require.False(t, CheckPassword("whatever", "not-a-bcrypt-digest"))
	require.False(t, CheckPassword("whatever", ""))
}
