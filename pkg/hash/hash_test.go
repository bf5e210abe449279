package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher()

	encoded, err := hasher.Hash("s3cret-password")
	require.NoError(t, err)
	require.NotEmpty(t, encoded)
	assert.NotEqual(t, "s3cret-password", encoded)

	assert.True(t, hasher.Compare(encoded, "s3cret-password"))
	assert.False(t, hasher.Compare(encoded, "wrong-password"))
	assert.False(t, hasher.Compare(encoded, ""))
}

func TestBcryptHasherSaltsEachHash(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher()

	first, err := hasher.Hash("same-password")
	require.NoError(t, err)
	second, err := hasher.Hash("same-password")
	require.NoError(t, err)

	// Per-hash salt means equal passwords never share a stored value
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Compare(first, "same-password"))
	assert.True(t, hasher.Compare(second, "same-password"))
}

func TestBcryptHasherZeroValueUsesDefaultCost(t *testing.T) {
	t.Parallel()

	hasher := &BcryptHasher{}

	encoded, err := hasher.Hash("password")
	require.NoError(t, err)
	assert.True(t, hasher.Compare(encoded, "password"))
}

func TestHMACHasherIsDeterministic(t *testing.T) {
	t.Parallel()

	hasher := HMACHasher{}

	first, err := hasher.Hash("legacy-password")
	require.NoError(t, err)
	second, err := hasher.Hash("legacy-password")
	require.NoError(t, err)

	// Legacy digest is unsalted: same password, same stored value
	assert.Equal(t, first, second)
	assert.Len(t, first, 64) // hex encoded sha256

	assert.True(t, hasher.Compare(first, "legacy-password"))
	assert.False(t, hasher.Compare(first, "other-password"))
}

func TestHMACHasherDifferentPasswordsDiffer(t *testing.T) {
	t.Parallel()

	hasher := HMACHasher{}

	first, err := hasher.Hash("password-a")
	require.NoError(t, err)
	second, err := hasher.Hash("password-b")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
