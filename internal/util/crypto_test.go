package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCryptoRandomBytes(t *testing.T) {
	a, err := CryptoRandomBytes(32)
	require.NoError(t, err)
	b, err := CryptoRandomBytes(32)
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

func TestCryptoRandomString(t *testing.T) {
	for _, length := range []int{1, 16, 63, 64} {
		s, err := CryptoRandomString(length)
		require.NoError(t, err)
		assert.Len(t, s, length)
	}

	a, _ := CryptoRandomString(64)
	b, _ := CryptoRandomString(64)
	assert.NotEqual(t, a, b)
}
