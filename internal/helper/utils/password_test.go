package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTempPasswordLengthAndAlphabet(t *testing.T) {
	for i := 0; i < 1000; i++ {
		pw, err := GenerateTempPassword()
		require.NoError(t, err)
		require.Len(t, pw, 8)

		for _, r := range pw {
			assert.True(t, strings.ContainsRune(passwordAlphabet, r),
				"unexpected character %q in %q", r, pw)
		}

		assert.NotContains(t, pw, "0")
		assert.NotContains(t, pw, "1")
		assert.NotContains(t, pw, "I")
		assert.NotContains(t, pw, "O")
		assert.NotContains(t, pw, "l")
	}
}

func TestGenerateTempPasswordIsRandom(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		pw, err := GenerateTempPassword()
		require.NoError(t, err)
		seen[pw] = true
	}
	// 56^8 possibilities: 1000 draws colliding would mean a broken source
	assert.Equal(t, 1000, len(seen))
}
