package utils

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc", TruncateString("abc", 5))
	assert.Equal(t, "abc", TruncateString("abc", 3))
	assert.Equal(t, "ab", TruncateString("abc", 2))
	assert.Equal(t, "", TruncateString("", 4))

	t.Run("never splits a rune", func(t *testing.T) {
		long := strings.Repeat("日", 22) // 66 bytes

		got := TruncateString(long, 64)

		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, strings.Repeat("日", 21), got)
		assert.LessOrEqual(t, len(got), 64)
	})

	t.Run("boundary cut on multi-byte input stays exact", func(t *testing.T) {
		got := TruncateString(strings.Repeat("日", 22), 66)
		assert.Equal(t, strings.Repeat("日", 22), got)
	})
}

func TestGenerateRandomString(t *testing.T) {
	first, err := GenerateRandomString(32)
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := GenerateRandomString(32)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestNullHelpers(t *testing.T) {
	assert.False(t, ToNullString("").Valid)
	assert.True(t, ToNullString("x").Valid)

	assert.False(t, ToNullTime(nil).Valid)
	now := time.Now()
	assert.True(t, ToNullTime(&now).Valid)
}
