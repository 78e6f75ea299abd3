package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAllLimit(t *testing.T) {
	b, err := ReadAllLimit(bytes.NewReader([]byte("12345")), 5)
	require.NoError(t, err)
	assert.Equal(t, []byte("12345"), b)

	_, err = ReadAllLimit(bytes.NewReader([]byte("123456")), 5)
	assert.Error(t, err)

	b, err = ReadAllLimit(bytes.NewReader(nil), 5)
	require.NoError(t, err)
	assert.Empty(t, b)
}
