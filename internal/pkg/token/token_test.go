package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResetToken(t *testing.T) {
	raw, digest, err := NewResetToken()
	require.NoError(t, err)
	assert.Len(t, raw, 64)
	assert.NotEqual(t, raw, digest)
	assert.Equal(t, Digest(raw), digest)
}

func TestNewResetToken_Unique(t *testing.T) {
	a, _, err := NewResetToken()
	require.NoError(t, err)
	b, _, err := NewResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDigest_Deterministic(t *testing.T) {
	assert.Equal(t, Digest("abc"), Digest("abc"))
	assert.NotEqual(t, Digest("abc"), Digest("abd"))
}
