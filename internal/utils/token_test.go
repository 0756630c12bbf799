package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionToken(t *testing.T) {
	tok, err := NewSessionToken(60)
	require.NoError(t, err)

	assert.Len(t, tok.Raw, 64, "32 random bytes hex encoded")
	assert.True(t, tok.Exp.After(time.Now().UTC()))
	assert.WithinDuration(t, time.Now().UTC().Add(60*time.Minute), tok.Exp, 5*time.Second)
}

func TestSessionTokensAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := NewSessionToken(1)
		require.NoError(t, err)
		assert.False(t, seen[tok.Raw], "token repeated")
		seen[tok.Raw] = true
	}
}

func TestHashSessionRaw(t *testing.T) {
	h1 := HashSessionRaw("token-a")
	h2 := HashSessionRaw("token-a")
	h3 := HashSessionRaw("token-b")

	assert.Equal(t, h1, h2, "hash must be deterministic")
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64, "sha256 hex digest")
	assert.NotContains(t, h1, "token-a")
}
