package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	got, err := Generate(PrefixBook)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "book-"))
	// 21-char NanoID plus prefix and separator.
	assert.Len(t, got, len(PrefixBook)+1+21)
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 1000 {
		id, err := Generate(PrefixMemo)
		require.NoError(t, err)
		assert.False(t, seen[id], "duplicate ID generated: %s", id)
		seen[id] = true
	}
}

func TestGenerate_DistinctPrefixes(t *testing.T) {
	for _, prefix := range []string{PrefixBook, PrefixMemo, PrefixShelf} {
		id, err := Generate(prefix)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(id, prefix+"-"))
	}
}

func TestMustGenerate(t *testing.T) {
	assert.NotPanics(t, func() {
		id := MustGenerate(PrefixShelf)
		assert.NotEmpty(t, id)
	})
}
