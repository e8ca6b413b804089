package notes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewID_HasPrefixAndEncoding(t *testing.T) {
	id := NewID()
	require.True(t, strings.HasPrefix(id, idPrefix))

	body := strings.TrimPrefix(id, idPrefix)
	require.NotEmpty(t, body)
	for _, r := range body {
		require.Truef(t, (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z'),
			"unexpected rune %q in id %q", r, id)
	}
}

func TestNewID_UniqueAcrossCalls(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10_000; i++ {
		id := NewID()
		require.False(t, seen[id], "collision at iteration %d: %s", i, id)
		seen[id] = true
	}
}
