package booking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeGenerator(t *testing.T) {
	g, err := NewCodeGenerator("test-salt")
	require.NoError(t, err)

	slot := NewTimeRange(day("2026-09-01"), 18*60, 20*60)
	code, err := g.Generate(1, slot)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(code, "TURF-"))
	// no ambiguous characters in the readable part
	for _, c := range strings.TrimPrefix(code, "TURF-") {
		assert.NotContains(t, "0O1I", string(c))
	}

	// the nonce keeps a rebooked slot from reusing a code
	again, err := g.Generate(1, slot)
	require.NoError(t, err)
	assert.NotEqual(t, code, again)
}
