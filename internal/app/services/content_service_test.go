package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTags(t *testing.T) {
	tags, err := parseTags(`["go","backend"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "backend"}, tags)

	tags, err = parseTags("")
	require.NoError(t, err)
	assert.Empty(t, tags)

	_, err = parseTags("go,backend")
	assert.Error(t, err)
}
