package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Roundtrip(t *testing.T) {
	hash, err := HashPassword("S3curePassw0rd!")
	require.NoError(t, err)
	assert.NotEqual(t, "S3curePassw0rd!", hash)

	assert.True(t, CheckPassword(hash, "S3curePassw0rd!"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestCheckPassword_EmptyHash(t *testing.T) {
	// Federated accounts store an empty hash, no password ever matches
	assert.False(t, CheckPassword("", "anything"))
	assert.False(t, CheckPassword("", ""))
}
