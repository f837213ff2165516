package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret-password")
	require.NoError(t, err)
	require.NotEqual(t, "secret-password", hash)

	require.NoError(t, CheckPassword(hash, "secret-password"))
	require.Error(t, CheckPassword(hash, "wrong-password"))
}
