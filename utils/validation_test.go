package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidPhone(t *testing.T) {
	require.True(t, IsValidPhone("9876543210"))
	require.False(t, IsValidPhone("987654321"))
	require.False(t, IsValidPhone("98765432100"))
	require.False(t, IsValidPhone("98765abcde"))
	require.False(t, IsValidPhone("+919876543210"))
	require.False(t, IsValidPhone(""))
}

func TestIsValidEmail(t *testing.T) {
	require.True(t, IsValidEmail("ravi.kumar@example.com"))
	require.True(t, IsValidEmail("a@b.co"))
	require.False(t, IsValidEmail("not-an-email"))
	require.False(t, IsValidEmail("missing@domain"))
	require.False(t, IsValidEmail("@example.com"))
}
