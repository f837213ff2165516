package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateQueryCacheKeyIsOrderIndependent(t *testing.T) {
	a := GenerateQueryCacheKey("properties", map[string]string{
		"location": "guntur",
		"type":     "flats",
	})
	b := GenerateQueryCacheKey("properties", map[string]string{
		"type":     "flats",
		"location": "guntur",
	})
	require.Equal(t, a, b)
	require.Contains(t, a, "properties:")
}

func TestGenerateQueryCacheKeyDistinguishesQueries(t *testing.T) {
	a := GenerateQueryCacheKey("properties", map[string]string{"location": "guntur"})
	b := GenerateQueryCacheKey("properties", map[string]string{"location": "vijayawada"})
	require.NotEqual(t, a, b)
}
