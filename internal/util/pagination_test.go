package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	offset, limit := Calculate(1, 10)
	require.Equal(t, 0, offset)
	require.Equal(t, 10, limit)

	offset, limit = Calculate(3, 20)
	require.Equal(t, 40, offset)
	require.Equal(t, 20, limit)

	// out-of-range input falls back to defaults
	offset, limit = Calculate(0, 0)
	require.Equal(t, 0, offset)
	require.Equal(t, DefaultPageSize, limit)

	offset, limit = Calculate(-5, 1000)
	require.Equal(t, 0, offset)
	require.Equal(t, DefaultPageSize, limit)
}

func TestTotalPages(t *testing.T) {
	require.Equal(t, 0, TotalPages(0, 10))
	require.Equal(t, 1, TotalPages(1, 10))
	require.Equal(t, 1, TotalPages(10, 10))
	require.Equal(t, 2, TotalPages(11, 10))
	require.Equal(t, 0, TotalPages(5, 0))
}
