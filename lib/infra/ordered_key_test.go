package infra

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderedLess(t *testing.T) {
	require.True(t, OrderedLess(1, 2))
	require.False(t, OrderedLess(2, 1))
	require.False(t, OrderedLess(2, 2))

	require.True(t, OrderedLess("abc", "abd"))
	require.False(t, OrderedLess("abd", "abc"))

	require.True(t, OrderedLess(uint8(0), uint8(255)))
	require.True(t, OrderedLess(-1.5, 0.0))
}

func TestLessFuncEquivalence(t *testing.T) {
	var less LessFunc[int] = func(a, b int) bool { return a/10 < b/10 }

	// 12 and 17 share a bucket, so neither sorts before the other.
	require.False(t, less(12, 17))
	require.False(t, less(17, 12))
	require.True(t, less(12, 27))
}
