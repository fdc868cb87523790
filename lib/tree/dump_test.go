package tree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteDot(t *testing.T) {
	tree := NewOSTreeOf[int](2, 1, 3)

	var sb strings.Builder
	require.NoError(t, tree.WriteDot(&sb))

	dump := sb.String()
	require.True(t, strings.HasPrefix(dump, "digraph G{"))
	require.Contains(t, dump, "PAST-END")
	require.Contains(t, dump, "size: 3")
	require.Contains(t, dump, "PREV")
	require.Contains(t, dump, "NEXT")
}

func TestWriteDotEmpty(t *testing.T) {
	tree := NewOSTree[int]()

	var sb strings.Builder
	require.NoError(t, tree.WriteDot(&sb))
	require.Contains(t, sb.String(), "PAST-END")
}
