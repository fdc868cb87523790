package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunQueries(t *testing.T) {
	type testcase struct {
		name  string
		input string
		want  []int64
	}
	testcases := []testcase{
		{
			name:  "empty stream",
			input: "",
		},
		{
			name:  "inserts only",
			input: "k 1 k 2 k 3",
		},
		{
			name:  "present keys",
			input: "k 1 k 2 k 3 k 4 k 5 q 1 5 q 1 1 q 5 5",
			want:  []int64{4, 0, 0},
		},
		{
			name:  "absent keys",
			input: "k 10 k 20 q 8 31 q 6 9",
			want:  []int64{2, 0},
		},
		{
			name:  "reversed pair clamps to zero",
			input: "k 10 k 20 k 30 q 30 10 q 10 30",
			want:  []int64{0, 2},
		},
		{
			name:  "duplicate inserts are no-ops",
			input: "k 5 k 5 k 7 q 0 100",
			want:  []int64{2},
		},
		{
			name:  "queries interleaved with inserts",
			input: "k 10 k 20 q 8 31 k 30 k 40 q 15 41",
			want:  []int64{2, 3},
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			got, err := runQueries(strings.NewReader(tc.input))
			require.NoError(tt, err)
			require.Equal(tt, tc.want, got)
		})
	}
}

func TestRunQueriesParseErrors(t *testing.T) {
	type testcase struct {
		name  string
		input string
	}
	testcases := []testcase{
		{
			name:  "unknown op",
			input: "x 1",
		},
		{
			name:  "k without argument",
			input: "k",
		},
		{
			name:  "q with one argument",
			input: "q 1",
		},
		{
			name:  "non-numeric argument",
			input: "k one",
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			_, err := runQueries(strings.NewReader(tc.input))
			require.Error(tt, err)
		})
	}
}
