package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/ostat/ordset/lib/tree"
)

// Query stream grammar, whitespace separated:
//
//	k INT      insert INT into the set
//	q INT INT  emit distance(a, b), clamped below at 0
//
// The keys of a q query need not be present. Outputs are the q answers
// in query order.
func runQueries(r io.Reader) ([]int64, error) {
	set := tree.NewOSTree[int64]()
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	var out []int64
	for sc.Scan() {
		switch op := sc.Text(); op {
		case "k":
			key, err := nextInt(sc)
			if err != nil {
				return nil, fmt.Errorf("k query: %w", err)
			}
			set.Insert(key)
		case "q":
			first, err := nextInt(sc)
			if err != nil {
				return nil, fmt.Errorf("q query: %w", err)
			}
			second, err := nextInt(sc)
			if err != nil {
				return nil, fmt.Errorf("q query: %w", err)
			}
			dist := set.Distance(first, second)
			if dist < 0 {
				dist = 0
			}
			out = append(out, dist)
		default:
			return nil, fmt.Errorf("unknown query op %q", op)
		}
	}
	return out, sc.Err()
}

func nextInt(sc *bufio.Scanner) (int64, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return 0, err
		}
		return 0, errors.New("missing argument")
	}
	return strconv.ParseInt(sc.Text(), 10, 64)
}
