package tree

import (
	randv2 "math/rand"
	"testing"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/google/btree"
)

func BenchmarkOSTreeInsert_Random(b *testing.B) {
	b.StopTimer()
	tree := NewOSTree[int]()

	rngArr := make([]int, 0, b.N)
	for i := 0; i < b.N; i++ {
		rngArr = append(rngArr, randv2.Int())
	}

	b.StartTimer()
	for i := 0; i < b.N; i++ {
		tree.Insert(rngArr[i])
	}
}

func BenchmarkOSTreeInsert_Serial(b *testing.B) {
	b.StopTimer()
	tree := NewOSTree[int]()

	b.StartTimer()
	for i := 0; i < b.N; i++ {
		tree.Insert(i)
	}
}

func BenchmarkGodsRBTreeInsert_Random(b *testing.B) {
	b.StopTimer()
	tree := redblacktree.NewWithIntComparator()

	rngArr := make([]int, 0, b.N)
	for i := 0; i < b.N; i++ {
		rngArr = append(rngArr, randv2.Int())
	}

	b.StartTimer()
	for i := 0; i < b.N; i++ {
		tree.Put(rngArr[i], nil)
	}
}

func BenchmarkGoogleBTreeInsert_Random(b *testing.B) {
	b.StopTimer()
	tree := btree.NewOrderedG[int](32)

	rngArr := make([]int, 0, b.N)
	for i := 0; i < b.N; i++ {
		rngArr = append(rngArr, randv2.Int())
	}

	b.StartTimer()
	for i := 0; i < b.N; i++ {
		tree.ReplaceOrInsert(rngArr[i])
	}
}

func BenchmarkOSTreeLessThan(b *testing.B) {
	b.StopTimer()
	tree := NewOSTree[int]()
	for i := 0; i < 1_000_000; i++ {
		tree.Insert(int(randv2.Uint32()))
	}

	b.StartTimer()
	for i := 0; i < b.N; i++ {
		tree.LessThan(int(randv2.Uint32()))
	}
}

func BenchmarkOSTreeIterate(b *testing.B) {
	b.StopTimer()
	tree := NewOSTree[int]()
	for i := 0; i < 100_000; i++ {
		tree.Insert(int(randv2.Uint32()))
	}

	b.StartTimer()
	for i := 0; i < b.N; i++ {
		for it := tree.Begin(); it != tree.End(); it = it.Next() {
		}
	}
}
