package tree

import "github.com/ostat/ordset/lib/infra"

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=RBColor
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

// OrderedSet is an ordered collection of unique keys with logarithmic
// rank and range-cardinality queries on top of the usual set operations.
type OrderedSet[K any] interface {
	Len() int64
	Empty() bool
	Insert(key K) (Iterator[K], bool)
	InsertAll(keys ...K)
	Emplace(ctor func() K) (Iterator[K], bool)
	Remove(key K) bool
	RemoveAt(pos Iterator[K]) Iterator[K]
	RemoveRange(first, last Iterator[K]) Iterator[K]
	Find(key K) Iterator[K]
	Contains(key K) bool
	LowerBound(key K) Iterator[K]
	UpperBound(key K) Iterator[K]
	EqualRange(key K) (Iterator[K], Iterator[K])
	LessThan(key K) int64
	Distance(first, second K) int64
	DistanceIters(first, second Iterator[K]) int64
	Begin() Iterator[K]
	End() Iterator[K]
	RBegin() Iterator[K]
	REnd() Iterator[K]
	Foreach(action func(idx int64, color RBColor, key K) bool)
	Keys() []K
	Clear()
	KeyComp() infra.LessFunc[K]
}
