// Package selection holds ordered sets of row positions.
//
// A Selection is what a predicate over a column produces: the positions of the
// rows that satisfied it, iterated in ascending order. It is backed by a
// bitset, so membership tests are constant time and iteration is ordered for
// free.
package selection

import "github.com/bits-and-blooms/bitset"

type Selection struct {
	bits *bitset.BitSet
}

// New returns an empty selection.
func New() *Selection {
	return &Selection{bits: bitset.New(0)}
}

// WithRange returns the contiguous selection [start, end).
func WithRange(start, end int) *Selection {
	s := &Selection{bits: bitset.New(uint(max(end, 0)))}
	for r := start; r < end; r++ {
		s.bits.Set(uint(r))
	}
	return s
}

func (s *Selection) Add(row int) *Selection {
	s.bits.Set(uint(row))
	return s
}

func (s *Selection) Contains(row int) bool {
	if row < 0 {
		return false
	}
	return s.bits.Test(uint(row))
}

func (s *Selection) Size() int {
	return int(s.bits.Count())
}

func (s *Selection) IsEmpty() bool {
	return s.bits.None()
}

// ForEach calls fn for each selected row in ascending order.
func (s *Selection) ForEach(fn func(row int)) {
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		fn(int(i))
	}
}

// ToSlice returns the selected rows in ascending order.
func (s *Selection) ToSlice() []int {
	rows := make([]int, 0, s.Size())
	s.ForEach(func(row int) {
		rows = append(rows, row)
	})
	return rows
}
