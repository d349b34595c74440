package board

import (
	"math/bits"
	"strconv"
	"strings"
)

// Set represents a set of board numbers using a bitset for fast operations.
// Number n maps to bit n, so only bits 1..25 are ever set.
type Set uint32

const validBits Set = ((1 << (MaxNumber + 1)) - 1) &^ 1

// NewSet creates a Set from the given numbers. Numbers outside 1..25 are ignored.
func NewSet(nums ...int) Set {
	var s Set
	for _, n := range nums {
		s.Add(n)
	}
	return s
}

// Full returns the set of every number on the board.
func Full() Set {
	return validBits
}

// InRange reports whether n is a valid board number.
func InRange(n int) bool {
	return n >= MinNumber && n <= MaxNumber
}

// Add inserts n into the set
func (s *Set) Add(n int) {
	if !InRange(n) {
		return
	}
	*s |= 1 << uint(n)
}

// Remove deletes n from the set
func (s *Set) Remove(n int) {
	if !InRange(n) {
		return
	}
	*s &^= 1 << uint(n)
}

// Contains checks if n is in the set
func (s Set) Contains(n int) bool {
	if !InRange(n) {
		return false
	}
	return s&(1<<uint(n)) != 0
}

// ContainsAll reports whether every number of other is also in s.
func (s Set) ContainsAll(other Set) bool {
	return s&other == other
}

// Len returns the number of elements
func (s Set) Len() int {
	return bits.OnesCount32(uint32(s & validBits))
}

// Empty reports whether the set has no elements
func (s Set) Empty() bool {
	return s&validBits == 0
}

func (s Set) Union(other Set) Set {
	return s | other
}

func (s Set) Difference(other Set) Set {
	return s &^ other
}

func (s Set) Intersect(other Set) Set {
	return s & other
}

// Numbers returns the members in ascending order.
func (s Set) Numbers() []int {
	nums := make([]int, 0, s.Len())
	for rest := uint32(s & validBits); rest != 0; rest &= rest - 1 {
		nums = append(nums, bits.TrailingZeros32(rest))
	}
	return nums
}

// String formats the set as "{1 2 3}".
func (s Set) String() string {
	nums := s.Numbers()
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return "{" + strings.Join(parts, " ") + "}"
}
