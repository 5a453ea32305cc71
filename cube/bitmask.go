// Copyright 2024 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cube

import "math/bits"

// Cuboid is a bitmask over a cube's dimensions. Bit i set means
// dimension i participates in the aggregation. The scheduler never
// interprets a Cuboid as signed; implementations that need a "no such
// cuboid" sentinel use a separate bool return rather than a negative
// value, so dimension counts up to 63 never risk a collision with a
// sentinel.
type Cuboid uint64

// MaxDimensions is the largest dimension count this package supports.
// Cuboid is a uint64 bitmask, so dimension indices must fit in 63 bits
// to leave the top bit free for any tooling that round-trips a Cuboid
// through a signed representation.
const MaxDimensions = 63

// Cardinality returns the number of set bits in c, i.e. the number of
// dimensions it retains.
func Cardinality(c Cuboid) int {
	return bits.OnesCount64(uint64(c))
}

// LowestSetBit returns the mask containing only c's lowest set bit, or
// 0 if c is 0.
func LowestSetBit(c Cuboid) Cuboid {
	return c & (^c + 1)
}

// IsSubsetOf reports whether every bit of c is also set in p, i.e. p
// is an ancestor candidate of c.
func IsSubsetOf(c, p Cuboid) bool {
	return c&^p == 0
}

// IsSupersetOf reports whether p contains every bit of c.
func IsSupersetOf(p, c Cuboid) bool {
	return IsSubsetOf(c, p)
}

// Intersects reports whether c and mask share any set bit.
func Intersects(c, mask Cuboid) bool {
	return c&mask != 0
}

// Contains reports whether c has every bit of mask set.
func Contains(c, mask Cuboid) bool {
	return c&mask == mask
}

// WithBit returns c with dimension d added.
func WithBit(c Cuboid, d int) Cuboid {
	return c | (Cuboid(1) << uint(d))
}

// RemoveBits returns c with every bit in mask cleared.
func RemoveBits(c, mask Cuboid) Cuboid {
	return c &^ mask
}

// Bits returns the dimension indices set in c, ascending.
func Bits(c Cuboid) []int {
	var out []int
	for i := 0; i < MaxDimensions+1; i++ {
		if c&(Cuboid(1)<<uint(i)) != 0 {
			out = append(out, i)
		}
	}
	return out
}

// CompareCuboids is the canonical tie-break comparator: cardinality
// ascending, then mask value ascending. Every place in this module
// that must pick "the" cuboid out of a candidate set uses this
// comparator, so that results are reproducible across runs.
func CompareCuboids(a, b Cuboid) int {
	ca, cb := Cardinality(a), Cardinality(b)
	switch {
	case ca != cb:
		if ca < cb {
			return -1
		}
		return 1
	case a == b:
		return 0
	case a < b:
		return -1
	default:
		return 1
	}
}

// SortCuboids sorts s in place by CompareCuboids.
func SortCuboids(s []Cuboid) {
	insertionSortCuboids(s)
}

// insertionSortCuboids keeps the dependency-free sort small and
// explicit; candidate lists here are tiny (bounded by a cube's
// dimension count), so an O(n^2) sort is not a concern.
func insertionSortCuboids(s []Cuboid) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && CompareCuboids(s[j-1], s[j]) > 0; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// MinCuboid returns the minimum of candidates under CompareCuboids and
// true, or (0, false) if candidates is empty.
func MinCuboid(candidates []Cuboid) (Cuboid, bool) {
	if len(candidates) == 0 {
		return 0, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if CompareCuboids(c, best) < 0 {
			best = c
		}
	}
	return best, true
}
