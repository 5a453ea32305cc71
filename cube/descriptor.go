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

import "math"

// Descriptor is the cube engine's declarative cube description. The
// scheduler only reads from it; parsing and validating a descriptor
// from whatever external representation the cube engine uses is that
// engine's concern, not this package's.
type Descriptor interface {
	// DimensionCount returns the cube's dimension count D, >= 1.
	DimensionCount() int
	// BaseCuboidID returns the cube's base cuboid, typically (1<<D)-1
	// but left to the descriptor to allow masking schemes.
	BaseCuboidID() Cuboid
	// AggregationGroups returns the cube's aggregation groups. Callers
	// must treat the returned slice as read-only.
	AggregationGroups() []*AggregationGroup
	// ParentForward bounds how many ancestor hops tree padding may
	// skip while looking for a materialized parent.
	ParentForward() int
	// IsBlacklisted reports whether the operator has excluded c from
	// the materialized set.
	IsBlacklisted(c Cuboid) bool
	// MaxCombinationRaw returns the configured
	// cubeAggrGroupMaxCombination, or a negative value to mean
	// unbounded.
	MaxCombinationRaw() int64
}

// EffectiveMaxCombination applies the descriptor's configured
// explosion-guard multiplier to raw. A negative raw means unbounded,
// which maps to the largest representable limit rather than to a
// multiplication that would overflow. The multiplier is intentionally
// preserved as a blunt instrument rather than replaced with an exact
// combinatorial bound.
func EffectiveMaxCombination(raw int64, multiplier int64) int64 {
	if raw < 0 {
		return math.MaxInt64
	}
	limit := raw * multiplier
	if limit < raw || (multiplier > 0 && raw > math.MaxInt64/multiplier) {
		// overflow: saturate rather than wrap, since the guard exists
		// precisely to stop runaway growth.
		return math.MaxInt64
	}
	return limit
}
