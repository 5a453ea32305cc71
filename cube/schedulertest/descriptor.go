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

// Package schedulertest holds a minimal cube.Descriptor implementation
// and the concrete descriptor fixtures for scenarios A-F,
// used by cube/scheduler's test suites: fixtures only, never imported
// by non-test code.
package schedulertest

import "github.com/dolthub/go-cuboid-scheduler/cube"

// Descriptor is a minimal, immutable cube.Descriptor for tests.
type Descriptor struct {
	Dims      int
	Base      cube.Cuboid
	Groups    []*cube.AggregationGroup
	Forward   int
	Blacklist map[cube.Cuboid]bool
	MaxCombo  int64
}

var _ cube.Descriptor = (*Descriptor)(nil)

// New builds a Descriptor. blacklist may be nil.
func New(dims int, base cube.Cuboid, groups []*cube.AggregationGroup, forward int, blacklist []cube.Cuboid, maxCombo int64) *Descriptor {
	bl := make(map[cube.Cuboid]bool, len(blacklist))
	for _, c := range blacklist {
		bl[c] = true
	}
	return &Descriptor{
		Dims:      dims,
		Base:      base,
		Groups:    groups,
		Forward:   forward,
		Blacklist: bl,
		MaxCombo:  maxCombo,
	}
}

func (d *Descriptor) DimensionCount() int                         { return d.Dims }
func (d *Descriptor) BaseCuboidID() cube.Cuboid                   { return d.Base }
func (d *Descriptor) AggregationGroups() []*cube.AggregationGroup { return d.Groups }
func (d *Descriptor) ParentForward() int                          { return d.Forward }
func (d *Descriptor) IsBlacklisted(c cube.Cuboid) bool             { return d.Blacklist[c] }
func (d *Descriptor) MaxCombinationRaw() int64                    { return d.MaxCombo }

// FullMask returns the all-ones mask for n dimensions.
func FullMask(n int) cube.Cuboid {
	return cube.Cuboid(1)<<uint(n) - 1
}
