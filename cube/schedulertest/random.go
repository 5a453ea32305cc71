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

package schedulertest

import (
	"math/rand"

	"github.com/dolthub/go-cuboid-scheduler/cube"
)

// RandomDescriptor builds a small but non-trivial descriptor from
// seed: 3-6 dimensions, an optional joint, an optional two-level
// hierarchy, and a random mandatory mask drawn from the remaining
// plain dimensions. It never produces an unsatisfiable group — the
// dimension cap is always generous enough to admit every on-tree
// cuboid — so the universal invariants hold for every
// seed. Used to drive deterministic, reproducible property tests;
// seed is never derived from time or other non-deterministic sources.
func RandomDescriptor(seed int64) *Descriptor {
	r := rand.New(rand.NewSource(seed))
	dims := 3 + r.Intn(4) // 3..6
	full := FullMask(dims)

	order := make([]int, dims)
	for i := range order {
		order[i] = i
	}
	r.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	idx := 0
	var joints []cube.Cuboid
	if dims >= 4 && r.Intn(2) == 0 {
		j := cube.Cuboid(1)<<uint(order[idx]) | cube.Cuboid(1)<<uint(order[idx+1])
		idx += 2
		joints = append(joints, j)
	}

	var hierarchies []cube.Hierarchy
	if dims-idx >= 2 && r.Intn(2) == 0 {
		levels := []cube.Cuboid{
			cube.Cuboid(1) << uint(order[idx]),
			cube.Cuboid(1) << uint(order[idx+1]),
		}
		idx += 2
		hierarchies = append(hierarchies, cube.NewHierarchy(levels))
	}

	var mandatory cube.Cuboid
	for _, d := range order[idx:] {
		if r.Intn(3) == 0 {
			mandatory |= cube.Cuboid(1) << uint(d)
		}
	}

	g := cube.NewAggregationGroup(full, mandatory, joints, hierarchies, dims)

	var blacklist []cube.Cuboid
	for i := 0; i < r.Intn(3); i++ {
		c := cube.Cuboid(r.Intn(int(full)))
		if c != full {
			blacklist = append(blacklist, c)
		}
	}

	forward := r.Intn(4)
	return New(dims, full, []*cube.AggregationGroup{g}, forward, blacklist, -1)
}
