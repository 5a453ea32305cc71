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

package scheduler

import "github.com/dolthub/go-cuboid-scheduler/cube"

// assembleTree blacklist-filters the pre-pad holder, then pads the
// survivors with ancestors (up to forward hops
// beyond the direct parent, and further only to climb past a
// blacklisted ancestor) until the set is closed under "every
// non-base member has a recorded parent". Padding always terminates
// because every added parent strictly outranks its child in
// cardinality, which is bounded by the cube's dimension count.
func assembleTree(preHolder map[cube.Cuboid]struct{}, desc cube.Descriptor) (map[cube.Cuboid]struct{}, map[cube.Cuboid][]cube.Cuboid, error) {
	groups := desc.AggregationGroups()
	base := desc.BaseCuboidID()
	forward := desc.ParentForward()

	preSorted := make([]cube.Cuboid, 0, len(preHolder))
	for c := range preHolder {
		preSorted = append(preSorted, c)
	}
	cube.SortCuboids(preSorted)

	holder := make(map[cube.Cuboid]struct{})
	queue := make([]cube.Cuboid, 0, len(preSorted))
	for _, c := range preSorted {
		if desc.IsBlacklisted(c) {
			continue
		}
		holder[c] = struct{}{}
		queue = append(queue, c)
	}

	parent2child := make(map[cube.Cuboid][]cube.Cuboid)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == base {
			continue
		}

		p, ok := parentOnPromise(groups, current, holder, forward, base, desc.IsBlacklisted)
		if !ok {
			continue
		}
		if _, exists := holder[p]; !exists {
			holder[p] = struct{}{}
			queue = append(queue, p)
		}
		parent2child[p] = append(parent2child[p], current)
	}

	return holder, parent2child, nil
}

// parentOnPromise walks up the canonical parent chain from c,
// accepting an ancestor up to forward hops above the direct parent as
// long as the direct parent (and any intermediate ancestor) is not
// already in holder. If no holder member turns up within forward+1
// hops, the first ancestor from there on that is not blacklisted is
// returned anyway — it gets added to holder by the caller, growing the
// set until closure. A blacklisted ancestor is never returned; the
// walk climbs past it.
func parentOnPromise(groups []*cube.AggregationGroup, c cube.Cuboid, holder map[cube.Cuboid]struct{}, forward int, base cube.Cuboid, isBlacklisted func(cube.Cuboid) bool) (cube.Cuboid, bool) {
	current := c
	for k := forward; ; k-- {
		p, ok := onTreeParent(groups, current, base)
		if !ok {
			return 0, false
		}
		if _, in := holder[p]; in || (k <= 0 && !isBlacklisted(p)) {
			return p, true
		}
		current = p
	}
}
