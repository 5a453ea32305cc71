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

// onTreeParents enumerates every minimal on-tree superset of child
// within group g: one candidate per plain dimension not already in
// child and not claimed by a joint or hierarchy, one per joint not yet
// present, and one per hierarchy promoting to its next uncovered
// level. child == 0 in a group with mandatory columns is special-cased
// to seed from mandatoryColumnMask's closure (see mandatoryFloor)
// rather than widening one bit at a time, since a multi-bit mandatory
// mask can never be reached one axis-step from 0 through IsOnTree
// filtering; without mandatory columns, 0 widens like any other child.
// child equal to the group's own full mask short-circuits to the
// cube's base cuboid, since there is nothing left to add within the
// group.
func onTreeParents(g *cube.AggregationGroup, child, base cube.Cuboid) []cube.Cuboid {
	if child == base {
		// the base cuboid is the root of the spanning tree and has no
		// parent, even when the group's own mask happens to equal it.
		return nil
	}
	if child == g.PartialCubeFullMask {
		return []cube.Cuboid{base}
	}
	if child == 0 {
		if floor := mandatoryFloor(g); floor != 0 {
			if g.IsOnTree(floor) {
				return []cube.Cuboid{floor}
			}
			return nil
		}
	}
	if !g.InGroup(child) {
		return nil
	}

	excluded := g.JointDimsMask
	for _, h := range g.Hierarchies {
		excluded |= h.FullMask
	}

	seen := make(map[cube.Cuboid]struct{})

	for d := 0; d <= cube.MaxDimensions; d++ {
		bit := cube.Cuboid(1) << uint(d)
		if bit&g.PartialCubeFullMask == 0 || bit&excluded != 0 || child&bit != 0 {
			continue
		}
		seen[cube.WithBit(child, d)] = struct{}{}
	}

	for _, j := range g.Joints {
		if child&j == 0 {
			seen[child|j] = struct{}{}
		}
	}

	for _, h := range g.Hierarchies {
		for _, levelMask := range h.AllMasks {
			if child&levelMask != levelMask {
				seen[child|levelMask] = struct{}{}
				break
			}
		}
	}

	out := make([]cube.Cuboid, 0, len(seen))
	for c := range seen {
		if g.IsOnTree(c) {
			out = append(out, c)
		}
	}
	cube.SortCuboids(out)
	return out
}

// mandatoryFloor closes mandatoryColumnMask under g's joint and
// hierarchy constraints: a mandatory bit that only partially overlaps
// a joint forces the rest of that joint in, and a mandatory bit that
// only partially overlaps a hierarchy forces in the smallest
// cumulative prefix that covers it. The result is 0 only when the
// group has no mandatory bits; otherwise it is the mandatory mask plus
// whatever the closure forced in, the smallest cuboid every on-tree
// cuboid of the group must contain (callers still check IsOnTree).
func mandatoryFloor(g *cube.AggregationGroup) cube.Cuboid {
	floor := g.MandatoryColumnMask
	for {
		next := floor
		for _, j := range g.Joints {
			if next&j != 0 && next&j != j {
				next |= j
			}
		}
		for _, h := range g.Hierarchies {
			have := next & h.FullMask
			if have == 0 {
				continue
			}
			covered := false
			for _, prefix := range h.AllMasks {
				if have == prefix {
					covered = true
					break
				}
			}
			if covered {
				continue
			}
			for _, prefix := range h.AllMasks {
				if have&^prefix == 0 {
					next |= prefix
					break
				}
			}
		}
		if next == floor {
			return floor
		}
		floor = next
	}
}

// lowestCuboids returns the union, over every group, of that group's
// onTreeParents(0, ...) — the layer-0 seeds of the bottom-up build.
func lowestCuboids(groups []*cube.AggregationGroup, base cube.Cuboid) []cube.Cuboid {
	return allGroupParents(groups, 0, base)
}

// allGroupParents unions onTreeParents(child) across every group,
// deduplicated and sorted by the canonical comparator.
func allGroupParents(groups []*cube.AggregationGroup, child, base cube.Cuboid) []cube.Cuboid {
	seen := make(map[cube.Cuboid]struct{})
	for _, g := range groups {
		for _, p := range onTreeParents(g, child, base) {
			seen[p] = struct{}{}
		}
	}
	out := make([]cube.Cuboid, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	cube.SortCuboids(out)
	return out
}

// groupAllowsOnTree reports whether some group considers p on-tree
// and within its dimension cap.
func groupAllowsOnTree(groups []*cube.AggregationGroup, p cube.Cuboid) bool {
	for _, g := range groups {
		if g.IsOnTree(p) && g.CheckDimCap(p) {
			return true
		}
	}
	return false
}

// onTreeParent returns the single canonical on-tree parent of child
// across every group — the minimum of allGroupParents under
// cube.CompareCuboids — or false if child has no on-tree parent in
// any group.
func onTreeParent(groups []*cube.AggregationGroup, child, base cube.Cuboid) (cube.Cuboid, bool) {
	return cube.MinCuboid(allGroupParents(groups, child, base))
}
