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

// translateToOnTree promotes an arbitrary projection q onto the
// smallest cuboid that respects group g's
// mandatory, joint and hierarchy constraints. Returns false if q asks
// for a dimension outside g's mask entirely.
func translateToOnTree(g *cube.AggregationGroup, q cube.Cuboid) (cube.Cuboid, bool, error) {
	if q&^g.PartialCubeFullMask != 0 {
		return 0, false, nil
	}

	r := q | g.MandatoryColumnMask

	for _, h := range g.Hierarchies {
		intersect := r & h.FullMask
		if intersect == 0 || intersect == h.FullMask {
			continue
		}
		topIdx := -1
		for i := len(h.Levels) - 1; i >= 0; i-- {
			if r&h.Levels[i] != 0 {
				topIdx = i
				break
			}
		}
		if topIdx >= 0 {
			r |= h.AllMasks[topIdx]
		}
	}

	for _, j := range g.Joints {
		if r&j != 0 && r&j != j {
			r |= j
		}
	}

	if g.IsOnTree(r) {
		return r, true, nil
	}

	// r carries only mandatory bits plus whatever the hierarchy/joint
	// promotion above contributed, and is still not on-tree: nudge it
	// by one more step, preferring a single plain dimension, then an
	// unclaimed hierarchy starter, then the smallest joint (the last
	// two add their whole mask).
	nonJointDims := (g.PartialCubeFullMask ^ g.MandatoryColumnMask) &^ g.JointDimsMask
	var hierarchyUnion cube.Cuboid
	for _, h := range g.Hierarchies {
		hierarchyUnion |= h.FullMask
	}
	nonJointNonHierarchy := nonJointDims &^ hierarchyUnion

	switch {
	case nonJointNonHierarchy != 0:
		r |= cube.LowestSetBit(nonJointNonHierarchy)
	default:
		promoted := false
		for _, h := range g.Hierarchies {
			if len(h.AllMasks) == 0 {
				continue
			}
			starter := h.AllMasks[0]
			if starter&g.JointDimsMask == 0 {
				r |= starter
				promoted = true
				break
			}
		}
		if !promoted {
			var joints []cube.Cuboid
			joints = append(joints, g.Joints...)
			smallest, ok := cube.MinCuboid(joints)
			if !ok {
				return 0, false, cube.ErrAssertOnTree.New(r)
			}
			r |= smallest
		}
	}

	if !g.IsOnTree(r) {
		return 0, false, cube.ErrAssertOnTree.New(r)
	}
	return r, true, nil
}

// resolveBestMatch translates q against every group, picks the
// tightest candidate, then walks up the
// canonical parent chain until a materialized cuboid is reached.
func resolveBestMatch(groups []*cube.AggregationGroup, holder map[cube.Cuboid]struct{}, q, base cube.Cuboid) (cube.Cuboid, error) {
	var candidates []cube.Cuboid
	for _, g := range groups {
		r, ok, err := translateToOnTree(g, q)
		if err != nil {
			return 0, err
		}
		if ok {
			candidates = append(candidates, r)
		}
	}

	candidate, ok := cube.MinCuboid(candidates)
	if !ok {
		candidate = base
	}

	for {
		if _, in := holder[candidate]; in {
			return candidate, nil
		}
		next, ok := onTreeParent(groups, candidate, base)
		if !ok {
			return 0, cube.ErrNoValidParent.New(candidate)
		}
		candidate = next
	}
}
