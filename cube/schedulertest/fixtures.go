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

import "github.com/dolthub/go-cuboid-scheduler/cube"

// ScenarioA is a single group, D=4, no
// constraints, dim cap 4.
func ScenarioA() *Descriptor {
	full := FullMask(4)
	g := cube.NewAggregationGroup(full, 0, nil, nil, 4)
	return New(4, full, []*cube.AggregationGroup{g}, 3, nil, -1)
}

// ScenarioB is Scenario B: D=4, mandatory = 0b0001.
func ScenarioB() *Descriptor {
	full := FullMask(4)
	g := cube.NewAggregationGroup(full, 0b0001, nil, nil, 4)
	return New(4, full, []*cube.AggregationGroup{g}, 3, nil, -1)
}

// ScenarioC is Scenario C: D=4, one joint J = 0b0110.
func ScenarioC() *Descriptor {
	full := FullMask(4)
	g := cube.NewAggregationGroup(full, 0, []cube.Cuboid{0b0110}, nil, 4)
	return New(4, full, []*cube.AggregationGroup{g}, 3, nil, -1)
}

// ScenarioD is Scenario D: D=3, hierarchy (d0 -> d1 -> d2).
func ScenarioD() *Descriptor {
	full := FullMask(3)
	h := cube.NewHierarchy([]cube.Cuboid{0b001, 0b010, 0b100})
	g := cube.NewAggregationGroup(full, 0, nil, []cube.Hierarchy{h}, 3)
	return New(3, full, []*cube.AggregationGroup{g}, 3, nil, -1)
}

// ScenarioE is Scenario E: D=3, no special constraints, blacklist =
// {0b011}, forward = 1.
func ScenarioE() *Descriptor {
	full := FullMask(3)
	g := cube.NewAggregationGroup(full, 0, nil, nil, 3)
	return New(3, full, []*cube.AggregationGroup{g}, 1, []cube.Cuboid{0b011}, -1)
}

// ScenarioF is Scenario F: D=20, permissive groups, a
// cubeAggrGroupMaxCombination set low enough (10, so the effective
// limit is 100) that the build must trip CombinatorialExplosion
// before completing.
func ScenarioF() *Descriptor {
	full := FullMask(20)
	g := cube.NewAggregationGroup(full, 0, nil, nil, 20)
	return New(20, full, []*cube.AggregationGroup{g}, 3, nil, 10)
}
