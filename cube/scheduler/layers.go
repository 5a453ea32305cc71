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

import (
	"github.com/sirupsen/logrus"

	"github.com/dolthub/go-cuboid-scheduler/cube"
)

// expandLayers performs the bottom-up, dim-cap-pruned layer expansion:
// starting from every group's lowest on-tree cuboid(s), it repeatedly
// widens to the next layer of parents until no new cuboid appears,
// then adds the base cuboid. maxCombination is the already-resolved
// effective limit (descriptor raw value times the tuning multiplier,
// or unbounded).
//
// The size check happens before the current layer is folded into the
// holder. This is deliberately not rebalanced to check after the
// fold: existing deployments may already be calibrated to the
// current trip point, and tightening it would silently shrink
// previously-working cube configurations.
func expandLayers(desc cube.Descriptor, maxCombination int64, tuning Tuning, log *logrus.Logger) (map[cube.Cuboid]struct{}, error) {
	groups := desc.AggregationGroups()
	base := desc.BaseCuboidID()

	children := lowestCuboids(groups, base)
	holder := make(map[cube.Cuboid]struct{})
	warned := false
	warnAt := float64(maxCombination) * tuning.WarnFraction

	for len(children) > 0 {
		if int64(len(holder)) > maxCombination {
			return nil, cube.ErrCombinatorialExplosion.New(len(holder), maxCombination)
		}
		for _, c := range children {
			holder[c] = struct{}{}
		}

		if !warned && maxCombination != 0 && float64(len(holder)) > warnAt {
			log.WithFields(logrus.Fields{
				"holder_size":   len(holder),
				"limit":         maxCombination,
				"warn_fraction": tuning.WarnFraction,
			}).Warn("cuboid holder has crossed the configured warn fraction of the combinatorial limit")
			warned = true
		}

		nextSet := make(map[cube.Cuboid]struct{})
		for _, c := range children {
			for _, p := range allGroupParents(groups, c, base) {
				nextSet[p] = struct{}{}
			}
		}

		next := make([]cube.Cuboid, 0, len(nextSet))
		for p := range nextSet {
			if p == base || groupAllowsOnTree(groups, p) {
				next = append(next, p)
			}
		}
		cube.SortCuboids(next)

		log.WithFields(logrus.Fields{
			"layer_size":  len(next),
			"holder_size": len(holder),
		}).Debug("expanded cuboid layer")

		children = next
	}

	holder[base] = struct{}{}
	return holder, nil
}
