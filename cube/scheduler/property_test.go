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

package scheduler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-cuboid-scheduler/cube"
	"github.com/dolthub/go-cuboid-scheduler/cube/scheduler"
	"github.com/dolthub/go-cuboid-scheduler/cube/schedulertest"
)

// seeds used to drive the deterministic random-descriptor generator;
// fixed so the property tests are reproducible across runs.
var seeds = []int64{1, 2, 3, 5, 8, 13, 21, 34, 55, 89, 144, 233}

func buildAll(t *testing.T) []*scheduler.Scheduler {
	t.Helper()
	var out []*scheduler.Scheduler
	for _, seed := range seeds {
		desc := schedulertest.RandomDescriptor(seed)
		s, err := scheduler.Build(context.Background(), desc)
		require.NoError(t, err, "seed %d", seed)
		out = append(out, s)
	}
	return out
}

// TestInvariantEdgesRespectCardinalityAndSubset checks that every
// edge p->c has c a subset of p, with strictly higher parent
// cardinality.
func TestInvariantEdgesRespectCardinalityAndSubset(t *testing.T) {
	for _, s := range buildAll(t) {
		for _, p := range s.AllCuboidIDs() {
			children, err := s.Spanning(p)
			require.NoError(t, err)
			for _, c := range children {
				require.True(t, cube.IsSubsetOf(c, p), "child %v not subset of parent %v", c, p)
				require.Greater(t, cube.Cardinality(p), cube.Cardinality(c))
			}
		}
	}
}

// TestInvariantEveryNonBaseCuboidHasExactlyOneParent checks invariant
// 2 and 3: every non-base member is a child of exactly one parent, and
// the base is never anyone's child.
func TestInvariantEveryNonBaseCuboidHasExactlyOneParent(t *testing.T) {
	for _, s := range buildAll(t) {
		all := s.AllCuboidIDs()
		parentCount := make(map[cube.Cuboid]int)
		for _, p := range all {
			children, err := s.Spanning(p)
			require.NoError(t, err)
			for _, c := range children {
				parentCount[c]++
			}
		}
		base := s.Base()
		for _, c := range all {
			if c == base {
				require.Equal(t, 0, parentCount[c], "base cuboid must not be anyone's child")
				continue
			}
			require.Equal(t, 1, parentCount[c], "cuboid %v should have exactly one parent", c)
		}
	}
}

// TestInvariantOnTreeAndNotBlacklisted checks invariants 4 and 5.
func TestInvariantOnTreeAndNotBlacklisted(t *testing.T) {
	for _, seed := range seeds {
		desc := schedulertest.RandomDescriptor(seed)
		s, err := scheduler.Build(context.Background(), desc)
		require.NoError(t, err, "seed %d", seed)

		base := desc.BaseCuboidID()
		for _, c := range s.AllCuboidIDs() {
			require.False(t, desc.IsBlacklisted(c), "blacklisted cuboid %v present", c)
			if c == base {
				continue
			}
			onTree := false
			for _, g := range desc.AggregationGroups() {
				if g.IsOnTree(c) && g.CheckDimCap(c) {
					onTree = true
					break
				}
			}
			require.True(t, onTree, "cuboid %v has no satisfying group", c)
		}
	}
}

// TestInvariantLayersSumToCount checks invariant 6.
func TestInvariantLayersSumToCount(t *testing.T) {
	for _, s := range buildAll(t) {
		layers, err := s.ByLayer()
		require.NoError(t, err)

		total := 0
		for _, layer := range layers {
			total += len(layer)
		}
		require.Equal(t, s.Count(), total)

		for i := 1; i < len(layers); i++ {
			for _, c := range layers[i] {
				found := false
				for _, p := range layers[i-1] {
					children, err := s.Spanning(p)
					require.NoError(t, err)
					if contains(children, c) {
						found = true
						break
					}
				}
				require.True(t, found, "cuboid %v in layer %d has no parent in layer %d", c, i, i-1)
			}
		}
	}
}

// TestInvariantBestMatchIsOnTreeAndIdempotent checks invariants 7 and 8
// by sweeping every possible projection for each (small) descriptor.
func TestInvariantBestMatchIsOnTreeAndIdempotent(t *testing.T) {
	for _, seed := range seeds {
		desc := schedulertest.RandomDescriptor(seed)
		s, err := scheduler.Build(context.Background(), desc)
		require.NoError(t, err, "seed %d", seed)

		limit := cube.Cuboid(1)<<uint(desc.DimensionCount()) - 1
		all := s.AllCuboidIDs()

		for q := cube.Cuboid(0); q <= limit; q++ {
			match, err := s.BestMatch(context.Background(), q)
			require.NoError(t, err, "seed %d query %v", seed, q)
			require.True(t, contains(all, match), "bestMatch(%v) = %v not materialized", q, match)
			require.True(t, cube.IsSubsetOf(q, match), "query %v not subset of match %v", q, match)

			again, err := s.BestMatch(context.Background(), match)
			require.NoError(t, err)
			require.Equal(t, match, again, "bestMatch not idempotent for query %v", q)
		}
	}
}

// TestInvariantDeterminism checks invariant 9: rebuilding from the
// same descriptor twice yields an identical set and identical
// children-lists.
func TestInvariantDeterminism(t *testing.T) {
	for _, seed := range seeds {
		desc := schedulertest.RandomDescriptor(seed)
		s1, err := scheduler.Build(context.Background(), desc)
		require.NoError(t, err)
		s2, err := scheduler.Build(context.Background(), desc)
		require.NoError(t, err)

		require.Equal(t, s1.AllCuboidIDs(), s2.AllCuboidIDs())
		require.Equal(t, s1.Signature(), s2.Signature())

		for _, c := range s1.AllCuboidIDs() {
			c1, err := s1.Spanning(c)
			require.NoError(t, err)
			c2, err := s2.Spanning(c)
			require.NoError(t, err)
			require.Equal(t, c1, c2)
		}
	}
}
