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

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-cuboid-scheduler/cube"
	"github.com/dolthub/go-cuboid-scheduler/cube/scheduler"
	"github.com/dolthub/go-cuboid-scheduler/cube/schedulertest"
)

func contains(set []cube.Cuboid, c cube.Cuboid) bool {
	for _, s := range set {
		if s == c {
			return true
		}
	}
	return false
}

// TestScenarioA covers the single-unconstrained-group case.
func TestScenarioA(t *testing.T) {
	s, err := scheduler.Build(context.Background(), schedulertest.ScenarioA())
	require.NoError(t, err)

	require.Equal(t, 15, s.Count())
	require.NotContains(t, s.AllCuboidIDs(), cube.Cuboid(0))

	match, err := s.BestMatch(context.Background(), 0b0101)
	require.NoError(t, err)
	require.Equal(t, cube.Cuboid(0b0101), match)

	children, err := s.Spanning(0b1111)
	require.NoError(t, err)
	require.Len(t, children, 4)
	for _, c := range children {
		require.Equal(t, 3, cube.Cardinality(c))
	}
}

// TestScenarioB covers a mandatory dimension.
func TestScenarioB(t *testing.T) {
	s, err := scheduler.Build(context.Background(), schedulertest.ScenarioB())
	require.NoError(t, err)

	for _, c := range s.AllCuboidIDs() {
		require.True(t, c&0b0001 != 0, "cuboid %04b missing mandatory bit", c)
	}
	require.Contains(t, s.AllCuboidIDs(), cube.Cuboid(0b0001))

	match, err := s.BestMatch(context.Background(), 0b0100)
	require.NoError(t, err)
	require.True(t, match&0b0101 == 0b0101, "expected mandatory bit forced, got %04b", match)
}

// TestMultiBitMandatoryMaskIsSeeded covers a mandatory mask with two
// plain-dimension bits set. A naive child==0 seeding that only adds
// one bit at a time would never reach it through IsOnTree, leaving
// the group's entire lattice unreachable beyond the base cuboid.
func TestMultiBitMandatoryMaskIsSeeded(t *testing.T) {
	full := cube.Cuboid(0b1111)
	g := cube.NewAggregationGroup(full, 0b0011, nil, nil, 4)
	desc := schedulertest.New(4, full, []*cube.AggregationGroup{g}, 3, nil, -1)

	s, err := scheduler.Build(context.Background(), desc)
	require.NoError(t, err)

	require.Contains(t, s.AllCuboidIDs(), cube.Cuboid(0b0011))
	for _, c := range s.AllCuboidIDs() {
		require.True(t, c&0b0011 == 0b0011, "cuboid %04b missing mandatory bits", c)
	}
	require.Equal(t, 4, s.Count(), "expected 0b0011, 0b0111, 0b1011, 0b1111")
}

// TestScenarioC covers a joint.
func TestScenarioC(t *testing.T) {
	s, err := scheduler.Build(context.Background(), schedulertest.ScenarioC())
	require.NoError(t, err)

	require.NotContains(t, s.AllCuboidIDs(), cube.Cuboid(0b0010))

	match, err := s.BestMatch(context.Background(), 0b0010)
	require.NoError(t, err)
	require.True(t, match&0b0110 == 0b0110, "expected joint promoted, got %04b", match)
}

// TestScenarioD covers a hierarchy.
func TestScenarioD(t *testing.T) {
	s, err := scheduler.Build(context.Background(), schedulertest.ScenarioD())
	require.NoError(t, err)

	m1, err := s.BestMatch(context.Background(), 0b100)
	require.NoError(t, err)
	require.Equal(t, cube.Cuboid(0b111), m1)

	m2, err := s.BestMatch(context.Background(), 0b010)
	require.NoError(t, err)
	require.Equal(t, cube.Cuboid(0b011), m2)
}

// TestScenarioE covers a blacklist combined with forward=1.
func TestScenarioE(t *testing.T) {
	s, err := scheduler.Build(context.Background(), schedulertest.ScenarioE())
	require.NoError(t, err)

	require.NotContains(t, s.AllCuboidIDs(), cube.Cuboid(0b011))
	require.Contains(t, s.AllCuboidIDs(), cube.Cuboid(0b001))
	require.Contains(t, s.AllCuboidIDs(), cube.Cuboid(0b010))

	children, err := s.Spanning(0b111)
	require.NoError(t, err)
	for _, want := range []cube.Cuboid{0b001, 0b010, 0b101, 0b110} {
		require.True(t, contains(children, want), "expected %03b among base's children, got %v", want, children)
	}
}

// TestScenarioF covers the explosion guard.
func TestScenarioF(t *testing.T) {
	_, err := scheduler.Build(context.Background(), schedulertest.ScenarioF())
	require.Error(t, err)
	require.True(t, cube.ErrCombinatorialExplosion.Is(err), "expected explosion error, got %v", err)
}

// TestBuildLogsWarningAtConfiguredFraction checks that WithTuning's
// WarnFraction actually gates the half-limit warning, not just the
// loader that parses it. D=4 unconstrained folds in holder sizes
// 4, 10, 14, 15 before settling; with effective limit 20 and
// warnFraction 0.3 (warnAt = 6), the warning must fire the moment the
// holder first exceeds 6, at holder size 10.
func TestBuildLogsWarningAtConfiguredFraction(t *testing.T) {
	logger, hook := test.NewNullLogger()

	full := cube.Cuboid(0b1111)
	g := cube.NewAggregationGroup(full, 0, nil, nil, 4)
	desc := schedulertest.New(4, full, []*cube.AggregationGroup{g}, 3, nil, 2)

	_, err := scheduler.Build(
		context.Background(),
		desc,
		scheduler.WithLogger(logger),
		scheduler.WithTuning(scheduler.Tuning{ExplosionMultiplier: 10, WarnFraction: 0.3}),
	)
	require.NoError(t, err)

	var warnEntry *logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnEntry = e
			break
		}
	}
	require.NotNil(t, warnEntry, "expected a warning once the holder crossed the configured fraction")
	require.Equal(t, 10, warnEntry.Data["holder_size"])
	require.Equal(t, int64(20), warnEntry.Data["limit"])
	require.Equal(t, 0.3, warnEntry.Data["warn_fraction"])
}

func TestOutOfRange(t *testing.T) {
	s, err := scheduler.Build(context.Background(), schedulertest.ScenarioA())
	require.NoError(t, err)

	_, err = s.Spanning(0b11111)
	require.Error(t, err)
	require.True(t, cube.ErrOutOfRange.Is(err))

	_, err = s.Cardinality(1 << 10)
	require.Error(t, err)
	require.True(t, cube.ErrOutOfRange.Is(err))
}

func TestByLayer(t *testing.T) {
	s, err := scheduler.Build(context.Background(), schedulertest.ScenarioA())
	require.NoError(t, err)

	layers, err := s.ByLayer()
	require.NoError(t, err)
	require.Equal(t, []cube.Cuboid{0b1111}, layers[0])

	total := 0
	for _, layer := range layers {
		total += len(layer)
	}
	require.Equal(t, s.Count(), total)

	// memoized: a second call returns the identical slice of slices.
	again, err := s.ByLayer()
	require.NoError(t, err)
	require.Equal(t, layers, again)
}

func TestSignatureStableAcrossEquivalentDescriptors(t *testing.T) {
	s1, err := scheduler.Build(context.Background(), schedulertest.ScenarioB())
	require.NoError(t, err)
	s2, err := scheduler.Build(context.Background(), schedulertest.ScenarioB())
	require.NoError(t, err)

	require.Equal(t, s1.Signature(), s2.Signature())

	s3, err := scheduler.Build(context.Background(), schedulertest.ScenarioC())
	require.NoError(t, err)
	require.NotEqual(t, s1.Signature(), s3.Signature())
}
