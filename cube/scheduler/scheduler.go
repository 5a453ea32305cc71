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
	"context"
	"fmt"
	"sync"

	"github.com/mitchellh/hashstructure"
	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"

	"github.com/dolthub/go-cuboid-scheduler/cube"
)

// Scheduler holds the materialized cuboid set and spanning tree for a
// single cube.Descriptor. It is built once, eagerly, and is read-only
// and safe for concurrent use for the rest of its lifetime; the only
// state that mutates after construction is the lazily memoized
// ByLayer cache, guarded by a sync.Once so repeated or concurrent
// calls are safe.
type Scheduler struct {
	desc     cube.Descriptor
	groups   []*cube.AggregationGroup
	base     cube.Cuboid
	dimCount int

	all       map[cube.Cuboid]struct{}
	allSorted []cube.Cuboid
	parent2child map[cube.Cuboid][]cube.Cuboid

	tuning Tuning
	logger *logrus.Logger
	tracer opentracing.Tracer

	layerOnce  sync.Once
	layerCache [][]cube.Cuboid
	layerErr   error

	signature uint64
}

// Option configures a Scheduler at construction time. None of these
// touch the descriptor itself — only the scheduler's own ambient
// behavior (logging, tracing, tuning).
type Option func(*options)

type options struct {
	logger *logrus.Logger
	tracer opentracing.Tracer
	tuning *Tuning
}

// WithLogger overrides the default logrus.StandardLogger().
func WithLogger(l *logrus.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTracer overrides the default opentracing.NoopTracer.
func WithTracer(t opentracing.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithTuning overrides DefaultTuning.
func WithTuning(t Tuning) Option {
	return func(o *options) { o.tuning = &t }
}

// Build constructs a Scheduler from desc: it expands layers under
// dim-cap pruning (C4), blacklist-filters and pads for connectivity
// (C5), and snapshots the result as a read-only set and parent->child
// map. Construction is single-threaded and synchronous; there is no
// cancellation path because the work is bounded by the descriptor's
// dimension count and combinatorial guard, not by I/O.
func Build(ctx context.Context, desc cube.Descriptor, opts ...Option) (*Scheduler, error) {
	o := &options{
		logger: logrus.StandardLogger(),
		tracer: opentracing.NoopTracer{},
	}
	for _, opt := range opts {
		opt(o)
	}
	tuning := DefaultTuning()
	if o.tuning != nil {
		tuning = *o.tuning
	}

	dimCount := desc.DimensionCount()
	if dimCount < 1 || dimCount > cube.MaxDimensions {
		return nil, fmt.Errorf("cube dimension count %d out of supported range [1, %d]", dimCount, cube.MaxDimensions)
	}

	span := o.tracer.StartSpan("cuboid.scheduler.build")
	defer span.Finish()

	groups := desc.AggregationGroups()
	base := desc.BaseCuboidID()
	span.SetTag("dims", dimCount)
	span.SetTag("groups", len(groups))

	o.logger.WithFields(logrus.Fields{
		"dims":   dimCount,
		"groups": len(groups),
	}).Info("building cuboid spanning tree")

	effectiveMax := cube.EffectiveMaxCombination(desc.MaxCombinationRaw(), tuning.ExplosionMultiplier)

	preHolder, err := expandLayers(desc, effectiveMax, tuning, o.logger)
	if err != nil {
		span.SetTag("error", true)
		o.logger.WithError(err).Error("cuboid layer expansion failed")
		return nil, err
	}

	holder, parent2child, err := assembleTree(preHolder, desc)
	if err != nil {
		span.SetTag("error", true)
		return nil, err
	}

	allSorted := make([]cube.Cuboid, 0, len(holder))
	for c := range holder {
		allSorted = append(allSorted, c)
	}
	cube.SortCuboids(allSorted)

	s := &Scheduler{
		desc:         desc,
		groups:       groups,
		base:         base,
		dimCount:     dimCount,
		all:          holder,
		allSorted:    allSorted,
		parent2child: parent2child,
		tuning:       tuning,
		logger:       o.logger,
		tracer:       o.tracer,
	}

	sig, sigErr := s.computeSignature()
	if sigErr == nil {
		s.signature = sig
	} else {
		o.logger.WithError(sigErr).Warn("failed to compute scheduler signature")
	}

	span.SetTag("cuboids", len(allSorted))
	o.logger.WithFields(logrus.Fields{
		"cuboids": len(allSorted),
	}).Info("finished building cuboid spanning tree")

	return s, nil
}

// computeSignature hashes a normalized view of the descriptor so
// Signature is stable across rebuilds of an equivalent descriptor,
// not just equal pointers.
func (s *Scheduler) computeSignature() (uint64, error) {
	type groupSig struct {
		Full, Mandatory cube.Cuboid
		Joints          []cube.Cuboid
		Hierarchies     [][]cube.Cuboid
		DimCap          int
	}
	sortedGroups := make([]groupSig, 0, len(s.groups))
	for _, g := range s.groups {
		joints := append([]cube.Cuboid{}, g.Joints...)
		cube.SortCuboids(joints)
		var hierarchies [][]cube.Cuboid
		for _, h := range g.Hierarchies {
			hierarchies = append(hierarchies, h.Levels)
		}
		sortedGroups = append(sortedGroups, groupSig{
			Full:        g.PartialCubeFullMask,
			Mandatory:   g.MandatoryColumnMask,
			Joints:      joints,
			Hierarchies: hierarchies,
			DimCap:      g.DimCap,
		})
	}
	payload := struct {
		Dims    int
		Base    cube.Cuboid
		Groups  []groupSig
		Forward int
	}{
		Dims:    s.dimCount,
		Base:    s.base,
		Groups:  sortedGroups,
		Forward: s.desc.ParentForward(),
	}
	return hashstructure.Hash(payload, nil)
}

// Signature returns a structural hash of the descriptor this
// scheduler was built from. Two schedulers built from descriptors
// with identical dimensions, groups and parentForward always return
// the same signature, which is a cheap way to check that a rebuild
// produced an equivalent tree without diffing the whole cuboid set.
func (s *Scheduler) Signature() uint64 {
	return s.signature
}

func (s *Scheduler) checkRange(c cube.Cuboid) error {
	limit := (cube.Cuboid(1) << uint(s.dimCount)) - 1
	if c > limit {
		return cube.ErrOutOfRange.New(c, limit)
	}
	return nil
}

// Count returns the number of materialized cuboids.
func (s *Scheduler) Count() int {
	return len(s.all)
}

// AllCuboidIDs returns every materialized cuboid, sorted by
// cube.CompareCuboids. The returned slice is a copy; callers may not
// mutate the Scheduler's internal state through it.
func (s *Scheduler) AllCuboidIDs() []cube.Cuboid {
	out := make([]cube.Cuboid, len(s.allSorted))
	copy(out, s.allSorted)
	return out
}

// Base returns the cube's base cuboid, the root of the spanning tree.
func (s *Scheduler) Base() cube.Cuboid {
	return s.base
}

// Spanning returns c's children in the spanning tree, or nil if c has
// none (which is the common case for leaves).
func (s *Scheduler) Spanning(c cube.Cuboid) ([]cube.Cuboid, error) {
	if err := s.checkRange(c); err != nil {
		return nil, err
	}
	children := s.parent2child[c]
	if children == nil {
		return nil, nil
	}
	out := make([]cube.Cuboid, len(children))
	copy(out, children)
	return out, nil
}

// Cardinality returns the population count of c.
func (s *Scheduler) Cardinality(c cube.Cuboid) (int, error) {
	if err := s.checkRange(c); err != nil {
		return 0, err
	}
	return cube.Cardinality(c), nil
}

// ByLayer returns the materialized cuboids grouped into breadth-first
// layers from the base cuboid (layer 0) downward; it is computed on
// first call and memoized, and is safe to call concurrently.
func (s *Scheduler) ByLayer() ([][]cube.Cuboid, error) {
	s.layerOnce.Do(func() {
		s.layerCache, s.layerErr = s.computeLayers()
	})
	return s.layerCache, s.layerErr
}

func (s *Scheduler) computeLayers() ([][]cube.Cuboid, error) {
	layers := [][]cube.Cuboid{{s.base}}
	total := 1
	current := layers[0]

	for {
		nextSet := make(map[cube.Cuboid]struct{})
		for _, c := range current {
			for _, child := range s.parent2child[c] {
				nextSet[child] = struct{}{}
			}
		}
		if len(nextSet) == 0 {
			break
		}
		next := make([]cube.Cuboid, 0, len(nextSet))
		for c := range nextSet {
			next = append(next, c)
		}
		cube.SortCuboids(next)

		layers = append(layers, next)
		total += len(next)
		current = next
	}

	if total != len(s.all) {
		return nil, cube.ErrLayerCountMismatch.New(total, len(s.all))
	}
	return layers, nil
}

// BestMatch resolves an arbitrary projection q to a materialized
// cuboid that can derive it: translate against every group, pick the
// tightest candidate, then walk up to a materialized ancestor.
func (s *Scheduler) BestMatch(ctx context.Context, q cube.Cuboid) (cube.Cuboid, error) {
	if err := s.checkRange(q); err != nil {
		return 0, err
	}

	span := s.tracer.StartSpan("cuboid.scheduler.best_match")
	defer span.Finish()
	span.SetTag("query", uint64(q))

	match, err := resolveBestMatch(s.groups, s.all, q, s.base)
	if err != nil {
		span.SetTag("error", true)
		return 0, err
	}
	span.SetTag("match", uint64(match))
	return match, nil
}
