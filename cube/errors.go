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

package cube

import "gopkg.in/src-d/go-errors.v1"

// Error kinds raised by the cube packages. OutOfRange is the only one
// a caller can reasonably recover from by supplying a different
// argument; the rest signal a build or descriptor defect and are not
// meant to be retried against the same descriptor.
var (
	// ErrOutOfRange is raised when a cuboid argument falls outside
	// [0, 2^D-1] for the scheduler's dimension count.
	ErrOutOfRange = errors.NewKind("cuboid %d is out of range [0, %d]")

	// ErrCombinatorialExplosion is raised when the pre-pad holder
	// exceeds the effective combination limit during layer expansion.
	ErrCombinatorialExplosion = errors.NewKind("cuboid holder exceeded combinatorial limit: observed %d, limit %d")

	// ErrNoValidParent is raised when the best-match ancestor walk
	// exhausts without reaching a materialized cuboid.
	ErrNoValidParent = errors.NewKind("no materialized ancestor found for cuboid %d")

	// ErrLayerCountMismatch is raised when byLayer's total element
	// count does not match the materialized cuboid count.
	ErrLayerCountMismatch = errors.NewKind("layer traversal total %d does not match materialized count %d")

	// ErrAssertOnTree is raised when a post-translation cuboid fails
	// its own group's on-tree predicate, which indicates a descriptor
	// bug (an aggregation group whose joints/hierarchies/mandatory
	// mask cannot be jointly satisfied).
	ErrAssertOnTree = errors.NewKind("cuboid %d is not on-tree for its aggregation group after translation")
)
