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

// Package cube holds the cuboid lattice data model: the bitmask
// primitives, the aggregation group constraint bundle, the descriptor
// interface consumed from the cube engine that owns the cube
// definition, and the canonical ordering used everywhere a unique
// cuboid choice is required. It has no knowledge of how a spanning
// tree gets built or queried — see cube/scheduler for that.
package cube
