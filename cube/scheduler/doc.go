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

// Package scheduler builds and serves the cuboid spanning tree for a
// cube.Descriptor: layer-wise expansion under dimension-cap pruning,
// blacklist filtering and ancestor padding, and the query-time
// best-match resolver that snaps an arbitrary projection onto a
// materialized cuboid. A *Scheduler is built once from an immutable
// descriptor and is safe for concurrent read-only use afterward.
package scheduler
