// Copyright 2025 Poiesic Systems
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


// Package hierarchy implements the geometry of the taxonomy coding scheme.
//
// Codes have the fixed layout [L1][L2][D1D2][L3][D3D4][T]. Two codes are
// closer the longer the prefix they share, so every similarity formula is
// built on a handful of primitives:
//   - CommonPrefix: shared prefix, rounded down to a level boundary
//   - LayerOf: maps a prefix length to a hierarchy layer (0..5)
//   - BranchDistance: separation at the first differing level
//   - SiblingCount: branching factor below a prefix
//   - CodesBetween: codes spanning the range between two branches
//
// The first three are pure functions. The last two scan the index and live on
// Hierarchy, which may memoize their results.
package hierarchy
