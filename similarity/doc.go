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


// Package similarity scores word pairs against the taxonomy.
//
// Three independently calibrated strategies share the hierarchy primitives:
//
//   - Legacy: layer coefficient scaled by branching factor and branch distance.
//   - Density2013: blend of a path-length term and a word-density term.
//   - Distance2016: level-weighted distance with an exponential branch decay.
//
// A word may carry several codes. Every strategy resolves a word pair by
// taking the best score over the cross product of the two words' codes; no
// sense disambiguation is attempted. Words absent from the vocabulary score 0.
//
// The Engine holds no per-call state. One Engine may serve concurrent callers.
package similarity
