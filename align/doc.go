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


// Package align scores two word sequences against each other.
//
// Align takes, for each word of one sequence, its best similarity against
// any word of the other sequence, averages those maxima, and repeats in the
// opposite direction. The larger of the two averages is the result.
//
// TextAligner adds a tokenizer in front of Align and drops function words,
// symbols and punctuation by part-of-speech category. BatchAligner runs many
// text pairs on a worker pool.
package align
