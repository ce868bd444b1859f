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


// Package cilin measures Chinese word and sentence similarity with the
// Tongyici Cilin synonym taxonomy.
//
// A Thesaurus is loaded once, from a taxonomy text file or from a store
// written by Persist, and is immutable afterwards:
//
//	th, err := cilin.LoadThesaurus("cilin.txt", cilin.WithEncoding(thesaurus.EncodingGBK))
//	score, err := th.Similarity(similarity.Legacy, "人", "人类")
//
// Subpackages hold the pieces: thesaurus (index and loader), hierarchy
// (code geometry), similarity (the three scoring strategies), align
// (sentence alignment) and storage/importer (persistence).
package cilin
