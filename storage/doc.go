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


// Package storage provides the persistence abstraction for taxonomy snapshots.
//
// A snapshot is the full set of taxonomy entries plus the fingerprint of the
// source they were imported from. The in-process index is always rebuilt from
// a snapshot; storage never answers similarity queries itself.
//
// # Constructor Return Type Pattern
//
// Public constructors in implementation packages return the repository
// interface:
//
//	repo, err := badger.NewThesaurusRepository(backend)  // storage.ThesaurusRepository
//
// Unexported helpers inside an implementation package may return concrete
// types.
//
// # Layout
//
//   - interfaces.go: repository contracts
//   - serialization.go: value encoding for entries and fingerprints
//   - errors.go: sentinel errors shared by all backends
package storage
