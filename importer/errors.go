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


package importer

import "errors"

var (
	// ErrRepositoryRequired is returned when a repository is not provided.
	ErrRepositoryRequired = errors.New("thesaurus repository required")

	// ErrIndexRequired is returned when Import is called without an index.
	ErrIndexRequired = errors.New("thesaurus index required")

	// ErrInvalidMaxAttempts is returned when the retry attempt count is not positive.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("batch size must be positive")

	// ErrEmptyStore is returned when loading from a store with no completed import.
	ErrEmptyStore = errors.New("store holds no imported taxonomy")

	// ErrFingerprintMismatch is returned when stored entries do not hash to
	// the recorded fingerprint.
	ErrFingerprintMismatch = errors.New("stored taxonomy fingerprint mismatch")
)
