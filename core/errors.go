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


package core

import "errors"

// Taxonomy and engine errors
var (
	// ErrMalformedEntry indicates a taxonomy line violates the entry format.
	ErrMalformedEntry = errors.New("malformed entry")

	// ErrInvalidCode indicates a code does not have the 8-character structure.
	ErrInvalidCode = errors.New("invalid code")

	// ErrDuplicateCode indicates the same code appears on more than one line.
	ErrDuplicateCode = errors.New("duplicate code")

	// ErrUnknownWord indicates a word is absent from the vocabulary.
	ErrUnknownWord = errors.New("unknown word")

	// ErrDegenerateBranch indicates a sibling count or word count of zero
	// would feed a division or logarithm.
	ErrDegenerateBranch = errors.New("degenerate branch")

	// ErrInvalidLayer indicates a layer or prefix length outside the hierarchy.
	ErrInvalidLayer = errors.New("invalid layer")

	// ErrEmptySequence indicates alignment was asked to average over no words.
	ErrEmptySequence = errors.New("empty word sequence")
)
