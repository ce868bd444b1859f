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


package thesaurus

import "errors"

var (
	// ErrUnsupportedEncoding is returned when a taxonomy file encoding is not recognized.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")

	// ErrEmptyTaxonomy is returned when a source contains no entries.
	ErrEmptyTaxonomy = errors.New("taxonomy has no entries")
)
