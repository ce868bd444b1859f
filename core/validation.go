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

import (
	"fmt"
	"strings"
)

// ValidateCode checks that a code has the fixed taxonomy structure.
//
// Validation rules:
//   - exactly 8 bytes
//   - positions 0, 1 and 4 are ASCII letters
//   - positions 2, 3, 5 and 6 are ASCII digits
//   - position 7 is one of '=', '#', '@'
func ValidateCode(code string) error {
	if len(code) != CodeLength {
		return fmt.Errorf("%w: %q has length %d, want %d", ErrInvalidCode, code, len(code), CodeLength)
	}
	for _, i := range [...]int{0, 1, 4} {
		if !isLetter(code[i]) {
			return fmt.Errorf("%w: %q position %d is not a letter", ErrInvalidCode, code, i)
		}
	}
	for _, i := range [...]int{2, 3, 5, 6} {
		if !isDigit(code[i]) {
			return fmt.Errorf("%w: %q position %d is not a digit", ErrInvalidCode, code, i)
		}
	}
	switch code[7] {
	case MarkerSynonym, MarkerRelated, MarkerClosed:
	default:
		return fmt.Errorf("%w: %q has unknown marker %q", ErrInvalidCode, code, code[7])
	}
	return nil
}

// ParseEntry parses one taxonomy line of the form "CODE WORD1 ... WORDk".
// Fields are separated by any run of whitespace.
func ParseEntry(line string) (Entry, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Entry{}, fmt.Errorf("%w: want code and at least one word, got %d fields", ErrMalformedEntry, len(fields))
	}
	if err := ValidateCode(fields[0]); err != nil {
		return Entry{}, fmt.Errorf("%w: %w", ErrMalformedEntry, err)
	}
	return Entry{Code: Code(fields[0]), Words: fields[1:]}, nil
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
