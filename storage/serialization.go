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


package storage

import (
	"errors"
	"fmt"

	"github.com/mus-format/mus-go"
	"github.com/poiesic/cilin/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, wrapDecodeError("id", err)
	}
	return id, nil
}

// MarshalEntry serializes an entry's words. The code is carried by the key.
func MarshalEntry(entry core.Entry) []byte {
	buf := make([]byte, core.WordsMUS.Size(entry.Words))
	core.WordsMUS.Marshal(entry.Words, buf)
	return buf
}

// UnmarshalEntry rebuilds an entry from its code and stored words.
func UnmarshalEntry(code core.Code, data []byte) (core.Entry, error) {
	if err := core.ValidateCode(string(code)); err != nil {
		return core.Entry{}, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	words, _, err := core.WordsMUS.Unmarshal(data)
	if err != nil {
		return core.Entry{}, wrapDecodeError("entry "+string(code), err)
	}
	if len(words) == 0 {
		return core.Entry{}, fmt.Errorf("%w: entry %s has no words", ErrSerializationFailed, code)
	}
	return core.Entry{Code: code, Words: words}, nil
}

func wrapDecodeError(what string, err error) error {
	if errors.Is(err, mus.ErrTooSmallByteSlice) {
		return fmt.Errorf("%w: %s: %w", ErrTruncatedData, what, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrSerializationFailed, what, err)
}
