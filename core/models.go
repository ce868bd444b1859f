package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// CodeLength is the fixed length of every taxonomy code.
const CodeLength = 8

// Terminal markers found in the last position of a code.
const (
	// MarkerSynonym marks a group of equivalent words.
	MarkerSynonym byte = '='
	// MarkerRelated marks a group of related but non-synonymous words.
	MarkerRelated byte = '#'
	// MarkerClosed marks a self-closed branch with no siblings below it.
	MarkerClosed byte = '@'
)

// Level indices into a decoded code.
const (
	LevelMajor = iota
	LevelMedium
	LevelMinor
	LevelGroup
	LevelAtom
	LevelMarker

	NumLevels
)

// ID is a content-derived identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Code is an 8-character hierarchical classification string, e.g. "Aa01A01=".
//
// Layout: [L1][L2][D1D2][L3][D3D4][T] where L1..L3 are letters, D1D2 and
// D3D4 are two-digit groups and T is a terminal marker.
type Code string

// Levels is a code split into its six hierarchy levels.
type Levels [NumLevels]string

// Levels decodes the code into [L1, L2, D1D2, L3, D3D4, T].
// The code is assumed to be well-formed (see ValidateCode).
func (c Code) Levels() Levels {
	s := string(c)
	return Levels{s[0:1], s[1:2], s[2:4], s[4:5], s[5:7], s[7:8]}
}

// Marker returns the terminal marker byte.
func (c Code) Marker() byte {
	return c[len(c)-1]
}

// IsSynonym reports whether the code ends in '='.
func (c Code) IsSynonym() bool { return c.Marker() == MarkerSynonym }

// IsRelated reports whether the code ends in '#'.
func (c Code) IsRelated() bool { return c.Marker() == MarkerRelated }

// IsClosed reports whether the code ends in '@'.
func (c Code) IsClosed() bool { return c.Marker() == MarkerClosed }

func (c Code) String() string { return string(c) }

// Entry is a single taxonomy line: a code and its member words in file order.
type Entry struct {
	Code  Code
	Words []string
}

// Line renders the entry in taxonomy source format.
func (e Entry) Line() string {
	n := len(e.Code)
	for _, w := range e.Words {
		n += 1 + len(w)
	}
	buf := make([]byte, 0, n)
	buf = append(buf, e.Code...)
	for _, w := range e.Words {
		buf = append(buf, ' ')
		buf = append(buf, w...)
	}
	return string(buf)
}
