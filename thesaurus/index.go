package thesaurus

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/poiesic/cilin/core"
)

// Index is the immutable taxonomy index.
type Index struct {
	entries     []core.Entry
	codeToWords map[core.Code][]string
	wordToCodes map[string][]core.Code
	codes       []core.Code
	total       int
	fingerprint core.ID
}

// Build parses a taxonomy source and returns its index.
// Blank lines are skipped. Any other line must be "CODE WORD..." with a
// well-formed code, otherwise the error wraps core.ErrMalformedEntry and
// names the 1-based line number.
func Build(source io.Reader) (*Index, error) {
	scanner := bufio.NewScanner(source)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var entries []core.Entry
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, err := core.ParseEntry(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading taxonomy: %w", err)
	}
	return FromEntries(entries)
}

// FromEntries builds an index from already parsed entries.
// Entries keep their order; codes must be unique.
func FromEntries(entries []core.Entry) (*Index, error) {
	idx := &Index{
		entries:     make([]core.Entry, 0, len(entries)),
		codeToWords: make(map[core.Code][]string, len(entries)),
		wordToCodes: make(map[string][]core.Code),
		codes:       make([]core.Code, 0, len(entries)),
	}

	for _, entry := range entries {
		if err := core.ValidateCode(string(entry.Code)); err != nil {
			return nil, fmt.Errorf("%w: %w", core.ErrMalformedEntry, err)
		}
		if len(entry.Words) == 0 {
			return nil, fmt.Errorf("%w: code %s has no words", core.ErrMalformedEntry, entry.Code)
		}
		if _, exists := idx.codeToWords[entry.Code]; exists {
			return nil, fmt.Errorf("%w: %w: %s", core.ErrMalformedEntry, core.ErrDuplicateCode, entry.Code)
		}

		words := slices.Clone(entry.Words)
		idx.entries = append(idx.entries, core.Entry{Code: entry.Code, Words: words})
		idx.codeToWords[entry.Code] = words
		idx.codes = append(idx.codes, entry.Code)
		idx.total += len(words)

		for _, w := range words {
			codes := idx.wordToCodes[w]
			if !slices.Contains(codes, entry.Code) {
				idx.wordToCodes[w] = append(codes, entry.Code)
			}
		}
	}

	slices.Sort(idx.codes)

	var content strings.Builder
	for _, code := range idx.codes {
		content.WriteString(core.Entry{Code: code, Words: idx.codeToWords[code]}.Line())
		content.WriteByte('\n')
	}
	idx.fingerprint = core.IDFromContent(content.String())
	return idx, nil
}

// CodesOf returns every code that lists the word, in taxonomy order.
// Returns core.ErrUnknownWord if the word is not in the vocabulary.
func (idx *Index) CodesOf(word string) ([]core.Code, error) {
	codes, ok := idx.wordToCodes[word]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownWord, word)
	}
	return slices.Clone(codes), nil
}

// Senses returns the codes of a word without copying, or nil if unknown.
// The returned slice must not be modified.
func (idx *Index) Senses(word string) []core.Code {
	return idx.wordToCodes[word]
}

// WordsOf returns the word group of a code, or nil if the code is not indexed.
func (idx *Index) WordsOf(code core.Code) []string {
	return slices.Clone(idx.codeToWords[code])
}

// WordCount returns the number of words listed under a code.
func (idx *Index) WordCount(code core.Code) int {
	return len(idx.codeToWords[code])
}

// Contains reports whether the word is in the vocabulary.
func (idx *Index) Contains(word string) bool {
	_, ok := idx.wordToCodes[word]
	return ok
}

// Vocabulary returns the set of all words.
func (idx *Index) Vocabulary() map[string]struct{} {
	vocab := make(map[string]struct{}, len(idx.wordToCodes))
	for w := range idx.wordToCodes {
		vocab[w] = struct{}{}
	}
	return vocab
}

// VocabularySize returns the number of distinct words.
func (idx *Index) VocabularySize() int {
	return len(idx.wordToCodes)
}

// Codes returns every indexed code in ascending order.
// The returned slice must not be modified.
func (idx *Index) Codes() []core.Code {
	return idx.codes
}

// Entries returns the entries in source order.
func (idx *Index) Entries() []core.Entry {
	out := make([]core.Entry, len(idx.entries))
	for i, e := range idx.entries {
		out[i] = core.Entry{Code: e.Code, Words: slices.Clone(e.Words)}
	}
	return out
}

// TotalWordCount returns the number of word occurrences across all entries.
// A word listed under k codes contributes k.
func (idx *Index) TotalWordCount() int {
	return idx.total
}

// Fingerprint identifies the taxonomy content. Two indexes built from the
// same entries share a fingerprint whatever the entry order.
func (idx *Index) Fingerprint() core.ID {
	return idx.fingerprint
}
