package thesaurus

import (
	"sort"

	"github.com/hbollon/go-edlib"
)

// DefaultSuggestThreshold is the minimum Levenshtein similarity for Suggest.
const DefaultSuggestThreshold = 0.5

// Suggestion is a vocabulary word close to a query.
type Suggestion struct {
	Word  string
	Score float32
}

// Suggest returns up to limit vocabulary words whose Levenshtein similarity
// to word is at least threshold, best first. Ties are broken by word.
// A word already in the vocabulary is returned as its own single suggestion.
func (idx *Index) Suggest(word string, limit int, threshold float32) []Suggestion {
	if limit <= 0 || word == "" {
		return nil
	}
	if idx.Contains(word) {
		return []Suggestion{{Word: word, Score: 1}}
	}

	var out []Suggestion
	for candidate := range idx.wordToCodes {
		score, err := edlib.StringsSimilarity(word, candidate, edlib.Levenshtein)
		if err != nil || score < threshold {
			continue
		}
		out = append(out, Suggestion{Word: candidate, Score: score})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Word < out[j].Word
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
