package align

import (
	"iter"
	"strings"
)

// Token is one segmented word with its part-of-speech category.
type Token struct {
	Word     string
	Category string
}

// Tokenizer segments text into tagged words.
type Tokenizer interface {
	Cut(text string) iter.Seq[Token]
}

// DefaultExcludedCategories are the category initials dropped before
// alignment: auxiliaries, non-words and punctuation.
var DefaultExcludedCategories = []string{"u", "x", "w"}

// FilterWords collects the words of tokens whose category does not start
// with any of the excluded initials. Whitespace-only words are dropped.
func FilterWords(tokens iter.Seq[Token], excluded []string) []string {
	var words []string
	for tok := range tokens {
		if strings.TrimSpace(tok.Word) == "" || isExcluded(tok.Category, excluded) {
			continue
		}
		words = append(words, tok.Word)
	}
	return words
}

func isExcluded(category string, excluded []string) bool {
	for _, ex := range excluded {
		if ex != "" && strings.HasPrefix(category, ex) {
			return true
		}
	}
	return false
}

// Fields tokenizes pre-segmented text: whitespace separates words and each
// word may carry a category suffix, as in "苹果/n".
type Fields struct{}

var _ Tokenizer = Fields{}

// Cut implements Tokenizer.
func (Fields) Cut(text string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for _, field := range strings.Fields(text) {
			word, category, _ := strings.Cut(field, "/")
			if word == "" {
				continue
			}
			if !yield(Token{Word: word, Category: category}) {
				return
			}
		}
	}
}
