package align

import "slices"

// TextAligner tokenizes raw text and aligns the remaining content words.
type TextAligner struct {
	aligner   *Aligner
	tokenizer Tokenizer
	excluded  []string
}

// NewTextAligner creates a TextAligner. With no excluded categories given,
// DefaultExcludedCategories is used.
func NewTextAligner(aligner *Aligner, tokenizer Tokenizer, excluded ...string) (*TextAligner, error) {
	if aligner == nil {
		return nil, ErrAlignerRequired
	}
	if tokenizer == nil {
		return nil, ErrTokenizerRequired
	}
	if len(excluded) == 0 {
		excluded = DefaultExcludedCategories
	}
	return &TextAligner{
		aligner:   aligner,
		tokenizer: tokenizer,
		excluded:  slices.Clone(excluded),
	}, nil
}

// Aligner returns the underlying word aligner.
func (t *TextAligner) Aligner() *Aligner {
	return t.aligner
}

// Words segments text and returns the content words.
func (t *TextAligner) Words(text string) []string {
	return FilterWords(t.tokenizer.Cut(text), t.excluded)
}

// AlignText aligns the content words of two texts. A text with no content
// words yields core.ErrEmptySequence.
func (t *TextAligner) AlignText(text1, text2 string) (float64, error) {
	return t.aligner.Align(t.Words(text1), t.Words(text2))
}
